/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package settings is the producer side of the settings contract the
// kernel exposes to embedding programs: a setting is a callback
// set_value(T) plus a constraint predicate, with the guarantee that the
// initial value satisfies the predicate and that updates are applied at
// the consuming region's switch tick, phase-aligned with other region
// state. The registry and file backends themselves live outside the
// kernel; this package demonstrates a viper-backed producer and the
// switch-tick staging helper the consumer side uses.
package settings

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	libatm "github.com/sabouaram/dataflow/atomic"
	liberr "github.com/sabouaram/dataflow/errs"
	"github.com/sabouaram/dataflow/port"
	"github.com/sabouaram/dataflow/region"
)

// Constraint validates a candidate setting value; nil error accepts it.
type Constraint[T any] func(T) error

// Binder multiplexes one viper instance's config-change notifications
// across any number of bound settings.
type Binder struct {
	mu       sync.Mutex
	v        *viper.Viper
	rebind   []func()
	watching bool
	closed   bool
}

// NewBinder wraps v. Bind registers settings on it; the first Bind
// starts the file watch.
func NewBinder(v *viper.Viper) *Binder {
	return &Binder{v: v}
}

// Close stops applying further config changes to every bound setting.
func (b *Binder) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.rebind = nil
}

func (b *Binder) onChange(fsnotify.Event) {
	b.mu.Lock()
	rebind := make([]func(), len(b.rebind))
	copy(rebind, b.rebind)
	b.mu.Unlock()
	for _, fn := range rebind {
		fn()
	}
}

// Bind reads key's current value, validates it against constraint, and
// delivers it through setValue; a failing initial value is a
// SettingConstraintViolation and nothing is delivered. Afterwards every
// config-file change re-reads and re-validates the key, delivering
// accepted values and silently dropping rejected ones.
func Bind[T any](b *Binder, key string, constraint Constraint[T], setValue func(T)) error {
	read := func() (T, error) {
		var val T
		if err := b.v.UnmarshalKey(key, &val); err != nil {
			return val, liberr.CodeSettingConstraintViolation.Error(err)
		}
		if constraint != nil {
			if err := constraint(val); err != nil {
				return val, liberr.CodeSettingConstraintViolation.Error(err)
			}
		}
		return val, nil
	}

	initial, err := read()
	if err != nil {
		return err
	}
	setValue(initial)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.rebind = append(b.rebind, func() {
		if val, err := read(); err == nil {
			setValue(val)
		}
	})
	if !b.watching {
		b.watching = true
		b.v.OnConfigChange(b.onChange)
		b.v.WatchConfig()
	}
	return nil
}

// ApplyAtSwitchTick builds the consumer side of the contract: the
// returned setValue stages the value, and apply runs with the most
// recently staged value on r's next switch tick, so setting updates are
// phase-aligned with the region's buffer generations.
func ApplyAtSwitchTick[T any](r *region.Region, apply func(T)) (setValue func(T)) {
	staged := libatm.NewValue[*T]()
	r.SwitchTick().Connect(func(port.Void) {
		if p := staged.Swap(nil); p != nil {
			apply(*p)
		}
	})
	return func(v T) {
		staged.Store(&v)
	}
}
