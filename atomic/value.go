/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

package atomic

import (
	"sync/atomic"
)

// box carries T inside an atomic.Value, which requires a consistent
// concrete type across every Store call; wrapping T in a struct means
// callers can Store a nil interface, a zero struct, or any other "empty"
// T without atomic.Value rejecting the inconsistent concrete type.
type box[T any] struct {
	v T
}

type val[T any] struct {
	av atomic.Value
}

// NewValue returns a Value[T] holding the zero value of T.
func NewValue[T any]() Value[T] {
	o := &val[T]{}
	o.av.Store(box[T]{})
	return o
}

func (o *val[T]) Load() T {
	b, _ := o.av.Load().(box[T])
	return b.v
}

func (o *val[T]) Store(v T) {
	o.av.Store(box[T]{v: v})
}

func (o *val[T]) Swap(n T) (old T) {
	b, _ := o.av.Swap(box[T]{v: n}).(box[T])
	return b.v
}

func (o *val[T]) CompareAndSwap(oldVal, newVal T) bool {
	for {
		cur := o.av.Load()
		b, _ := cur.(box[T])
		if !compareAny(b.v, oldVal) {
			return false
		}
		if o.av.CompareAndSwap(cur, box[T]{v: newVal}) {
			return true
		}
	}
}

// compareAny compares two values of T via the == operator, using an any
// comparison so T itself need not satisfy comparable (some callers, e.g.
// buffer payload slices, store non-comparable T and simply never call
// CompareAndSwap). A non-comparable dynamic type panics inside == and is
// reported here as "not equal" rather than propagated.
func compareAny[T any](a, b T) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return any(a) == any(b)
}
