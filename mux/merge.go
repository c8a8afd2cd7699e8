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

package mux

import (
	"sync"

	"github.com/sabouaram/dataflow/port"
)

// Merge has N state sinks and one state source; the source's value is
// op applied to the current Get() of every sink, in member order.
type Merge[T, R any] struct {
	sinks  *StateSinkMux[T]
	op     func([]T) R
	source *port.StateSource[R]
}

// NewMerge builds a merge node with n inputs combined by op.
func NewMerge[T, R any](n int, op func([]T) R) *Merge[T, R] {
	m := &Merge[T, R]{
		sinks: NewStateSinkMux[T](n),
		op:    op,
	}
	m.source = port.NewStateSource[R](m.compute)
	return m
}

func (m *Merge[T, R]) compute() R {
	vals, err := m.sinks.Values()
	if err != nil {
		var zero R
		return zero
	}
	return m.op(vals)
}

// In returns the i-th input state sink, to be wired to a producer.
func (m *Merge[T, R]) In(i int) *port.StateSink[T] { return m.sinks.members[i] }

// Arity returns the number of inputs.
func (m *Merge[T, R]) Arity() int { return m.sinks.Arity() }

// Source returns the merge's single output state source.
func (m *Merge[T, R]) Source() *port.StateSource[R] { return m.source }

// DynamicMerger grows its set of state-sink inputs on demand: every call to
// In allocates and returns a fresh sink, and Values reports the current
// value of every sink allocated so far, in allocation order.
type DynamicMerger[T any] struct {
	mu    sync.Mutex
	sinks []*port.StateSink[T]
}

// NewDynamicMerger returns a merger with no inputs yet.
func NewDynamicMerger[T any]() *DynamicMerger[T] {
	return &DynamicMerger[T]{}
}

// In allocates a fresh state sink, appends it to the input set, and
// returns it for the caller to connect a producer into.
func (d *DynamicMerger[T]) In() *port.StateSink[T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	sink := port.NewStateSink[T]()
	d.sinks = append(d.sinks, sink)
	return sink
}

// Values reads every allocated input, in allocation order, returning the
// first error encountered.
func (d *DynamicMerger[T]) Values() ([]T, error) {
	d.mu.Lock()
	sinks := make([]*port.StateSink[T], len(d.sinks))
	copy(sinks, d.sinks)
	d.mu.Unlock()

	out := make([]T, len(sinks))
	for i, s := range sinks {
		v, err := s.Get()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
