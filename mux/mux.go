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

// Package mux groups N ports of the same kind behind one handle:
// connecting two muxes of equal arity connects their members index-wise,
// and lifting a unary function across a mux applies it independently to
// each member's stream. Merge (merge.go) folds N state-sink members into
// one state source via an N-ary function.
package mux

import (
	liberr "github.com/sabouaram/dataflow/errs"
	"github.com/sabouaram/dataflow/port"
)

// EventSourceMux groups N event sources of the same element type.
type EventSourceMux[T any] struct {
	members []*port.EventSource[T]
}

// NewEventSourceMux captures references to members in a tuple.
func NewEventSourceMux[T any](members ...*port.EventSource[T]) *EventSourceMux[T] {
	return &EventSourceMux[T]{members: members}
}

// Arity returns the member count.
func (m *EventSourceMux[T]) Arity() int { return len(m.members) }

// Members returns the underlying sources, in order.
func (m *EventSourceMux[T]) Members() []*port.EventSource[T] { return m.members }

// ConnectSinks pairs this mux's members with sinks' members index-wise.
// Mismatched arity is a BadStructure error.
func (m *EventSourceMux[T]) ConnectSinks(sinks *EventSinkMux[T]) error {
	if len(m.members) != len(sinks.members) {
		return liberr.CodeBadStructure.Error(nil)
	}
	for i, src := range m.members {
		src.ConnectSink(sinks.members[i])
	}
	return nil
}

// EventSinkMux groups N event sinks of the same element type.
type EventSinkMux[T any] struct {
	members []*port.EventSink[T]
}

// NewEventSinkMux captures references to members in a tuple.
func NewEventSinkMux[T any](members ...*port.EventSink[T]) *EventSinkMux[T] {
	return &EventSinkMux[T]{members: members}
}

// Arity returns the member count.
func (m *EventSinkMux[T]) Arity() int { return len(m.members) }

// Members returns the underlying sinks, in order.
func (m *EventSinkMux[T]) Members() []*port.EventSink[T] { return m.members }

// LiftEvent applies transform independently to each member of m, returning
// a fresh mux of sources that fire the transformed values whenever the
// corresponding member of m fires.
func LiftEvent[T, U any](m *EventSourceMux[T], transform func(T) U) *EventSourceMux[U] {
	out := make([]*port.EventSource[U], len(m.members))
	for i, src := range m.members {
		lifted := port.NewEventSource[U]()
		src.Connect(func(v T) { lifted.Fire(transform(v)) })
		out[i] = lifted
	}
	return NewEventSourceMux(out...)
}

// StateSourceMux groups N state sources of the same value type.
type StateSourceMux[T any] struct {
	members []*port.StateSource[T]
}

// NewStateSourceMux captures references to members in a tuple.
func NewStateSourceMux[T any](members ...*port.StateSource[T]) *StateSourceMux[T] {
	return &StateSourceMux[T]{members: members}
}

// Arity returns the member count.
func (m *StateSourceMux[T]) Arity() int { return len(m.members) }

// Members returns the underlying sources, in order.
func (m *StateSourceMux[T]) Members() []*port.StateSource[T] { return m.members }

// LiftState applies transform independently to each member of m, returning
// a fresh mux of sources whose Get calls transform(member.Get()).
func LiftState[T, U any](m *StateSourceMux[T], transform func(T) U) *StateSourceMux[U] {
	out := make([]*port.StateSource[U], len(m.members))
	for i, src := range m.members {
		src := src
		out[i] = port.NewStateSource[U](func() U {
			v, _ := src.Get()
			return transform(v)
		})
	}
	return NewStateSourceMux(out...)
}

// StateSinkMux groups N state sinks of the same value type.
type StateSinkMux[T any] struct {
	members []*port.StateSink[T]
}

// NewStateSinkMux creates n unconnected state sinks.
func NewStateSinkMux[T any](n int) *StateSinkMux[T] {
	members := make([]*port.StateSink[T], n)
	for i := range members {
		members[i] = port.NewStateSink[T]()
	}
	return &StateSinkMux[T]{members: members}
}

// Arity returns the member count.
func (m *StateSinkMux[T]) Arity() int { return len(m.members) }

// Members returns the underlying sinks, in order.
func (m *StateSinkMux[T]) Members() []*port.StateSink[T] { return m.members }

// ConnectSources pairs this mux's members with sources index-wise.
// Mismatched arity is a BadStructure error.
func (m *StateSinkMux[T]) ConnectSources(sources *StateSourceMux[T]) error {
	if len(m.members) != len(sources.members) {
		return liberr.CodeBadStructure.Error(nil)
	}
	for i, sink := range m.members {
		sink.Connect(sources.members[i])
	}
	return nil
}

// Values reads every member via Get, in order, returning the first error
// encountered.
func (m *StateSinkMux[T]) Values() ([]T, error) {
	out := make([]T, len(m.members))
	for i, sink := range m.members {
		v, err := sink.Get()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
