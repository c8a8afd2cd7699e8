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

// Package port implements the four port kinds of the dataflow kernel —
// event source, event sink, state source, state sink — their connect/fire/
// invoke semantics, and the `>>` chain combinator. A port is active (it
// drives invocation: event source fires, state sink pulls) or passive (it
// responds: event sink is invoked, state source is pulled from). Exactly
// one end of a connection is active; the other must be passive.
package port

import (
	"sync"

	liberr "github.com/sabouaram/dataflow/errs"
)

// Void stands in for a C++ "void" event payload: an event source of Void
// fires with no meaningful value.
type Void struct{}

type eventHandler[T any] struct {
	id uint64
	fn func(T)
}

// EventSource is the active end of an event connection: it fires values of
// type T to every connected handler, in the order they were registered.
// The zero value is a usable source with no handlers.
type EventSource[T any] struct {
	mu       sync.Mutex
	handlers []eventHandler[T]
	seq      uint64
}

// NewEventSource returns a ready-to-use event source.
func NewEventSource[T any]() *EventSource[T] {
	return &EventSource[T]{}
}

// Connect installs handler as a new subscriber and returns a disconnect
// function the caller may use to remove it early. Connect never fails: an
// event source accepts any number of handlers.
func (s *EventSource[T]) Connect(handler func(T)) (disconnect func()) {
	s.mu.Lock()
	id := s.seq
	s.seq++
	s.handlers = append(s.handlers, eventHandler[T]{id: id, fn: handler})
	s.mu.Unlock()
	return func() { s.erase(id) }
}

// ConnectSink wires sink as a handler and registers the corresponding
// disconnect callback on the sink's registry, so that closing sink removes
// this handler entry without the source needing to know about it.
func (s *EventSource[T]) ConnectSink(sink *EventSink[T]) {
	disconnect := s.Connect(sink.invoke)
	sink.registerDisconnect(disconnect)
}

func (s *EventSource[T]) erase(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.handlers {
		if s.handlers[i].id == id {
			s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
			return
		}
	}
}

// Fire invokes every installed handler, in registration order, with v. A
// source with zero handlers is a no-op.
func (s *EventSource[T]) Fire(v T) {
	s.mu.Lock()
	hs := make([]eventHandler[T], len(s.handlers))
	copy(hs, s.handlers)
	s.mu.Unlock()
	for _, h := range hs {
		h.fn(v)
	}
}

// NrConnectedHandlers returns the current handler count.
func (s *EventSource[T]) NrConnectedHandlers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

// EventSink is the passive end of an event connection: it holds exactly
// one handler, applied whenever a connected source fires. Its registry of
// disconnect callbacks is drained by Close, which erases this sink's
// handler entry from every source it is connected to.
type EventSink[T any] struct {
	mu       sync.Mutex
	handler  func(T)
	registry disconnectRegistry
}

// NewEventSink returns a sink that applies handler on every invocation.
// handler may be nil; Invoke then fails with NotConnected until SetHandler
// installs one.
func NewEventSink[T any](handler func(T)) *EventSink[T] {
	return &EventSink[T]{handler: handler}
}

// SetHandler replaces the stored handler.
func (s *EventSink[T]) SetHandler(handler func(T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = handler
}

func (s *EventSink[T]) invoke(v T) {
	s.mu.Lock()
	h := s.handler
	s.mu.Unlock()
	if h != nil {
		h(v)
	}
}

// Invoke applies the stored handler to v, failing with NotConnected when
// none is present.
func (s *EventSink[T]) Invoke(v T) error {
	s.mu.Lock()
	h := s.handler
	s.mu.Unlock()
	if h == nil {
		return liberr.CodeNotConnected.Error(nil)
	}
	h(v)
	return nil
}

func (s *EventSink[T]) registerDisconnect(cb func()) {
	s.registry.add(cb)
}

// Close invokes every registered disconnect callback, erasing this sink's
// handler entry from every source it was connected to, then clears the
// stored handler. Safe to call more than once.
func (s *EventSink[T]) Close() {
	s.registry.closeAll()
	s.mu.Lock()
	s.handler = nil
	s.mu.Unlock()
}
