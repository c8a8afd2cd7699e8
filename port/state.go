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

package port

import (
	"sync"

	liberr "github.com/sabouaram/dataflow/errs"
)

// StateSource is the passive end of a state connection: it holds one
// producer callable and stores weak-equivalent handles (a disconnect
// registry) for every sink pulling from it, so Close notifies them all.
type StateSource[T any] struct {
	mu       sync.Mutex
	produce  func() T
	registry disconnectRegistry
}

// NewStateSource returns a state source backed by produce. produce may be
// nil; Get then fails with NotConnected until SetProducer installs one.
func NewStateSource[T any](produce func() T) *StateSource[T] {
	return &StateSource[T]{produce: produce}
}

// SetProducer replaces the stored producer.
func (s *StateSource[T]) SetProducer(produce func() T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.produce = produce
}

// Get invokes the stored producer, failing with NotConnected when none is
// present.
func (s *StateSource[T]) Get() (T, error) {
	s.mu.Lock()
	p := s.produce
	s.mu.Unlock()
	if p == nil {
		var zero T
		return zero, liberr.CodeNotConnected.Error(nil)
	}
	return p(), nil
}

func (s *StateSource[T]) registerDisconnect(cb func()) uint64 {
	return s.registry.add(cb)
}

func (s *StateSource[T]) unregisterDisconnect(id uint64) {
	s.registry.remove(id)
}

// Close notifies every connected sink that this source is gone, then
// clears the producer. Safe to call more than once.
func (s *StateSource[T]) Close() {
	s.registry.closeAll()
	s.mu.Lock()
	s.produce = nil
	s.mu.Unlock()
}

// StateSink is the active end of a state connection: it pulls from at
// most one current producer, replacing it wholesale on every Connect.
type StateSink[T any] struct {
	mu         sync.Mutex
	produce    func() T
	unregister func()
}

// NewStateSink returns a state sink with no producer connected.
func NewStateSink[T any]() *StateSink[T] {
	return &StateSink[T]{}
}

// Get invokes the current producer, failing with NotConnected when none
// is connected.
func (s *StateSink[T]) Get() (T, error) {
	s.mu.Lock()
	p := s.produce
	s.mu.Unlock()
	if p == nil {
		var zero T
		return zero, liberr.CodeNotConnected.Error(nil)
	}
	return p(), nil
}

// Connect replaces any prior producer with source's, discarding the
// previous disconnect registration and installing a new one on source so
// that source's destruction clears this sink's producer.
func (s *StateSink[T]) Connect(source *StateSource[T]) {
	s.swapRegistration(func() T {
		v, _ := source.Get()
		return v
	}, source.registerDisconnect, source.unregisterDisconnect)
}

// ConnectFunc wires an arbitrary 0-ary producer directly, discarding any
// prior disconnect registration. Used to bind the tail of a combinator
// chain whose ultimate passive end is not itself a *StateSource.
func (s *StateSink[T]) ConnectFunc(produce func() T) {
	s.mu.Lock()
	prev := s.unregister
	s.unregister = nil
	s.produce = produce
	s.mu.Unlock()
	if prev != nil {
		prev()
	}
}

// swapRegistration discards the previous disconnect registration, installs
// produce as the new producer, and registers a fresh disconnect callback
// via register, remembering how to unregister it via unregister.
func (s *StateSink[T]) swapRegistration(produce func() T, register func(func()) uint64, unregister func(uint64)) {
	s.mu.Lock()
	prev := s.unregister
	s.mu.Unlock()
	if prev != nil {
		prev()
	}

	id := register(func() { s.clear() })

	s.mu.Lock()
	s.produce = produce
	s.unregister = func() { unregister(id) }
	s.mu.Unlock()
}

func (s *StateSink[T]) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.produce = nil
	s.unregister = nil
}
