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

package buffer

import (
	"sync"

	"github.com/sabouaram/dataflow/port"
)

// StateBuffer transports one sampled T between two regions through three
// generations. The producer region's work tick pulls the connected
// source into intern; switch ticks copy intern to middle and middle to
// extern; the consumer reads extern at any time.
type StateBuffer[T any] struct {
	mu     sync.Mutex
	intern T
	middle T
	extern T

	in  *port.StateSink[T]
	out *port.StateSource[T]
}

// NewState returns a state buffer whose three generations hold the zero
// value of T until the first work tick.
func NewState[T any]() *StateBuffer[T] {
	b := &StateBuffer[T]{
		in: port.NewStateSink[T](),
	}
	b.out = port.NewStateSource[T](func() T {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.extern
	})
	return b
}

// In returns the buffer's input port, the active side that pulls from
// the producer's state source on every work tick.
func (b *StateBuffer[T]) In() *port.StateSink[T] { return b.in }

// Out returns the buffer's output port, serving the extern generation.
func (b *StateBuffer[T]) Out() *port.StateSource[T] { return b.out }

// WorkTick samples the connected source into intern. An unconnected in
// port leaves intern untouched.
func (b *StateBuffer[T]) WorkTick() {
	v, err := b.in.Get()
	if err != nil {
		return
	}
	b.mu.Lock()
	b.intern = v
	b.mu.Unlock()
}

// SwitchPassive copies intern to middle on the producer region's switch
// tick.
func (b *StateBuffer[T]) SwitchPassive() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.middle = b.intern
}

// SwitchActive copies middle to extern on the consumer region's switch
// tick.
func (b *StateBuffer[T]) SwitchActive() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.extern = b.middle
}

// SwitchActivePassive copies intern directly to extern, the shortcut for
// regions ticking at the same rate.
func (b *StateBuffer[T]) SwitchActivePassive() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.extern = b.intern
}

// StatePassThrough is the same-region fast path: the out port forwards
// every Get straight to the in port's connected source.
type StatePassThrough[T any] struct {
	in  *port.StateSink[T]
	out *port.StateSource[T]
}

// NewStatePassThrough returns a directly-forwarding state buffer.
func NewStatePassThrough[T any]() *StatePassThrough[T] {
	b := &StatePassThrough[T]{
		in: port.NewStateSink[T](),
	}
	b.out = port.NewStateSource[T](func() T {
		v, _ := b.in.Get()
		return v
	})
	return b
}

// In returns the pass-through's input port.
func (b *StatePassThrough[T]) In() *port.StateSink[T] { return b.in }

// Out returns the pass-through's output port.
func (b *StatePassThrough[T]) Out() *port.StateSource[T] { return b.out }
