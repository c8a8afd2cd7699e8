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

// Package buffer implements the transfer stations that make inter-region
// communication race-free and deterministic: triple-generation event and
// state buffers (intern on the writer side, middle, extern on the reader
// side) advanced by switch ticks, plus synchronous pass-throughs for
// same-region connections. WireTicks applies the factory rule that
// decides which region tick drives which generation switch.
package buffer

import (
	"sync"

	"github.com/sabouaram/dataflow/port"
)

// EventBuffer transports events of T between two regions through three
// generations. New events land in intern; switch ticks move them toward
// extern; the consumer region's work tick fires everything in extern.
type EventBuffer[T any] struct {
	mu     sync.Mutex
	intern []T
	middle []T
	extern []T
	read   bool

	in  *port.EventSink[T]
	out *port.EventSource[T]
}

// NewEvent returns an empty event buffer.
func NewEvent[T any]() *EventBuffer[T] {
	b := &EventBuffer[T]{
		out: port.NewEventSource[T](),
	}
	b.in = port.NewEventSink[T](func(v T) {
		b.mu.Lock()
		b.intern = append(b.intern, v)
		b.mu.Unlock()
	})
	return b
}

// In returns the buffer's input port, the passive side the producer
// fires into.
func (b *EventBuffer[T]) In() *port.EventSink[T] { return b.in }

// Out returns the buffer's output port, fired on the consumer region's
// work tick.
func (b *EventBuffer[T]) Out() *port.EventSource[T] { return b.out }

// SwitchActive moves intern toward middle on the producer region's
// switch tick. If the middle generation has already been read, intern
// swaps in wholesale; otherwise it is appended so no event is lost.
func (b *EventBuffer[T]) SwitchActive() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.read {
		b.middle, b.intern = b.intern, b.middle[:0]
	} else {
		b.middle = append(b.middle, b.intern...)
		b.intern = b.intern[:0]
	}
	b.read = false
}

// SwitchPassive swaps middle into extern on the consumer region's switch
// tick. The previous extern content has been processed already, so a
// plain swap suffices.
func (b *EventBuffer[T]) SwitchPassive() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.middle, b.extern = b.extern[:0], b.middle
	b.read = true
}

// SwitchActivePassive merges intern directly into extern, the shortcut
// for regions ticking at the same rate.
func (b *EventBuffer[T]) SwitchActivePassive() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.extern) == 0 {
		b.extern, b.intern = b.intern, b.extern[:0]
	} else {
		b.extern = append(b.extern, b.intern...)
		b.intern = b.intern[:0]
	}
}

// WorkTick fires every event in extern onto the out port, in arrival
// order, then clears extern. Capacity is kept to avoid allocations in
// the next cycle.
func (b *EventBuffer[T]) WorkTick() {
	b.mu.Lock()
	pending := b.extern
	b.extern = nil
	b.mu.Unlock()

	for _, v := range pending {
		b.out.Fire(v)
	}

	b.mu.Lock()
	if b.extern == nil {
		b.extern = pending[:0]
	}
	b.mu.Unlock()
}

// VoidEventBuffer is the event buffer for payload-free events: the three
// generations degenerate into counters with identical switch semantics.
type VoidEventBuffer struct {
	mu     sync.Mutex
	intern uint64
	middle uint64
	extern uint64
	read   bool

	in  *port.EventSink[port.Void]
	out *port.EventSource[port.Void]
}

// NewVoidEvent returns an empty void-event buffer.
func NewVoidEvent() *VoidEventBuffer {
	b := &VoidEventBuffer{
		out: port.NewEventSource[port.Void](),
	}
	b.in = port.NewEventSink[port.Void](func(port.Void) {
		b.mu.Lock()
		b.intern++
		b.mu.Unlock()
	})
	return b
}

// In returns the buffer's input port.
func (b *VoidEventBuffer) In() *port.EventSink[port.Void] { return b.in }

// Out returns the buffer's output port.
func (b *VoidEventBuffer) Out() *port.EventSource[port.Void] { return b.out }

// SwitchActive moves the intern count toward middle.
func (b *VoidEventBuffer) SwitchActive() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.read {
		b.middle = b.intern
	} else {
		b.middle += b.intern
	}
	b.read = false
	b.intern = 0
}

// SwitchPassive swaps the middle count into extern.
func (b *VoidEventBuffer) SwitchPassive() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.middle, b.extern = 0, b.middle
	b.read = true
}

// SwitchActivePassive merges intern directly into extern.
func (b *VoidEventBuffer) SwitchActivePassive() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.extern += b.intern
	b.intern = 0
}

// WorkTick fires the out port once per counted event, then zeroes the
// extern count.
func (b *VoidEventBuffer) WorkTick() {
	b.mu.Lock()
	pending := b.extern
	b.extern = 0
	b.mu.Unlock()

	for i := uint64(0); i < pending; i++ {
		b.out.Fire(port.Void{})
	}
}

// EventPassThrough is the same-region fast path: events fired into the
// in port come out of the out port synchronously, no generations, no
// ticks.
type EventPassThrough[T any] struct {
	in  *port.EventSink[T]
	out *port.EventSource[T]
}

// NewEventPassThrough returns a directly-forwarding event buffer.
func NewEventPassThrough[T any]() *EventPassThrough[T] {
	b := &EventPassThrough[T]{
		out: port.NewEventSource[T](),
	}
	b.in = port.NewEventSink[T](func(v T) { b.out.Fire(v) })
	return b
}

// In returns the pass-through's input port.
func (b *EventPassThrough[T]) In() *port.EventSink[T] { return b.in }

// Out returns the pass-through's output port.
func (b *EventPassThrough[T]) Out() *port.EventSource[T] { return b.out }
