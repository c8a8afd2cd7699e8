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

// Package nodeport wraps the pure ports of package port with the node
// they belong to. A node-aware port knows its region through its forest
// node; connecting two node-aware ports inspects both regions and either
// composes the pure ports directly (same region) or allocates a buffer
// from package buffer, wires its ticks per the factory rule, and splices
// it into the connection (different regions). Every instantiation and
// connection is reported to the forest's graph observer when one is
// configured; its absence changes nothing at runtime.
package nodeport

import (
	"github.com/google/uuid"

	"github.com/sabouaram/dataflow/buffer"
	liberr "github.com/sabouaram/dataflow/errs"
	"github.com/sabouaram/dataflow/forest"
	"github.com/sabouaram/dataflow/port"
	"github.com/sabouaram/dataflow/region"
)

// EventSource is a node-aware active event port.
type EventSource[T any] struct {
	base *port.EventSource[T]
	node *forest.Node
	id   string

	// buffers holds every buffer allocated for this source's
	// cross-region connections; the active side owns them.
	buffers []any
}

// NewEventSource allocates an event source belonging to n and reports it
// to the forest's graph observer.
func NewEventSource[T any](n *forest.Node, name string) *EventSource[T] {
	s := &EventSource[T]{
		base: port.NewEventSource[T](),
		node: n,
		id:   uuid.New().String(),
	}
	reportPort(n, s.id, name)
	return s
}

// Base returns the wrapped pure port.
func (s *EventSource[T]) Base() *port.EventSource[T] { return s.base }

// Node returns the owning forest node.
func (s *EventSource[T]) Node() *forest.Node { return s.node }

// Region returns the region this port executes in.
func (s *EventSource[T]) Region() *region.Region { return s.node.Region() }

// ID returns the port's graph id.
func (s *EventSource[T]) ID() string { return s.id }

// Fire invokes every connected handler with v.
func (s *EventSource[T]) Fire(v T) { s.base.Fire(v) }

// NrConnectedHandlers returns the wrapped source's handler count.
func (s *EventSource[T]) NrConnectedHandlers() int { return s.base.NrConnectedHandlers() }

// Connect wires this source to sink. Same region composes the pure
// ports synchronously; different regions splice in an event buffer whose
// ticks follow the factory rule, so the value crosses the boundary on
// the published generation instead of the firing call.
func (s *EventSource[T]) Connect(sink *EventSink[T]) error {
	if s == nil || sink == nil {
		return liberr.CodeBadStructure.Error(nil)
	}
	reportConnection(s.node, s.id, sink.id)

	if region.SameRegion(s.Region(), sink.Region()) {
		s.base.ConnectSink(sink.base)
		return nil
	}

	b := buffer.NewEvent[T]()
	buffer.WireTicks(s.Region(), sink.Region(), b)
	s.base.ConnectSink(b.In())
	b.Out().ConnectSink(sink.base)
	s.buffers = append(s.buffers, b)
	return nil
}

// EventSink is a node-aware passive event port.
type EventSink[T any] struct {
	base *port.EventSink[T]
	node *forest.Node
	id   string
}

// NewEventSink allocates an event sink belonging to n with the given
// handler and reports it to the forest's graph observer. handler may be
// nil; Invoke then fails with NotConnected until SetHandler installs one.
func NewEventSink[T any](n *forest.Node, name string, handler func(T)) *EventSink[T] {
	s := &EventSink[T]{
		base: port.NewEventSink[T](handler),
		node: n,
		id:   uuid.New().String(),
	}
	reportPort(n, s.id, name)
	return s
}

// Base returns the wrapped pure port.
func (s *EventSink[T]) Base() *port.EventSink[T] { return s.base }

// Node returns the owning forest node.
func (s *EventSink[T]) Node() *forest.Node { return s.node }

// Region returns the region this port executes in.
func (s *EventSink[T]) Region() *region.Region { return s.node.Region() }

// ID returns the port's graph id.
func (s *EventSink[T]) ID() string { return s.id }

// SetHandler replaces the stored handler.
func (s *EventSink[T]) SetHandler(handler func(T)) { s.base.SetHandler(handler) }

// Invoke applies the stored handler to v.
func (s *EventSink[T]) Invoke(v T) error { return s.base.Invoke(v) }

// Close severs every connection this sink participates in.
func (s *EventSink[T]) Close() { s.base.Close() }

// ConnectEventThrough wires src to sink through transform. For a
// cross-region connection the buffer sits directly behind the source and
// transform runs on the consumer side, during the consumer region's work
// tick.
func ConnectEventThrough[In, Out any](src *EventSource[In], transform func(In) Out, sink *EventSink[Out]) error {
	if src == nil || sink == nil {
		return liberr.CodeBadStructure.Error(nil)
	}
	reportConnection(src.node, src.id, sink.id)

	if region.SameRegion(src.Region(), sink.Region()) {
		port.ConnectEventThrough(src.base, transform, sink.base)
		return nil
	}

	b := buffer.NewEvent[In]()
	buffer.WireTicks(src.Region(), sink.Region(), b)
	src.base.ConnectSink(b.In())
	port.ConnectEventThrough(b.Out(), transform, sink.base)
	src.buffers = append(src.buffers, b)
	return nil
}

// ConnectVoidEvent wires a payload-free source to a payload-free sink.
// Cross-region connections use the counter buffer instead of a vector of
// empty payloads.
func ConnectVoidEvent(src *EventSource[port.Void], sink *EventSink[port.Void]) error {
	if src == nil || sink == nil {
		return liberr.CodeBadStructure.Error(nil)
	}
	reportConnection(src.node, src.id, sink.id)

	if region.SameRegion(src.Region(), sink.Region()) {
		src.base.ConnectSink(sink.base)
		return nil
	}

	b := buffer.NewVoidEvent()
	buffer.WireTicks(src.Region(), sink.Region(), b)
	src.base.ConnectSink(b.In())
	b.Out().ConnectSink(sink.base)
	src.buffers = append(src.buffers, b)
	return nil
}

func reportPort(n *forest.Node, portID, name string) {
	if n == nil {
		return
	}
	g := n.Forest().Graph()
	if g == nil {
		return
	}
	regionID := ""
	if n.Region() != nil {
		regionID = n.Region().ID()
	}
	g.AddPort(portID, n.ID().String(), regionID, name)
}

func reportConnection(n *forest.Node, sourcePort, sinkPort string) {
	if n == nil {
		return
	}
	g := n.Forest().Graph()
	if g == nil {
		return
	}
	g.AddConnection(sourcePort, sinkPort)
}
