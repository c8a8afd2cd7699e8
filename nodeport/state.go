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

package nodeport

import (
	"github.com/google/uuid"

	"github.com/sabouaram/dataflow/buffer"
	liberr "github.com/sabouaram/dataflow/errs"
	"github.com/sabouaram/dataflow/forest"
	"github.com/sabouaram/dataflow/port"
	"github.com/sabouaram/dataflow/region"
)

// StateSource is a node-aware passive state port.
type StateSource[T any] struct {
	base *port.StateSource[T]
	node *forest.Node
	id   string
}

// NewStateSource allocates a state source belonging to n, backed by
// produce, and reports it to the forest's graph observer.
func NewStateSource[T any](n *forest.Node, name string, produce func() T) *StateSource[T] {
	s := &StateSource[T]{
		base: port.NewStateSource[T](produce),
		node: n,
		id:   uuid.New().String(),
	}
	reportPort(n, s.id, name)
	return s
}

// Base returns the wrapped pure port.
func (s *StateSource[T]) Base() *port.StateSource[T] { return s.base }

// Node returns the owning forest node.
func (s *StateSource[T]) Node() *forest.Node { return s.node }

// Region returns the region this port executes in.
func (s *StateSource[T]) Region() *region.Region { return s.node.Region() }

// ID returns the port's graph id.
func (s *StateSource[T]) ID() string { return s.id }

// Get invokes the stored producer.
func (s *StateSource[T]) Get() (T, error) { return s.base.Get() }

// StateSink is a node-aware active state port: it pulls from at most one
// producer, buffered across region boundaries.
type StateSink[T any] struct {
	base *port.StateSink[T]
	node *forest.Node
	id   string

	// buffers holds every buffer allocated for this sink's cross-region
	// connections; the active side owns them.
	buffers []any
}

// NewStateSink allocates an unconnected state sink belonging to n and
// reports it to the forest's graph observer.
func NewStateSink[T any](n *forest.Node, name string) *StateSink[T] {
	s := &StateSink[T]{
		base: port.NewStateSink[T](),
		node: n,
		id:   uuid.New().String(),
	}
	reportPort(n, s.id, name)
	return s
}

// Base returns the wrapped pure port.
func (s *StateSink[T]) Base() *port.StateSink[T] { return s.base }

// Node returns the owning forest node.
func (s *StateSink[T]) Node() *forest.Node { return s.node }

// Region returns the region this port executes in.
func (s *StateSink[T]) Region() *region.Region { return s.node.Region() }

// ID returns the port's graph id.
func (s *StateSink[T]) ID() string { return s.id }

// Get invokes the current producer.
func (s *StateSink[T]) Get() (T, error) { return s.base.Get() }

// Connect wires this sink to pull from source, replacing any prior
// producer. Same region composes the pure ports directly; different
// regions splice in a state buffer so the sink reads the extern
// generation: the source region's work tick samples it, and the sink
// region's switch tick publishes it.
func (s *StateSink[T]) Connect(source *StateSource[T]) error {
	if s == nil || source == nil {
		return liberr.CodeBadStructure.Error(nil)
	}
	reportConnection(s.node, source.id, s.id)

	if region.SameRegion(s.Region(), source.Region()) {
		s.base.Connect(source.base)
		return nil
	}

	b := buffer.NewState[T]()
	buffer.WireTicks(s.Region(), source.Region(), b)
	b.In().Connect(source.base)
	s.base.Connect(b.Out())
	s.buffers = append(s.buffers, b)
	return nil
}

// ConnectStateThrough wires sink to pull from source through transform.
// For a cross-region connection the buffer sits directly in front of the
// sink and transform runs on the producer side, during the producer
// region's work tick.
func ConnectStateThrough[In, Out any](sink *StateSink[Out], source *StateSource[In], transform func(In) Out) error {
	if sink == nil || source == nil {
		return liberr.CodeBadStructure.Error(nil)
	}
	reportConnection(sink.node, source.id, sink.id)

	if region.SameRegion(sink.Region(), source.Region()) {
		port.ConnectStateThrough(sink.base, source.base, transform)
		return nil
	}

	b := buffer.NewState[Out]()
	buffer.WireTicks(sink.Region(), source.Region(), b)
	port.ConnectStateThrough(b.In(), source.base, transform)
	sink.base.Connect(b.Out())
	sink.buffers = append(sink.buffers, b)
	return nil
}
