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

// Package demo holds the trivial node types the CLI and the end-to-end
// tests wire together: a counting state producer, a recording event
// consumer, a work-tick-driven pulse, and the scalar helpers the merge
// demos use. It is deliberately minimal; a real node library is a user
// concern, not a kernel one.
package demo

import (
	"sync/atomic"

	"github.com/sabouaram/dataflow/forest"
	"github.com/sabouaram/dataflow/nodeport"
	"github.com/sabouaram/dataflow/port"
)

// Counter is a node whose single state source returns an incrementing
// int on every read, starting at 1.
type Counter struct {
	node *forest.Node
	n    atomic.Int64

	Out *nodeport.StateSource[int]
}

// NewCounter allocates a Counter below parent.
func NewCounter(parent *forest.Node, name string) (*Counter, error) {
	node, err := parent.MakeChild(name)
	if err != nil {
		return nil, err
	}
	c := &Counter{node: node}
	c.Out = nodeport.NewStateSource[int](node, "out", func() int {
		return int(c.n.Add(1))
	})
	return c, nil
}

// Node returns the counter's forest node.
func (c *Counter) Node() *forest.Node { return c.node }

// Recorder is a node whose single event sink remembers the last value
// received and how many values arrived in total.
type Recorder struct {
	node  *forest.Node
	last  atomic.Int64
	count atomic.Int64

	In *nodeport.EventSink[int]
}

// NewRecorder allocates a Recorder below parent.
func NewRecorder(parent *forest.Node, name string) (*Recorder, error) {
	node, err := parent.MakeChild(name)
	if err != nil {
		return nil, err
	}
	r := &Recorder{node: node}
	r.In = nodeport.NewEventSink[int](node, "in", func(v int) {
		r.last.Store(int64(v))
		r.count.Add(1)
	})
	return r, nil
}

// Node returns the recorder's forest node.
func (r *Recorder) Node() *forest.Node { return r.node }

// Last returns the most recently recorded value, zero before the first.
func (r *Recorder) Last() int { return int(r.last.Load()) }

// Count returns how many values arrived.
func (r *Recorder) Count() int { return int(r.count.Load()) }

// Pulse is a node that fires its event source with an incrementing int
// on every work tick of its region.
type Pulse struct {
	node *forest.Node
	n    atomic.Int64

	Out *nodeport.EventSource[int]
}

// NewPulse allocates a Pulse below parent and wires it to its region's
// work tick.
func NewPulse(parent *forest.Node, name string) (*Pulse, error) {
	node, err := parent.MakeChild(name)
	if err != nil {
		return nil, err
	}
	p := &Pulse{node: node}
	p.Out = nodeport.NewEventSource[int](node, "out")
	node.Region().WorkTick().Connect(func(port.Void) {
		p.Out.Fire(int(p.n.Add(1)))
	})
	return p, nil
}

// Node returns the pulse's forest node.
func (p *Pulse) Node() *forest.Node { return p.node }

// Negate is the scalar transform the merge demos lift across a mux.
func Negate(x int) int { return -x }

// Sum folds a merge's inputs into their total.
func Sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
