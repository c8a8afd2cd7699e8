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

// Package graphviz records the abstract connection graph of a dataflow
// application for external inspection: which ports exist, which node and
// region each belongs to, and which source fires into which sink. The
// kernel reports into an Observer when a node-aware port is instantiated
// or connected; rendering the record to any text format is a collaborator
// concern and never happens here. A nil or absent observer changes no
// runtime behavior.
package graphviz

import "sync"

// NodeRecord is the information carried by one recorded port.
type NodeRecord struct {
	ID     string
	Parent string
	Region string
	Name   string
}

// EdgeRecord is one recorded connection between a source port and a sink
// port, by their ids.
type EdgeRecord struct {
	SourcePort string
	SinkPort   string
}

// Observer receives the kernel's graph reports.
type Observer interface {
	AddPort(id, parent, region, name string)
	AddConnection(sourcePort, sinkPort string)

	Nodes() []NodeRecord
	Edges() []EdgeRecord
}

// ConnectionGraph is the Observer the kernel ships: a mutex-guarded
// record of ports and edges in report order.
type ConnectionGraph struct {
	mu    sync.Mutex
	nodes []NodeRecord
	edges []EdgeRecord
}

// New returns an empty connection graph.
func New() *ConnectionGraph {
	return &ConnectionGraph{}
}

// AddPort records one port.
func (g *ConnectionGraph) AddPort(id, parent, region, name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = append(g.nodes, NodeRecord{ID: id, Parent: parent, Region: region, Name: name})
}

// AddConnection records one edge.
func (g *ConnectionGraph) AddConnection(sourcePort, sinkPort string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edges = append(g.edges, EdgeRecord{SourcePort: sourcePort, SinkPort: sinkPort})
}

// Nodes returns a copy of the recorded ports, in report order.
func (g *ConnectionGraph) Nodes() []NodeRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]NodeRecord, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns a copy of the recorded edges, in report order.
func (g *ConnectionGraph) Edges() []EdgeRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]EdgeRecord, len(g.edges))
	copy(out, g.edges)
	return out
}
