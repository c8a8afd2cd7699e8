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

// Package forest is the ordered ownership tree of the dataflow graph:
// every node lives in exactly one forest, owns its children, carries a
// human-readable name plus a globally unique id, and belongs to a region.
// Nodes are created only through a parent node's factory methods, which
// insert the child trailing so iteration order is creation order. Every
// node has a unique path, the separator-joined chain of names from the
// root down.
package forest

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	liberr "github.com/sabouaram/dataflow/errs"
	"github.com/sabouaram/dataflow/graphviz"
	"github.com/sabouaram/dataflow/region"
)

// PathSeparator joins node names into a full path.
const PathSeparator = "/"

// Forest owns the node tree. The root is a distinguished owning node
// created with the forest itself; everything else hangs below it.
type Forest struct {
	mu    sync.Mutex
	root  *Node
	graph graphviz.Observer
}

// New builds a forest whose root node has the given name and region.
// graph may be nil; node-aware ports then skip their graph reports.
func New(rootName string, r *region.Region, graph graphviz.Observer) *Forest {
	f := &Forest{graph: graph}
	f.root = &Node{
		forest: f,
		name:   rootName,
		id:     uuid.New(),
		region: r,
	}
	return f
}

// Root returns the forest's root node.
func (f *Forest) Root() *Node {
	return f.root
}

// Graph returns the observer the forest reports port instantiation and
// connection into, or nil when none was configured.
func (f *Forest) Graph() graphviz.Observer {
	return f.graph
}

// Walk visits every node depth-first in child order, root first.
func (f *Forest) Walk(visit func(*Node)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.root.walk(visit)
}

// NrOfNodes returns the current node count, root included.
func (f *Forest) NrOfNodes() int {
	n := 0
	f.Walk(func(*Node) { n++ })
	return n
}

// Node is one participant in the forest. A node reaches its forest, its
// region, and its parents at any time; its children are owned and die
// with it on EraseWithSubtree.
type Node struct {
	forest   *Forest
	parent   *Node
	children []*Node
	name     string
	id       uuid.UUID
	region   *region.Region
	detached bool
}

// Name returns the node's human-readable name.
func (n *Node) Name() string {
	return n.name
}

// ID returns the node's globally unique id.
func (n *Node) ID() uuid.UUID {
	return n.id
}

// Region returns the region the node executes in.
func (n *Node) Region() *region.Region {
	return n.region
}

// Forest returns the forest that owns this node.
func (n *Node) Forest() *Forest {
	return n.forest
}

// Parent returns the owning parent, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the owned children, in creation order.
func (n *Node) Children() []*Node {
	n.forest.mu.Lock()
	defer n.forest.mu.Unlock()
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// MakeChild allocates a child node with the given name in this node's
// region and inserts it trailing.
func (n *Node) MakeChild(name string) (*Node, error) {
	return n.MakeChildInRegion(name, n.region)
}

// MakeChildInRegion allocates a child node with the given name and an
// explicit region override and inserts it trailing.
func (n *Node) MakeChildInRegion(name string, r *region.Region) (*Node, error) {
	n.forest.mu.Lock()
	defer n.forest.mu.Unlock()
	if n.detached {
		return nil, liberr.CodeBadStructure.Error(nil)
	}
	child := &Node{
		forest: n.forest,
		parent: n,
		name:   name,
		id:     uuid.New(),
		region: r,
	}
	n.children = append(n.children, child)
	return child, nil
}

// FullName walks parents up to the root and joins the names with the
// path separator.
func (n *Node) FullName() string {
	var names []string
	for cur := n; cur != nil; cur = cur.parent {
		names = append(names, cur.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, PathSeparator)
}

// EraseWithSubtree deletes child and all its descendants from this node.
// Erasing a node that is not a child of n is a BadStructure error.
func (n *Node) EraseWithSubtree(child *Node) error {
	n.forest.mu.Lock()
	defer n.forest.mu.Unlock()
	for i := range n.children {
		if n.children[i] == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.detach()
			return nil
		}
	}
	return liberr.CodeBadStructure.Error(nil)
}

func (n *Node) detach() {
	n.detached = true
	n.parent = nil
	for _, c := range n.children {
		c.detach()
	}
	n.children = nil
}

func (n *Node) walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.children {
		c.walk(visit)
	}
}
