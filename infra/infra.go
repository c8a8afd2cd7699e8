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

// Package infra is the process-lifecycle boundary of the dataflow
// kernel: an Infrastructure owns the cycle controller, the connection
// graph observer, and the root of the node forest. An embedding program
// mints rate-groups with AddRegion, builds its node graph below
// NodeOwner, starts the scheduler, drives the main loop, and stops.
package infra

import (
	"context"
	"time"

	"github.com/sabouaram/dataflow/cycle"
	"github.com/sabouaram/dataflow/forest"
	"github.com/sabouaram/dataflow/graphviz"
	"github.com/sabouaram/dataflow/logging"
	"github.com/sabouaram/dataflow/metrics"
	"github.com/sabouaram/dataflow/region"
	"github.com/sabouaram/dataflow/scheduler"
)

// RootRegionName is the id of the region the forest root lives in; it
// ticks at the medium rate.
const RootRegionName = "root_region"

// Option configures an Infrastructure at construction.
type Option func(*options)

type options struct {
	sched scheduler.Scheduler
	graph graphviz.Observer
	sink  logging.Sink
	rec   metrics.Recorder
	loop  cycle.MainLoop
}

// WithScheduler replaces the default parallel scheduler.
func WithScheduler(s scheduler.Scheduler) Option {
	return func(o *options) { o.sched = s }
}

// WithGraph replaces the default connection-graph observer.
func WithGraph(g graphviz.Observer) Option {
	return func(o *options) { o.graph = g }
}

// WithLogger sets the structured log sink passed to the cycle
// controller.
func WithLogger(sink logging.Sink) Option {
	return func(o *options) { o.sink = sink }
}

// WithMetrics sets the instrumentation recorder passed to the cycle
// controller.
func WithMetrics(rec metrics.Recorder) Option {
	return func(o *options) { o.rec = rec }
}

// WithMainLoop sets the cycle controller's pacing strategy.
func WithMainLoop(loop cycle.MainLoop) Option {
	return func(o *options) { o.loop = loop }
}

// Infrastructure wires the kernel's pieces into one embedding-ready
// object.
type Infrastructure struct {
	cc     *cycle.Control
	sched  scheduler.Scheduler
	graph  graphviz.Observer
	forest *forest.Forest
}

// New builds an Infrastructure: a parallel scheduler (unless overridden),
// a cycle controller, a connection graph, and a forest whose root lives
// in a medium-rate root region already registered with the controller.
func New(opts ...Option) (*Infrastructure, error) {
	o := &options{}
	for _, fn := range opts {
		fn(o)
	}
	if o.sched == nil {
		o.sched = scheduler.NewParallel(0)
	}
	if o.graph == nil {
		o.graph = graphviz.New()
	}

	var ccOpts []cycle.Option
	if o.sink != nil {
		ccOpts = append(ccOpts, cycle.WithLogger(o.sink))
	}
	if o.rec != nil {
		ccOpts = append(ccOpts, cycle.WithMetrics(o.rec))
	}
	if o.loop != nil {
		ccOpts = append(ccOpts, cycle.WithMainLoop(o.loop))
	}

	i := &Infrastructure{
		cc:    cycle.New(o.sched, ccOpts...),
		sched: o.sched,
		graph: o.graph,
	}

	root, err := i.AddRegion(RootRegionName, region.Medium)
	if err != nil {
		return nil, err
	}
	i.forest = forest.New("root", root, i.graph)
	return i, nil
}

// AddRegion mints a rate-group and registers a periodic task with the
// cycle controller that drives the region's work tick at the given rate.
// Unknown rates fail with InvalidRate; a started controller fails with
// AlreadyRunning.
func (i *Infrastructure) AddRegion(name string, rate region.Rate) (*region.Region, error) {
	d, err := rate.Duration()
	if err != nil {
		return nil, err
	}
	r := region.New(name, d)
	if err := i.cc.AddTask(cycle.NewRegionTask(r), rate); err != nil {
		return nil, err
	}
	return r, nil
}

// NodeOwner returns the forest's root node, the factory every
// application node hangs below.
func (i *Infrastructure) NodeOwner() *forest.Node {
	return i.forest.Root()
}

// Forest returns the node forest.
func (i *Infrastructure) Forest() *forest.Forest {
	return i.forest
}

// Graph returns the connection-graph observer.
func (i *Infrastructure) Graph() graphviz.Observer {
	return i.graph
}

// CycleControl returns the owned cycle controller.
func (i *Infrastructure) CycleControl() *cycle.Control {
	return i.cc
}

// StartScheduler starts the cycle controller's main loop.
func (i *Infrastructure) StartScheduler() error {
	return i.cc.Start()
}

// StopScheduler stops the cycle controller, then the worker pool.
func (i *Infrastructure) StopScheduler() error {
	err := i.cc.Stop()
	i.sched.Stop()
	return err
}

// IterateMainLoop lets the running controller work for half a slow tick,
// then surfaces the most recent task overrun, if any.
func (i *Infrastructure) IterateMainLoop() error {
	time.Sleep(region.SlowTick / 2)
	return i.cc.LastException()
}

// InfiniteMainLoop iterates until ctx is cancelled or an iteration
// surfaces an error.
func (i *Infrastructure) InfiniteMainLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := i.IterateMainLoop(); err != nil {
			return err
		}
	}
}
