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

package cycle

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/sabouaram/dataflow/clock"
	liberr "github.com/sabouaram/dataflow/errs"
	"github.com/sabouaram/dataflow/logging"
	"github.com/sabouaram/dataflow/metrics"
	"github.com/sabouaram/dataflow/region"
	"github.com/sabouaram/dataflow/scheduler"
)

// TimeoutPolicy decides what happens when a periodic task has not
// finished by its next tick. Returning true keeps the controller
// running; returning false shuts it down.
type TimeoutPolicy func(t *PeriodicTask) bool

// Option configures a Control at construction.
type Option func(*Control)

// WithMainLoop sets the pacing strategy; the default is realtime.
func WithMainLoop(loop MainLoop) Option {
	return func(c *Control) { c.loop = loop }
}

// WithTimeoutPolicy replaces the default record-and-continue overrun
// policy.
func WithTimeoutPolicy(p TimeoutPolicy) Option {
	return func(c *Control) { c.timeout = p }
}

// WithHaltOnOverrun installs the alternate policy: the first overrun
// records an OutOfTime error and shuts the controller down.
func WithHaltOnOverrun() Option {
	return func(c *Control) {
		c.timeout = func(t *PeriodicTask) bool {
			c.storeOverrun(t)
			return false
		}
	}
}

// WithLogger sets the structured log sink; the default discards.
func WithLogger(sink logging.Sink) Option {
	return func(c *Control) { c.sink = sink }
}

// WithMetrics sets the instrumentation recorder; the default discards.
func WithMetrics(rec metrics.Recorder) Option {
	return func(c *Control) { c.rec = rec }
}

type bucket struct {
	tick  time.Duration
	rate  region.Rate
	tasks []*PeriodicTask
}

// Control advances the master clock and dispatches periodic tasks at
// fast, medium and slow rates onto its scheduler, enforcing per-cycle
// deadlines through the timeout policy. The controller owns the
// main-loop goroutine and dispatches onto sched; Stop joins the main
// loop and waits for dispatched tasks, but does not stop the scheduler
// or join its workers.
type Control struct {
	mu      sync.Mutex
	running bool

	clk         *clock.Master
	fast        bucket
	medium      bucket
	slow        bucket
	sched       scheduler.Scheduler
	keepWorking atomic.Bool
	loop        MainLoop
	loopDone    chan struct{}

	excMu sync.Mutex
	excs  []error

	timeout TimeoutPolicy
	sink    logging.Sink
	rec     metrics.Recorder
}

// New builds a cycle controller owning sched. The master clock ticks at
// the minimum tick length; the default main loop is realtime and the
// default timeout policy records an OutOfTime error and keeps running.
func New(sched scheduler.Scheduler, opts ...Option) *Control {
	c := &Control{
		clk:    clock.NewMaster(region.MinTickLength),
		fast:   bucket{tick: region.FastTick, rate: region.Fast},
		medium: bucket{tick: region.MediumTick, rate: region.Medium},
		slow:   bucket{tick: region.SlowTick, rate: region.Slow},
		sched:  sched,
		sink:   logging.NoOp(),
		rec:    metrics.NoOp(),
	}
	c.timeout = func(t *PeriodicTask) bool {
		c.storeOverrun(t)
		return true
	}
	for _, o := range opts {
		o(c)
	}
	if c.loop == nil {
		c.loop = NewRealTime()
	}
	c.loop.SetWaitForCurrentTasks(c.waitForCurrentTasks)
	return c
}

// Clock returns the master clock the controller advances.
func (c *Control) Clock() *clock.Master {
	return c.clk
}

// AddTask appends task to the bucket matching rate. Legal only while the
// controller is not running; unknown rates fail with InvalidRate.
func (c *Control) AddTask(task *PeriodicTask, rate region.Rate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return liberr.CodeAlreadyRunning.Error(nil)
	}
	switch rate {
	case region.Fast:
		c.fast.tasks = append(c.fast.tasks, task)
	case region.Medium:
		c.medium.tasks = append(c.medium.tasks, task)
	case region.Slow:
		c.slow.tasks = append(c.slow.tasks, task)
	default:
		return liberr.CodeInvalidRate.Error(nil)
	}
	return nil
}

// SetMainLoop replaces the pacing strategy. Legal only while the
// controller is not running.
func (c *Control) SetMainLoop(loop MainLoop) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return liberr.CodeAlreadyRunning.Error(nil)
	}
	c.loop = loop
	c.loop.SetWaitForCurrentTasks(c.waitForCurrentTasks)
	return nil
}

// Start launches the main-loop goroutine, which repeatedly runs the
// strategy's loop body until Stop. Starting a running controller fails
// with AlreadyRunning.
func (c *Control) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return liberr.CodeAlreadyRunning.Error(nil)
	}
	c.running = true
	c.keepWorking.Store(true)
	c.loop.Arm()
	c.loopDone = make(chan struct{})

	go func(loop MainLoop, done chan struct{}) {
		defer close(done)
		for c.keepWorking.Load() {
			loop.LoopBody(c.Work)
		}
	}(c.loop, c.loopDone)

	return nil
}

// Stop clears the keep-working flag, joins the main-loop goroutine, and
// waits for every bucket's tasks with the slow tick as bound. Tasks
// still unfinished after the bound are reported as OutOfTime in the
// aggregated return value. Safe to call on a stopped controller.
func (c *Control) Stop() error {
	c.keepWorking.Store(false)

	c.mu.Lock()
	done := c.loopDone
	c.loopDone = nil
	c.mu.Unlock()
	if done != nil {
		<-done
	}

	var errs *multierror.Error
	for _, b := range []*bucket{&c.fast, &c.medium, &c.slow} {
		for _, t := range b.tasks {
			if !t.WaitUntilDone(region.SlowTick) {
				errs = multierror.Append(errs, liberr.CodeOutOfTime.Error(nil))
			}
		}
	}

	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
	return errs.ErrorOrNil()
}

// Work advances the master clock by one minimum tick, then runs every
// bucket whose tick divides the virtual epoch read before the advance,
// fast to slow.
func (c *Control) Work() {
	now := c.clk.SteadyNow()
	c.clk.Advance()

	for _, b := range []*bucket{&c.fast, &c.medium, &c.slow} {
		if now%b.tick != 0 {
			continue
		}
		if !c.runPeriodicTasks(b) {
			return
		}
	}
}

// runPeriodicTasks dispatches one cycle of b's tasks: tasks still busy
// from the previous cycle go through the timeout policy; finished tasks
// are flagged, handed their switch tick, and submitted to the scheduler.
func (c *Control) runPeriodicTasks(b *bucket) bool {
	done := make([]*PeriodicTask, 0, len(b.tasks))
	for _, t := range b.tasks {
		if t.Done() {
			done = append(done, t)
			continue
		}
		c.rec.ObserveOverrun(b.rate.String())
		if !c.timeout(t) {
			c.keepWorking.Store(false)
			return false
		}
	}

	for _, t := range done {
		t.SetWorkToDo(true)
		t.SendSwitchTick()
		if r := t.Region(); r != nil {
			c.rec.IncTick(r.ID(), "switch")
		}
	}
	for _, t := range done {
		t := t
		if err := c.sched.AddTask(t.Invoke); err != nil {
			c.sink.Log(logging.Entry{
				Level:   logging.ErrorLevel,
				Channel: taskChannel(t),
				Text:    "dispatch to scheduler failed",
				Fields:  map[string]any{"error": err.Error()},
			})
			t.SetWorkToDo(false)
			continue
		}
		if r := t.Region(); r != nil {
			c.rec.IncTick(r.ID(), "work")
		}
	}
	c.rec.SetQueueDepth(c.sched.NrOfWaitingTasks())
	return true
}

// waitForCurrentTasks blocks until every task due at the current epoch
// has finished its previous cycle, bounded by each bucket's tick. A task
// that misses the bound goes through the timeout policy.
func (c *Control) waitForCurrentTasks() {
	now := c.clk.SteadyNow()
	for _, b := range []*bucket{&c.slow, &c.medium, &c.fast} {
		if now%b.tick != 0 {
			continue
		}
		for _, t := range b.tasks {
			if t.WaitUntilDone(b.tick) {
				continue
			}
			c.rec.ObserveOverrun(b.rate.String())
			if !c.timeout(t) {
				c.keepWorking.Store(false)
				return
			}
		}
	}
}

// LastException pops and returns the most recent task-overrun error, or
// nil when none is pending.
func (c *Control) LastException() error {
	c.excMu.Lock()
	defer c.excMu.Unlock()
	if len(c.excs) == 0 {
		return nil
	}
	err := c.excs[len(c.excs)-1]
	c.excs = c.excs[:len(c.excs)-1]
	return err
}

func (c *Control) storeOverrun(t *PeriodicTask) {
	err := liberr.CodeOutOfTime.Error(nil)
	c.excMu.Lock()
	c.excs = append(c.excs, err)
	c.excMu.Unlock()

	c.sink.Log(logging.Entry{
		Level:   logging.WarnLevel,
		Channel: taskChannel(t),
		Text:    "periodic task missed its tick deadline",
	})
}

func taskChannel(t *PeriodicTask) string {
	if r := t.Region(); r != nil {
		return r.ID()
	}
	return "core"
}
