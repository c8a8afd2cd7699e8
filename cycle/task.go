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

// Package cycle multiplexes periodic tasks onto a scheduler and enforces
// per-cycle deadlines: three rate buckets (fast, medium, slow), a master
// clock advanced one minimum tick per work cycle, a pluggable main-loop
// pacing strategy, and an overrun channel that records OutOfTime errors
// instead of raising them through worker goroutines.
package cycle

import (
	"sync"
	"time"

	"github.com/sabouaram/dataflow/region"
)

// PeriodicTask is one callable executed at a fixed rate by the cycle
// controller, with a completion flag the main loop synchronizes on.
// Optionally bound to a region, in which case invoking the task drives
// the region's work tick and the controller delivers the region's switch
// tick before each dispatch.
type PeriodicTask struct {
	mu        sync.Mutex
	workToDo  bool
	done      chan struct{}
	work      func()
	workStart time.Time
	region    *region.Region
}

// NewTask builds a periodic task around job. A nil job is replaced by a
// no-op.
func NewTask(job func()) *PeriodicTask {
	if job == nil {
		job = func() {}
	}
	done := make(chan struct{})
	close(done)
	return &PeriodicTask{
		work:      job,
		done:      done,
		workStart: time.Now(),
	}
}

// NewRegionTask builds a periodic task whose work is firing r's work
// tick, bound to r so the controller can deliver its switch tick.
func NewRegionTask(r *region.Region) *PeriodicTask {
	t := NewTask(r.Ticks.InWork())
	t.region = r
	return t
}

// Region returns the bound region, or nil.
func (t *PeriodicTask) Region() *region.Region {
	return t.region
}

// Done reports whether the current cycle's work has completed.
func (t *PeriodicTask) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.workToDo
}

// SetWorkToDo sets the completion flag; clearing it wakes every waiter.
func (t *PeriodicTask) SetWorkToDo(todo bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.workToDo == todo {
		return
	}
	t.workToDo = todo
	if todo {
		t.done = make(chan struct{})
	} else {
		close(t.done)
	}
}

// WaitUntilDone blocks until the task's work completes, but only up to
// the start of the current cycle plus timeout. Reports whether the task
// is done.
func (t *PeriodicTask) WaitUntilDone(timeout time.Duration) bool {
	t.mu.Lock()
	if !t.workToDo {
		t.mu.Unlock()
		return true
	}
	done := t.done
	deadline := t.workStart.Add(timeout)
	t.mu.Unlock()

	wait := time.Until(deadline)
	if wait <= 0 {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

// SendSwitchTick fires the bound region's switch tick; unbound tasks
// no-op.
func (t *PeriodicTask) SendSwitchTick() {
	if t.region != nil {
		t.region.Ticks.SwitchBuffers()
	}
}

// Invoke runs one cycle: stamps the cycle start, runs the work, and
// clears the completion flag.
func (t *PeriodicTask) Invoke() {
	t.mu.Lock()
	t.workStart = time.Now()
	work := t.work
	t.mu.Unlock()

	work()
	t.SetWorkToDo(false)
}
