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

// Package scheduler executes opaque 0-ary tasks. The parallel scheduler
// is a worker pool fed by a FIFO queue; the blocking scheduler runs each
// task synchronously on the caller's goroutine. Both refuse tasks after
// Stop.
package scheduler

import (
	"runtime"
	"sync"

	liberr "github.com/sabouaram/dataflow/errs"
)

// Task is one unit of work handed to a scheduler.
type Task func()

// Scheduler accepts opaque 0-ary tasks for execution.
type Scheduler interface {
	// AddTask enqueues a task. Adding after Stop fails with
	// SchedulerStopped.
	AddTask(t Task) error

	// Stop ends task execution and joins every worker. Idempotent.
	Stop()

	// NrOfWaitingTasks returns the queued-but-not-started count.
	NrOfWaitingTasks() int
}

// NumThreads returns the default worker count: hardware concurrency, at
// least one.
func NumThreads() int {
	if n := runtime.NumCPU(); n > 1 {
		return n
	}
	return 1
}

// Parallel is a worker-pool scheduler: a FIFO task queue drained by a
// fixed set of worker goroutines, each blocking on a condition variable
// while idle.
type Parallel struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []Task
	doWork  bool
	workers sync.WaitGroup
}

// NewParallel starts a parallel scheduler with n workers; n <= 0 means
// NumThreads().
func NewParallel(n int) *Parallel {
	if n <= 0 {
		n = NumThreads()
	}
	s := &Parallel{doWork: true}
	s.cond = sync.NewCond(&s.mu)
	s.workers.Add(n)
	for i := 0; i < n; i++ {
		go s.workLoop()
	}
	return s
}

func (s *Parallel) workLoop() {
	defer s.workers.Done()
	for {
		s.mu.Lock()
		for s.doWork && len(s.queue) == 0 {
			s.cond.Wait()
		}
		if !s.doWork {
			s.mu.Unlock()
			return
		}
		job := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		job()
	}
}

// AddTask enqueues t and wakes one idle worker.
func (s *Parallel) AddTask(t Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.doWork {
		return liberr.CodeSchedulerStopped.Error(nil)
	}
	s.queue = append(s.queue, t)
	s.cond.Signal()
	return nil
}

// NrOfWaitingTasks returns the queued-but-not-started count.
func (s *Parallel) NrOfWaitingTasks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Stop flags every worker to terminate, wakes them all, and joins them.
// Queued tasks that no worker has started are dropped.
func (s *Parallel) Stop() {
	s.mu.Lock()
	if !s.doWork {
		s.mu.Unlock()
		return
	}
	s.doWork = false
	s.cond.Broadcast()
	s.mu.Unlock()
	s.workers.Wait()
}

// Blocking runs every task synchronously on the caller's goroutine,
// serializing concurrent callers. Useful for tests and single-threaded
// embeddings.
type Blocking struct {
	mu      sync.Mutex
	stopped bool
}

// NewBlocking returns a blocking scheduler.
func NewBlocking() *Blocking {
	return &Blocking{}
}

// AddTask runs t before returning. Adding after Stop fails with
// SchedulerStopped.
func (s *Blocking) AddTask(t Task) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return liberr.CodeSchedulerStopped.Error(nil)
	}
	s.mu.Unlock()

	t()
	return nil
}

// NrOfWaitingTasks is always zero: the blocking scheduler never queues.
func (s *Blocking) NrOfWaitingTasks() int {
	return 0
}

// Stop refuses all further tasks.
func (s *Blocking) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}
