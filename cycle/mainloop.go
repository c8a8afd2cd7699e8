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
	"time"

	"github.com/sabouaram/dataflow/region"
)

// MainLoop paces the cycle controller: each call to LoopBody runs one
// work cycle and decides how long to hold before the next. The
// controller injects its wait-for-current-tasks hook through
// SetWaitForCurrentTasks before Start.
type MainLoop interface {
	LoopBody(work func())

	// Arm resets the loop's pacing epoch; called once at Start.
	Arm()

	// SetWaitForCurrentTasks installs the controller's hook that blocks
	// until the previous cycle's tasks are done or overrun.
	SetWaitForCurrentTasks(wait func())
}

// RealTime paces cycles against the wall clock: one work cycle per
// minimum tick, sleeping off whatever the work left over.
type RealTime struct {
	wait func()
}

// NewRealTime returns a realtime-paced main loop.
func NewRealTime() *RealTime {
	return &RealTime{}
}

func (l *RealTime) Arm() {}

func (l *RealTime) SetWaitForCurrentTasks(wait func()) {
	l.wait = wait
}

func (l *RealTime) LoopBody(work func()) {
	start := time.Now()
	work()
	time.Sleep(time.Until(start.Add(region.MinTickLength)))
}

// AsFastAsPossible paces nothing: cycles run back to back, gated only by
// the previous cycle's tasks completing. Used for simulations and tests.
type AsFastAsPossible struct {
	wait func()
}

// NewAsFastAsPossible returns an unpaced main loop.
func NewAsFastAsPossible() *AsFastAsPossible {
	return &AsFastAsPossible{}
}

func (l *AsFastAsPossible) Arm() {}

func (l *AsFastAsPossible) SetWaitForCurrentTasks(wait func()) {
	l.wait = wait
}

func (l *AsFastAsPossible) LoopBody(work func()) {
	if l.wait != nil {
		l.wait()
	}
	work()
}

// TimeWarp paces cycles against the wall clock scaled by a warp factor:
// factor 2 runs at half speed, factor 0.5 at double speed. The factor
// may be changed while running; a change interrupts the current hold.
type TimeWarp struct {
	mu     sync.Mutex
	factor float64
	bump   chan struct{}
	wait   func()
}

// NewTimeWarp returns a warped main loop at factor 1.
func NewTimeWarp() *TimeWarp {
	return &TimeWarp{
		factor: 1,
		bump:   make(chan struct{}, 1),
	}
}

func (l *TimeWarp) Arm() {}

func (l *TimeWarp) SetWaitForCurrentTasks(wait func()) {
	l.wait = wait
}

// SetWarpFactor changes the pacing scale and interrupts the current
// hold so the new factor applies immediately.
func (l *TimeWarp) SetWarpFactor(factor float64) {
	l.mu.Lock()
	l.factor = factor
	l.mu.Unlock()
	select {
	case l.bump <- struct{}{}:
	default:
	}
}

func (l *TimeWarp) warpedTick() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return time.Duration(float64(region.MinTickLength) * l.factor)
}

func (l *TimeWarp) LoopBody(work func()) {
	start := time.Now()
	if l.wait != nil {
		l.wait()
	}
	work()

	for {
		deadline := start.Add(l.warpedTick())
		hold := time.Until(deadline)
		if hold <= 0 {
			return
		}
		timer := time.NewTimer(hold)
		select {
		case <-timer.C:
			return
		case <-l.bump:
			timer.Stop()
		}
	}
}
