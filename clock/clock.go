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

// Package clock decouples schedule time from wall time: the kernel's
// timings run on a virtual clock whose flow is controlled by a master,
// advanced one tick at a time by the cycle controller. The virtual clock
// has a steady face (relative durations since start, never set backwards)
// and a system face (absolute time points, settable for replay). The
// master is a plain value owned by its cycle controller, not process
// state.
package clock

import (
	"time"

	libatm "github.com/sabouaram/dataflow/atomic"
)

// Master controls the two virtual clock faces. Advance moves both forward
// by exactly one tick; the tick length is fixed at construction and is the
// smallest duration the schedule can express.
type Master struct {
	tick   time.Duration
	steady libatm.Value[time.Duration]
	system libatm.Value[time.Time]
}

// NewMaster returns a master clock with the given tick length, its steady
// face at zero and its system face at the zero time.Time.
func NewMaster(tick time.Duration) *Master {
	m := &Master{
		tick:   tick,
		steady: libatm.NewValue[time.Duration](),
		system: libatm.NewValue[time.Time](),
	}
	return m
}

// Tick returns the master's tick length.
func (m *Master) Tick() time.Duration {
	return m.tick
}

// Advance moves both virtual clock faces forward by one tick.
func (m *Master) Advance() {
	m.steady.Store(m.steady.Load() + m.tick)
	m.system.Store(m.system.Load().Add(m.tick))
}

// SteadyNow returns the virtual time elapsed since the clock started.
// If SteadyNow is called twice with results t1 and t2, t2 >= t1 holds.
func (m *Master) SteadyNow() time.Duration {
	return m.steady.Load()
}

// SystemNow returns the current absolute virtual time point.
func (m *Master) SystemNow() time.Time {
	return m.system.Load()
}

// SetTime sets the system face to r, for replays of logged data. The
// steady face only carries relative timings and is never set.
func (m *Master) SetTime(r time.Time) {
	m.system.Store(r)
}
