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

// Package region defines the rate-group a set of nodes executes in. A
// region carries a stable string id, a tick period, and two void event
// sources: the switch tick (advances cross-region buffer generations) and
// the work tick (fans out to every work handler registered with the
// region). Nodes read their region to discover which tick to register
// work on; ports read it to decide whether a connection crosses a region
// boundary.
package region

import (
	"time"

	liberr "github.com/sabouaram/dataflow/errs"
	"github.com/sabouaram/dataflow/port"
)

// The three named tick rates. The minimum scheduling granularity is the
// fast tick; medium is 10x fast and slow is 100x fast.
const (
	FastTick   = 10 * time.Millisecond
	MediumTick = 100 * time.Millisecond
	SlowTick   = time.Second

	MinTickLength = FastTick
)

// Rate names one of the three tick rates.
type Rate uint8

const (
	Fast Rate = iota
	Medium
	Slow
)

// Duration returns the tick period of this rate, or an InvalidRate error
// for any value that is not one of the three named rates.
func (r Rate) Duration() (time.Duration, error) {
	switch r {
	case Fast:
		return FastTick, nil
	case Medium:
		return MediumTick, nil
	case Slow:
		return SlowTick, nil
	default:
		return 0, liberr.CodeInvalidRate.Error(nil)
	}
}

func (r Rate) String() string {
	switch r {
	case Fast:
		return "fast"
	case Medium:
		return "medium"
	case Slow:
		return "slow"
	default:
		return "invalid"
	}
}

// TickController provides the interface to cyclic ticks for nodes: two
// void event sources, one fired per buffer switch and one per work cycle.
type TickController struct {
	switchBuffers port.EventSource[port.Void]
	work          port.EventSource[port.Void]
}

// SwitchTick returns the event source fired on every buffer switch of the
// surrounding region.
func (t *TickController) SwitchTick() *port.EventSource[port.Void] {
	return &t.switchBuffers
}

// WorkTick returns the event source fired on every work cycle of the
// surrounding region. Connect nodes that want to be triggered every cycle
// to this.
func (t *TickController) WorkTick() *port.EventSource[port.Void] {
	return &t.work
}

// SwitchBuffers fires the switch tick: buffers in the region advance one
// generation.
func (t *TickController) SwitchBuffers() {
	t.switchBuffers.Fire(port.Void{})
}

// InWork returns the closure the scheduler invokes to run the region's
// work cycle.
func (t *TickController) InWork() func() {
	return func() { t.work.Fire(port.Void{}) }
}

// Region is a single rate-group: an id, a tick period, and the tick
// controller every node and port in the region shares.
type Region struct {
	Ticks TickController

	id           string
	tickDuration time.Duration
}

// New returns a region with the given id and tick period.
func New(id string, tickDuration time.Duration) *Region {
	return &Region{
		id:           id,
		tickDuration: tickDuration,
	}
}

// ID returns the region's stable string id.
func (r *Region) ID() string {
	return r.id
}

// Duration returns the region's tick period.
func (r *Region) Duration() time.Duration {
	return r.tickDuration
}

// SwitchTick returns the region's switch-tick event source.
func (r *Region) SwitchTick() *port.EventSource[port.Void] {
	return r.Ticks.SwitchTick()
}

// WorkTick returns the region's work-tick event source.
func (r *Region) WorkTick() *port.EventSource[port.Void] {
	return r.Ticks.WorkTick()
}

// NewRegion creates a further region from this one, inheriting nothing
// but the construction recipe. Embedding programs that mint regions
// through an Infrastructure get regions already wired to the scheduler
// instead.
func (r *Region) NewRegion(id string, tickDuration time.Duration) *Region {
	return New(id, tickDuration)
}

// SameRegion reports whether both ports' regions are one rate-group.
func SameRegion(a, b *Region) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID() == b.ID()
}

// SameTickRate reports whether both regions tick with the same period.
func SameTickRate(a, b *Region) bool {
	return a.Duration() == b.Duration()
}
