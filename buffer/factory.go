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

package buffer

import (
	"github.com/sabouaram/dataflow/port"
	"github.com/sabouaram/dataflow/region"
)

// Ticker is the tick surface every real (non-pass-through) buffer
// exposes to the factory rule.
type Ticker interface {
	SwitchActive()
	SwitchPassive()
	SwitchActivePassive()
	WorkTick()
}

// WireTicks applies the factory rule for a buffer between an active and
// a passive port's regions. The caller has already decided the regions
// differ (same-region connections take a pass-through and never reach
// here):
//
//   - equal tick duration: the active region's switch tick drives the
//     direct intern-to-extern shortcut;
//   - different tick durations: the active region's switch tick drives
//     SwitchActive and the passive region's switch tick drives
//     SwitchPassive. For an event buffer (producer active) that moves
//     intern to middle, then middle to extern; for a state buffer
//     (consumer active) SwitchPassive copies intern to middle and
//     SwitchActive copies middle to extern.
//
// The passive region's work tick always drives the buffer's work tick.
func WireTicks(active, passive *region.Region, b Ticker) {
	if region.SameTickRate(active, passive) {
		active.SwitchTick().Connect(func(port.Void) { b.SwitchActivePassive() })
	} else {
		active.SwitchTick().Connect(func(port.Void) { b.SwitchActive() })
		passive.SwitchTick().Connect(func(port.Void) { b.SwitchPassive() })
	}
	passive.WorkTick().Connect(func(port.Void) { b.WorkTick() })
}
