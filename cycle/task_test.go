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

package cycle_test

import (
	"time"

	"github.com/sabouaram/dataflow/cycle"
	"github.com/sabouaram/dataflow/port"
	"github.com/sabouaram/dataflow/region"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PeriodicTask", func() {
	It("is done until work is flagged", func() {
		t := cycle.NewTask(func() {})
		Expect(t.Done()).To(BeTrue())

		t.SetWorkToDo(true)
		Expect(t.Done()).To(BeFalse())

		t.SetWorkToDo(false)
		Expect(t.Done()).To(BeTrue())
	})

	It("Invoke runs the work, stamps the cycle, and clears the flag", func() {
		ran := 0
		t := cycle.NewTask(func() { ran++ })
		t.SetWorkToDo(true)

		t.Invoke()

		Expect(ran).To(Equal(1))
		Expect(t.Done()).To(BeTrue())
	})

	It("WaitUntilDone returns immediately for a done task", func() {
		t := cycle.NewTask(func() {})
		Expect(t.WaitUntilDone(time.Millisecond)).To(BeTrue())
	})

	It("WaitUntilDone times out against the cycle start", func() {
		t := cycle.NewTask(func() {})
		t.SetWorkToDo(true)
		Expect(t.WaitUntilDone(20 * time.Millisecond)).To(BeFalse())
	})

	It("WaitUntilDone wakes when the work completes", func() {
		t := cycle.NewTask(func() {})
		t.SetWorkToDo(true)
		go func() {
			time.Sleep(10 * time.Millisecond)
			t.SetWorkToDo(false)
		}()
		Expect(t.WaitUntilDone(time.Second)).To(BeTrue())
	})

	It("a region task fires the work tick on Invoke and the switch tick on demand", func() {
		r := region.New("r", region.FastTick)
		works, switches := 0, 0
		r.WorkTick().Connect(func(port.Void) { works++ })
		r.SwitchTick().Connect(func(port.Void) { switches++ })

		t := cycle.NewRegionTask(r)
		Expect(t.Region()).To(Equal(r))

		t.Invoke()
		t.SendSwitchTick()

		Expect(works).To(Equal(1))
		Expect(switches).To(Equal(1))
	})

	It("an unbound task ignores SendSwitchTick", func() {
		t := cycle.NewTask(func() {})
		Expect(t.SendSwitchTick).ToNot(Panic())
	})
})
