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

package buffer_test

import (
	"github.com/sabouaram/dataflow/buffer"
	"github.com/sabouaram/dataflow/port"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EventBuffer", func() {
	var (
		b   *buffer.EventBuffer[int]
		got []int
	)

	BeforeEach(func() {
		b = buffer.NewEvent[int]()
		got = nil
		b.Out().Connect(func(v int) { got = append(got, v) })
	})

	It("publishes an event only after both switches and the work tick", func() {
		Expect(b.In().Invoke(7)).ToNot(HaveOccurred())

		b.WorkTick()
		Expect(got).To(BeEmpty())

		b.SwitchActive()
		b.WorkTick()
		Expect(got).To(BeEmpty())

		b.SwitchPassive()
		Expect(got).To(BeEmpty())

		b.WorkTick()
		Expect(got).To(Equal([]int{7}))

		b.WorkTick()
		Expect(got).To(Equal([]int{7}), "each event is visible in exactly one work tick")
	})

	It("hides events produced after the most recent active switch", func() {
		Expect(b.In().Invoke(1)).ToNot(HaveOccurred())
		b.SwitchActive()
		Expect(b.In().Invoke(2)).ToNot(HaveOccurred())
		b.SwitchPassive()
		b.WorkTick()

		Expect(got).To(Equal([]int{1}))
	})

	It("appends to an unread middle generation instead of dropping it", func() {
		Expect(b.In().Invoke(1)).ToNot(HaveOccurred())
		b.SwitchActive()
		Expect(b.In().Invoke(2)).ToNot(HaveOccurred())
		b.SwitchActive()

		b.SwitchPassive()
		b.WorkTick()
		Expect(got).To(Equal([]int{1, 2}))
	})

	It("aggregates fast events across same-rate switches", func() {
		Expect(b.In().Invoke(1)).ToNot(HaveOccurred())
		b.SwitchActivePassive()
		Expect(b.In().Invoke(2)).ToNot(HaveOccurred())
		b.SwitchActivePassive()

		b.WorkTick()
		Expect(got).To(Equal([]int{1, 2}))
	})
})

var _ = Describe("VoidEventBuffer", func() {
	It("counts events through the same generation protocol", func() {
		b := buffer.NewVoidEvent()
		fired := 0
		b.Out().Connect(func(port.Void) { fired++ })

		Expect(b.In().Invoke(port.Void{})).ToNot(HaveOccurred())
		Expect(b.In().Invoke(port.Void{})).ToNot(HaveOccurred())
		b.SwitchActive()
		b.SwitchPassive()
		b.WorkTick()
		Expect(fired).To(Equal(2))

		b.WorkTick()
		Expect(fired).To(Equal(2))
	})

	It("merges counts directly on the same-rate shortcut", func() {
		b := buffer.NewVoidEvent()
		fired := 0
		b.Out().Connect(func(port.Void) { fired++ })

		Expect(b.In().Invoke(port.Void{})).ToNot(HaveOccurred())
		b.SwitchActivePassive()
		Expect(b.In().Invoke(port.Void{})).ToNot(HaveOccurred())
		b.SwitchActivePassive()
		b.WorkTick()
		Expect(fired).To(Equal(2))
	})
})

var _ = Describe("EventPassThrough", func() {
	It("forwards synchronously with no generations", func() {
		b := buffer.NewEventPassThrough[int]()
		var got int
		b.Out().Connect(func(v int) { got = v })

		Expect(b.In().Invoke(42)).ToNot(HaveOccurred())
		Expect(got).To(Equal(42))
	})
})
