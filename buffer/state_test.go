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
	"github.com/sabouaram/dataflow/region"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("StateBuffer", func() {
	It("publishes a sample one switch pair after the work tick that took it", func() {
		b := buffer.NewState[int]()
		n := 0
		b.In().Connect(port.NewStateSource[int](func() int { n++; return n }))

		v, err := b.Out().Get()
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(0), "extern holds the zero value before any tick")

		b.WorkTick()
		v, _ = b.Out().Get()
		Expect(v).To(Equal(0))

		b.SwitchPassive()
		v, _ = b.Out().Get()
		Expect(v).To(Equal(0))

		b.SwitchActive()
		v, _ = b.Out().Get()
		Expect(v).To(Equal(1))
	})

	It("samples the latest value, not every value", func() {
		b := buffer.NewState[int]()
		cur := 0
		b.In().Connect(port.NewStateSource[int](func() int { return cur }))

		cur = 5
		b.WorkTick()
		cur = 9
		b.WorkTick()
		b.SwitchActivePassive()

		v, _ := b.Out().Get()
		Expect(v).To(Equal(9))
	})

	It("leaves intern untouched while the in port is unconnected", func() {
		b := buffer.NewState[int]()
		b.WorkTick()
		b.SwitchActivePassive()
		v, err := b.Out().Get()
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(0))
	})
})

var _ = Describe("StatePassThrough", func() {
	It("forwards every Get straight to the connected source", func() {
		b := buffer.NewStatePassThrough[int]()
		n := 0
		b.In().Connect(port.NewStateSource[int](func() int { n++; return n }))

		v, _ := b.Out().Get()
		Expect(v).To(Equal(1))
		v, _ = b.Out().Get()
		Expect(v).To(Equal(2))
	})
})

var _ = Describe("WireTicks", func() {
	It("wires the same-rate shortcut to the active region's switch tick", func() {
		active := region.New("a", region.FastTick)
		passive := region.New("p", region.FastTick)

		b := buffer.NewState[int]()
		b.In().Connect(port.NewStateSource[int](func() int { return 7 }))
		buffer.WireTicks(active, passive, b)

		passive.Ticks.InWork()()
		v, _ := b.Out().Get()
		Expect(v).To(Equal(0))

		active.Ticks.SwitchBuffers()
		v, _ = b.Out().Get()
		Expect(v).To(Equal(7), "one switch suffices at equal rates")
	})

	It("wires both switch ticks at different rates", func() {
		active := region.New("a", region.FastTick)
		passive := region.New("p", region.MediumTick)

		b := buffer.NewState[int]()
		b.In().Connect(port.NewStateSource[int](func() int { return 7 }))
		buffer.WireTicks(active, passive, b)

		passive.Ticks.InWork()()
		active.Ticks.SwitchBuffers()
		v, _ := b.Out().Get()
		Expect(v).To(Equal(0), "active switch alone advances only middle to extern")

		passive.Ticks.SwitchBuffers()
		active.Ticks.SwitchBuffers()
		v, _ = b.Out().Get()
		Expect(v).To(Equal(7))
	})
})
