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

package nodeport_test

import (
	"github.com/sabouaram/dataflow/forest"
	"github.com/sabouaram/dataflow/graphviz"
	"github.com/sabouaram/dataflow/nodeport"
	"github.com/sabouaram/dataflow/region"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// twoRegions builds a forest with one child node in each of two regions.
func twoRegions(r1, r2 *region.Region, g graphviz.Observer) (n1, n2 *forest.Node) {
	f := forest.New("root", r1, g)
	n1, _ = f.Root().MakeChild("producer")
	n2, _ = f.Root().MakeChildInRegion("consumer", r2)
	return n1, n2
}

var _ = Describe("Node-aware event ports", func() {
	It("delivers a same-region chain synchronously, before any tick", func() {
		r := region.New("r", region.FastTick)
		n1, n2 := twoRegions(r, r, nil)

		src := nodeport.NewEventSource[int](n1, "out")
		var got int
		sink := nodeport.NewEventSink[int](n2, "in", func(v int) { got = v })

		Expect(nodeport.ConnectEventThrough(src, func(x int) int { return x + 1 }, sink)).ToNot(HaveOccurred())
		src.Fire(41)

		Expect(got).To(Equal(42))
	})

	It("buffers a cross-region same-rate event until the consumer's work tick", func() {
		r1 := region.New("r1", region.FastTick)
		r2 := region.New("r2", region.FastTick)
		n1, n2 := twoRegions(r1, r2, nil)

		src := nodeport.NewEventSource[int](n1, "out")
		got := 0
		sink := nodeport.NewEventSink[int](n2, "in", func(v int) { got = v })
		Expect(src.Connect(sink)).ToNot(HaveOccurred())

		src.Fire(7)
		Expect(got).To(Equal(0), "nothing crosses before ticks")

		r1.Ticks.SwitchBuffers()
		Expect(got).To(Equal(0))

		r2.Ticks.SwitchBuffers()
		Expect(got).To(Equal(0), "same-rate wiring ignores the passive switch")

		r2.Ticks.InWork()()
		Expect(got).To(Equal(7))
	})

	It("records ports and connections into the graph observer", func() {
		g := graphviz.New()
		r := region.New("r", region.FastTick)
		n1, n2 := twoRegions(r, r, g)

		src := nodeport.NewEventSource[int](n1, "out")
		sink := nodeport.NewEventSink[int](n2, "in", func(int) {})
		Expect(src.Connect(sink)).ToNot(HaveOccurred())

		Expect(g.Nodes()).To(HaveLen(2))
		Expect(g.Edges()).To(Equal([]graphviz.EdgeRecord{
			{SourcePort: src.ID(), SinkPort: sink.ID()},
		}))
		Expect(g.Nodes()[0].Region).To(Equal("r"))
	})
})

var _ = Describe("Node-aware state ports", func() {
	It("publishes cross-rate state on the consumer's switch tick", func() {
		r1 := region.New("r1", region.MediumTick)
		r2 := region.New("r2", region.FastTick)
		n1, n2 := twoRegions(r1, r2, nil)

		n := 0
		src := nodeport.NewStateSource[int](n1, "out", func() int { n++; return n })
		sink := nodeport.NewStateSink[int](n2, "in")
		Expect(sink.Connect(src)).ToNot(HaveOccurred())

		v, err := sink.Get()
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(0), "default before any tick")

		r1.Ticks.InWork()()
		v, _ = sink.Get()
		Expect(v).To(Equal(0))

		r1.Ticks.SwitchBuffers()
		v, _ = sink.Get()
		Expect(v).To(Equal(0))

		r2.Ticks.SwitchBuffers()
		v, _ = sink.Get()
		Expect(v).To(Equal(1))
	})

	It("connects same-region state synchronously", func() {
		r := region.New("r", region.FastTick)
		n1, n2 := twoRegions(r, r, nil)

		src := nodeport.NewStateSource[int](n1, "out", func() int { return 5 })
		sink := nodeport.NewStateSink[int](n2, "in")
		Expect(sink.Connect(src)).ToNot(HaveOccurred())

		v, err := sink.Get()
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(5))
	})

	It("runs a cross-region transform on the producer side", func() {
		r1 := region.New("r1", region.FastTick)
		r2 := region.New("r2", region.FastTick)
		n1, n2 := twoRegions(r1, r2, nil)

		src := nodeport.NewStateSource[int](n1, "out", func() int { return 10 })
		sink := nodeport.NewStateSink[int](n2, "in")
		Expect(nodeport.ConnectStateThrough(sink, src, func(x int) int { return x * 2 })).ToNot(HaveOccurred())

		// sink is active, src passive: producer region r1 is the passive
		// side of the buffer, so its work tick samples through the
		// transform and the active region's switch publishes.
		r1.Ticks.InWork()()
		r2.Ticks.SwitchBuffers()

		v, _ := sink.Get()
		Expect(v).To(Equal(20))
	})
})
