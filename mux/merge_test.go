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

package mux_test

import (
	"github.com/sabouaram/dataflow/mux"
	"github.com/sabouaram/dataflow/port"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func negate(x int) int { return -x }

var _ = Describe("Mux and merge", func() {
	It("negates, merges and negates three sources into 6", func() {
		a := port.NewStateSource[int](func() int { return 1 })
		b := port.NewStateSource[int](func() int { return 2 })
		c := port.NewStateSource[int](func() int { return 3 })

		sources := mux.NewStateSourceMux(a, b, c)
		negated := mux.LiftState(sources, negate)

		merged := mux.NewMerge[int, int](negated.Arity(), func(xs []int) int {
			sum := 0
			for _, x := range xs {
				sum += x
			}
			return sum
		})
		for i, src := range negated.Members() {
			merged.In(i).Connect(src)
		}

		sink := port.NewStateSink[int]()
		port.ConnectStateThrough(sink, merged.Source(), negate)

		v, err := sink.Get()
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(6))
	})

	It("rejects connecting muxes of mismatched arity", func() {
		a := port.NewStateSource[int](func() int { return 1 })
		b := port.NewStateSource[int](func() int { return 2 })
		sources := mux.NewStateSourceMux(a, b)
		sinks := mux.NewStateSinkMux[int](3)

		err := sinks.ConnectSources(sources)
		Expect(err).To(HaveOccurred())
	})

	It("DynamicMerger grows inputs on demand", func() {
		dm := mux.NewDynamicMerger[int]()
		s1 := dm.In()
		s2 := dm.In()
		s1.Connect(port.NewStateSource[int](func() int { return 10 }))
		s2.Connect(port.NewStateSource[int](func() int { return 20 }))

		vals, err := dm.Values()
		Expect(err).ToNot(HaveOccurred())
		Expect(vals).To(Equal([]int{10, 20}))
	})

	It("event mux connects element-wise and lifts a transform", func() {
		s1 := port.NewEventSource[int]()
		s2 := port.NewEventSource[int]()
		srcs := mux.NewEventSourceMux(s1, s2)

		var got []int
		k1 := port.NewEventSink[int](func(v int) { got = append(got, v) })
		k2 := port.NewEventSink[int](func(v int) { got = append(got, v) })
		sinks := mux.NewEventSinkMux(k1, k2)

		Expect(srcs.ConnectSinks(sinks)).ToNot(HaveOccurred())

		lifted := mux.LiftEvent(srcs, func(x int) int { return x * 10 })
		var lifted0 int
		lifted.Members()[0].Connect(func(v int) { lifted0 = v })

		s1.Fire(1)
		s2.Fire(2)

		Expect(got).To(Equal([]int{1, 2}))
		Expect(lifted0).To(Equal(10))
	})
})
