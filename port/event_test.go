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

package port_test

import (
	"errors"

	liberr "github.com/sabouaram/dataflow/errs"
	"github.com/sabouaram/dataflow/port"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EventSource / EventSink", func() {
	It("fires to zero handlers as a no-op", func() {
		src := port.NewEventSource[int]()
		Expect(func() { src.Fire(41) }).ToNot(Panic())
	})

	It("delivers a same-region chain: ES >> (x -> x+1) >> SK", func() {
		src := port.NewEventSource[int]()
		sink := port.NewEventSink[int](nil)

		var got int
		sink.SetHandler(func(v int) { got = v })

		port.ConnectEventThrough(src, func(x int) int { return x + 1 }, sink)
		src.Fire(41)

		Expect(got).To(Equal(42))
	})

	It("invokes handlers in registration order", func() {
		src := port.NewEventSource[int]()
		var order []int
		src.Connect(func(int) { order = append(order, 1) })
		src.Connect(func(int) { order = append(order, 2) })
		src.Connect(func(int) { order = append(order, 3) })

		src.Fire(0)
		Expect(order).To(Equal([]int{1, 2, 3}))
	})

	It("counts connected handlers and drops them on sink Close", func() {
		src := port.NewEventSource[int]()

		sinks := make([]*port.EventSink[int], 4)
		for i := range sinks {
			sinks[i] = port.NewEventSink[int](func(int) {})
			src.ConnectSink(sinks[i])
		}
		Expect(src.NrConnectedHandlers()).To(Equal(4))

		for _, s := range sinks {
			s.Close()
		}
		Expect(src.NrConnectedHandlers()).To(Equal(0))

		Expect(func() { src.Fire(99) }).ToNot(Panic())
	})

	It("destroying the source before the sink leaves the sink's handler intact", func() {
		src := port.NewEventSource[int]()
		sink := port.NewEventSink[int](nil)
		var got int
		sink.SetHandler(func(v int) { got = v })
		src.ConnectSink(sink)

		// The source simply drops out of scope; nothing notifies the sink.
		src = nil
		_ = src

		Expect(func() { sink.Invoke(7) }).ToNot(Panic())
		Expect(got).To(Equal(7))
	})

	It("Invoke fails with NotConnected when no handler is present", func() {
		sink := port.NewEventSink[int](nil)
		err := sink.Invoke(1)
		Expect(err).To(HaveOccurred())
		var dferr liberr.Error
		Expect(errors.As(err, &dferr)).To(BeTrue())
		Expect(dferr.IsCode(liberr.CodeNotConnected)).To(BeTrue())
		Expect(errors.Is(err, liberr.ErrBadStructure)).To(BeTrue())
	})
})
