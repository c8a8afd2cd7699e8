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

package clock_test

import (
	"time"

	"github.com/sabouaram/dataflow/clock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Master clock", func() {
	It("starts at zero and advances both faces by one tick", func() {
		m := clock.NewMaster(10 * time.Millisecond)
		Expect(m.SteadyNow()).To(Equal(time.Duration(0)))
		epoch := m.SystemNow()

		m.Advance()
		m.Advance()

		Expect(m.SteadyNow()).To(Equal(20 * time.Millisecond))
		Expect(m.SystemNow()).To(Equal(epoch.Add(20 * time.Millisecond)))
	})

	It("keeps the steady face monotonic across SetTime", func() {
		m := clock.NewMaster(time.Millisecond)
		m.Advance()
		before := m.SteadyNow()

		m.SetTime(time.Unix(42, 0))

		Expect(m.SteadyNow()).To(Equal(before))
		Expect(m.SystemNow()).To(Equal(time.Unix(42, 0)))

		m.Advance()
		Expect(m.SteadyNow()).To(BeNumerically(">", before))
		Expect(m.SystemNow()).To(Equal(time.Unix(42, 0).Add(time.Millisecond)))
	})

	It("reports its tick length", func() {
		Expect(clock.NewMaster(time.Second).Tick()).To(Equal(time.Second))
	})
})
