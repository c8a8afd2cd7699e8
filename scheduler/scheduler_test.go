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

package scheduler_test

import (
	"errors"
	"sync/atomic"

	liberr "github.com/sabouaram/dataflow/errs"
	"github.com/sabouaram/dataflow/scheduler"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parallel scheduler", func() {
	It("executes every added task", func() {
		s := scheduler.NewParallel(4)
		defer s.Stop()

		var n atomic.Int64
		for i := 0; i < 32; i++ {
			Expect(s.AddTask(func() { n.Add(1) })).ToNot(HaveOccurred())
		}

		Eventually(func() int64 { return n.Load() }).Should(Equal(int64(32)))
	})

	It("runs tasks concurrently on several workers", func() {
		s := scheduler.NewParallel(2)
		defer s.Stop()

		gate := make(chan struct{})
		meet := make(chan struct{}, 2)
		task := func() {
			meet <- struct{}{}
			<-gate
		}
		Expect(s.AddTask(task)).ToNot(HaveOccurred())
		Expect(s.AddTask(task)).ToNot(HaveOccurred())

		Eventually(meet).Should(HaveLen(2), "both tasks entered before either finished")
		close(gate)
	})

	It("counts queued-but-not-started tasks", func() {
		s := scheduler.NewParallel(1)
		defer s.Stop()

		gate := make(chan struct{})
		started := make(chan struct{})
		Expect(s.AddTask(func() { close(started); <-gate })).ToNot(HaveOccurred())
		<-started
		Expect(s.AddTask(func() {})).ToNot(HaveOccurred())
		Expect(s.AddTask(func() {})).ToNot(HaveOccurred())

		Expect(s.NrOfWaitingTasks()).To(Equal(2))
		close(gate)
	})

	It("refuses tasks after Stop", func() {
		s := scheduler.NewParallel(1)
		s.Stop()

		err := s.AddTask(func() {})
		Expect(err).To(HaveOccurred())
		var dferr liberr.Error
		Expect(errors.As(err, &dferr)).To(BeTrue())
		Expect(dferr.IsCode(liberr.CodeSchedulerStopped)).To(BeTrue())
	})

	It("Stop is idempotent", func() {
		s := scheduler.NewParallel(1)
		s.Stop()
		Expect(s.Stop).ToNot(Panic())
	})
})

var _ = Describe("Blocking scheduler", func() {
	It("runs the task before AddTask returns", func() {
		s := scheduler.NewBlocking()
		ran := false
		Expect(s.AddTask(func() { ran = true })).ToNot(HaveOccurred())
		Expect(ran).To(BeTrue())
		Expect(s.NrOfWaitingTasks()).To(Equal(0))
	})

	It("refuses tasks after Stop", func() {
		s := scheduler.NewBlocking()
		s.Stop()
		err := s.AddTask(func() {})
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, liberr.ErrSchedulerStopped)).To(BeTrue())
	})
})
