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

package forest_test

import (
	"github.com/sabouaram/dataflow/forest"
	"github.com/sabouaram/dataflow/region"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Forest", func() {
	var (
		root *region.Region
		f    *forest.Forest
	)

	BeforeEach(func() {
		root = region.New("root_region", region.MediumTick)
		f = forest.New("root", root, nil)
	})

	It("creates children through the parent factory, inserted trailing", func() {
		a, err := f.Root().MakeChild("a")
		Expect(err).ToNot(HaveOccurred())
		b, err := f.Root().MakeChild("b")
		Expect(err).ToNot(HaveOccurred())

		Expect(f.Root().Children()).To(Equal([]*forest.Node{a, b}))
		Expect(f.NrOfNodes()).To(Equal(3))
	})

	It("children inherit the parent's region unless overridden", func() {
		fast := region.New("fast", region.FastTick)

		a, err := f.Root().MakeChild("a")
		Expect(err).ToNot(HaveOccurred())
		b, err := f.Root().MakeChildInRegion("b", fast)
		Expect(err).ToNot(HaveOccurred())

		Expect(a.Region()).To(Equal(root))
		Expect(b.Region()).To(Equal(fast))
	})

	It("joins names from root to node into a unique path", func() {
		a, _ := f.Root().MakeChild("a")
		b, _ := a.MakeChild("b")
		c, _ := b.MakeChild("c")

		Expect(c.FullName()).To(Equal("root/a/b/c"))
		Expect(f.Root().FullName()).To(Equal("root"))
	})

	It("assigns a distinct id to every node", func() {
		a, _ := f.Root().MakeChild("a")
		b, _ := f.Root().MakeChild("a")
		Expect(a.ID()).ToNot(Equal(b.ID()))
	})

	It("erases a node together with its subtree", func() {
		a, _ := f.Root().MakeChild("a")
		b, _ := a.MakeChild("b")
		_, _ = b.MakeChild("c")
		keep, _ := f.Root().MakeChild("keep")

		Expect(f.Root().EraseWithSubtree(a)).ToNot(HaveOccurred())

		Expect(f.NrOfNodes()).To(Equal(2))
		Expect(f.Root().Children()).To(Equal([]*forest.Node{keep}))
	})

	It("rejects erasing a node that is not a child", func() {
		a, _ := f.Root().MakeChild("a")
		b, _ := a.MakeChild("b")
		Expect(f.Root().EraseWithSubtree(b)).To(HaveOccurred())
	})

	It("rejects creating children below an erased node", func() {
		a, _ := f.Root().MakeChild("a")
		Expect(f.Root().EraseWithSubtree(a)).ToNot(HaveOccurred())

		_, err := a.MakeChild("b")
		Expect(err).To(HaveOccurred())
	})
})
