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

package main

import (
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/sabouaram/dataflow/forest"
)

func newGraphCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "build the demo graph and dump the recorded ports and edges",
		RunE: func(*cobra.Command, []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			out := colorable.NewColorableStdout()
			head := color.New(color.Bold)
			dim := color.New(color.Faint)

			head.Fprintln(out, "forest")
			a.infra.Forest().Walk(func(n *forest.Node) {
				dim.Fprintf(out, "  %s  [%s]\n", n.FullName(), n.Region().ID())
			})

			head.Fprintln(out, "ports")
			for _, n := range a.infra.Graph().Nodes() {
				dim.Fprintf(out, "  %s  id %s  node %s  region %s\n", n.Name, n.ID, n.Parent, n.Region)
			}
			head.Fprintln(out, "edges")
			for _, e := range a.infra.Graph().Edges() {
				dim.Fprintf(out, "  %s -> %s\n", e.SourcePort, e.SinkPort)
			}
			return nil
		},
	}
}
