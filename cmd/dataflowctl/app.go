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
	"github.com/sabouaram/dataflow/forest"
	"github.com/sabouaram/dataflow/infra"
	"github.com/sabouaram/dataflow/internal/demo"
	"github.com/sabouaram/dataflow/nodeport"
	"github.com/sabouaram/dataflow/region"
)

// app is the demo graph: a fast pulse feeding a slow recorder through
// an event buffer, and a fast counter sampled by a medium-region sink
// through a state buffer.
type app struct {
	infra    *infra.Infrastructure
	fast     *region.Region
	medium   *region.Region
	slow     *region.Region
	pulse    *demo.Pulse
	recorder *demo.Recorder
	counter  *demo.Counter
	sampler  *nodeport.StateSink[int]
	sampNode *forest.Node
}

func buildApp(opts ...infra.Option) (*app, error) {
	i, err := infra.New(opts...)
	if err != nil {
		return nil, err
	}

	a := &app{infra: i}
	if a.fast, err = i.AddRegion("fast", region.Fast); err != nil {
		return nil, err
	}
	if a.medium, err = i.AddRegion("medium", region.Medium); err != nil {
		return nil, err
	}
	if a.slow, err = i.AddRegion("slow", region.Slow); err != nil {
		return nil, err
	}

	root := i.NodeOwner()
	fastNode, err := root.MakeChildInRegion("fast", a.fast)
	if err != nil {
		return nil, err
	}
	mediumNode, err := root.MakeChildInRegion("medium", a.medium)
	if err != nil {
		return nil, err
	}
	slowNode, err := root.MakeChildInRegion("slow", a.slow)
	if err != nil {
		return nil, err
	}

	if a.pulse, err = demo.NewPulse(fastNode, "pulse"); err != nil {
		return nil, err
	}
	if a.recorder, err = demo.NewRecorder(slowNode, "recorder"); err != nil {
		return nil, err
	}
	if err = a.pulse.Out.Connect(a.recorder.In); err != nil {
		return nil, err
	}

	if a.counter, err = demo.NewCounter(fastNode, "counter"); err != nil {
		return nil, err
	}
	if a.sampNode, err = mediumNode.MakeChild("sampler"); err != nil {
		return nil, err
	}
	a.sampler = nodeport.NewStateSink[int](a.sampNode, "in")
	if err = a.sampler.Connect(a.counter.Out); err != nil {
		return nil, err
	}

	return a, nil
}
