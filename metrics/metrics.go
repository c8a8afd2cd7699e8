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

// Package metrics is the narrow instrumentation surface the cycle
// controller calls into: tick counts per region, overrun counts per rate,
// and the scheduler queue depth, which the controller samples after each
// dispatch. NoOp is the default; a
// Prometheus-backed recorder is available for embeddings that run an
// exporter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives the kernel's instrumentation calls. Implementations
// must be safe for use from the main-loop goroutine and workers.
type Recorder interface {
	// IncTick counts one delivered tick; kind is "switch" or "work".
	IncTick(regionID, kind string)

	// ObserveOverrun counts one periodic-task deadline miss at the given
	// rate.
	ObserveOverrun(rate string)

	// SetQueueDepth reports the scheduler's current queued-task count.
	SetQueueDepth(n int)
}

type noop struct{}

func (noop) IncTick(string, string) {}
func (noop) ObserveOverrun(string)  {}
func (noop) SetQueueDepth(int)      {}

// NoOp returns a Recorder that discards everything. It never allocates
// and never panics regardless of call pattern.
func NoOp() Recorder {
	return noop{}
}

type prom struct {
	ticks      *prometheus.CounterVec
	overruns   *prometheus.CounterVec
	queueDepth prometheus.Gauge
}

// NewPrometheus builds a Recorder backed by reg. A nil registry falls
// back to the default registerer.
func NewPrometheus(reg prometheus.Registerer) (Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	p := &prom{
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataflow_ticks_total",
			Help: "Ticks delivered, by region and kind (switch or work).",
		}, []string{"region", "kind"}),
		overruns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataflow_task_overruns_total",
			Help: "Periodic tasks that missed their tick deadline, by rate.",
		}, []string{"rate"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dataflow_scheduler_queue_depth",
			Help: "Tasks queued but not yet started in the scheduler.",
		}),
	}
	for _, c := range []prometheus.Collector{p.ticks, p.overruns, p.queueDepth} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *prom) IncTick(regionID, kind string) {
	p.ticks.WithLabelValues(regionID, kind).Inc()
}

func (p *prom) ObserveOverrun(rate string) {
	p.overruns.WithLabelValues(rate).Inc()
}

func (p *prom) SetQueueDepth(n int) {
	p.queueDepth.Set(float64(n))
}
