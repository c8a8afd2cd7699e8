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
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/sync/errgroup"

	"github.com/sabouaram/dataflow/infra"
	"github.com/sabouaram/dataflow/logging"
	"github.com/sabouaram/dataflow/metrics"
	"github.com/sabouaram/dataflow/port"
	"github.com/sabouaram/dataflow/region"
)

func newRunCommand() *cobra.Command {
	var (
		duration time.Duration
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "build the demo graph and drive it for a while",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context(), duration, verbose)
		},
	}
	cmd.Flags().DurationVar(&duration, "duration", 5*time.Second, "how long to drive the main loop")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log region activity through logrus")
	return cmd
}

func runDemo(parent context.Context, duration time.Duration, verbose bool) error {
	out := colorable.NewColorableStdout()

	opts := []infra.Option{}
	if verbose {
		log := logrus.New()
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.DebugLevel)
		opts = append(opts, infra.WithLogger(logging.NewLogrus(log)))
	}
	rec, err := metrics.NewPrometheus(prometheus.NewRegistry())
	if err != nil {
		return err
	}
	opts = append(opts, infra.WithMetrics(rec))

	a, err := buildApp(opts...)
	if err != nil {
		return err
	}

	total := int64(duration / region.FastTick)
	progress := mpb.New(mpb.WithOutput(os.Stderr), mpb.WithWidth(48))
	bar := progress.AddBar(total,
		mpb.PrependDecorators(decor.Name("fast ticks "), decor.CountersNoUnit("%d / %d")),
		mpb.AppendDecorators(decor.Percentage()),
	)
	a.fast.WorkTick().Connect(func(port.Void) {
		if bar.Current() < total {
			bar.Increment()
		}
	})

	if err = a.infra.StartScheduler(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	runCtx, stop := context.WithTimeout(ctx, duration)
	defer stop()

	overruns := 0
	grp, grpCtx := errgroup.WithContext(runCtx)
	grp.Go(func() error {
		for {
			select {
			case <-grpCtx.Done():
				return nil
			case <-time.After(region.MediumTick):
			}
			for e := a.infra.CycleControl().LastException(); e != nil; e = a.infra.CycleControl().LastException() {
				overruns++
				color.New(color.FgYellow).Fprintf(out, "overrun: %v\n", e)
			}
		}
	})
	if err = grp.Wait(); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if err = a.infra.StopScheduler(); err != nil {
		color.New(color.FgRed).Fprintf(out, "stop: %v\n", err)
	}
	bar.Abort(true)
	progress.Wait()

	sampled, _ := a.sampler.Get()
	color.New(color.FgGreen, color.Bold).Fprintln(out, "run complete")
	color.New(color.FgCyan).Fprintf(out, "  pulses recorded by slow region: %d (last %d)\n",
		a.recorder.Count(), a.recorder.Last())
	color.New(color.FgCyan).Fprintf(out, "  counter sample seen by medium region: %d\n", sampled)
	color.New(color.FgCyan).Fprintf(out, "  overruns: %d\n", overruns)
	return nil
}
