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

package logging

import (
	"github.com/hashicorp/go-hclog"
	"github.com/sirupsen/logrus"
)

// Sink receives structured log entries. The kernel never logs directly
// to a concrete backend; it only ever holds a Sink.
type Sink interface {
	Log(e Entry)
}

type noop struct{}

func (noop) Log(Entry) {}

// NoOp returns a Sink that discards every entry, the kernel's default.
func NoOp() Sink {
	return noop{}
}

type logrusSink struct {
	log *logrus.Logger
}

// NewLogrus adapts a *logrus.Logger as a Sink. A nil logger falls back
// to logrus.StandardLogger().
func NewLogrus(log *logrus.Logger) Sink {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &logrusSink{log: log}
}

func (s *logrusSink) Log(e Entry) {
	fields := logrus.Fields{"channel": e.Channel}
	for k, v := range e.Fields {
		fields[k] = v
	}
	s.log.WithFields(fields).Log(e.Level.logrus(), e.Text)
}

func (l Level) logrus() logrus.Level {
	switch l {
	case PanicLevel:
		return logrus.PanicLevel
	case FatalLevel:
		return logrus.FatalLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarnLevel:
		return logrus.WarnLevel
	case InfoLevel:
		return logrus.InfoLevel
	case DebugLevel:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

type hclogSink struct {
	log hclog.Logger
}

// NewHCLog adapts an hclog.Logger as a Sink. A nil logger falls back to
// hclog.Default().
func NewHCLog(log hclog.Logger) Sink {
	if log == nil {
		log = hclog.Default()
	}
	return &hclogSink{log: log}
}

func (s *hclogSink) Log(e Entry) {
	args := make([]interface{}, 0, len(e.Fields)*2+2)
	args = append(args, "channel", e.Channel)
	for k, v := range e.Fields {
		args = append(args, k, v)
	}

	l := s.log.Named(e.Channel)
	switch e.Level {
	case PanicLevel, FatalLevel, ErrorLevel:
		l.Error(e.Text, args...)
	case WarnLevel:
		l.Warn(e.Text, args...)
	case InfoLevel:
		l.Info(e.Text, args...)
	case DebugLevel:
		l.Debug(e.Text, args...)
	}
}
