/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package errs gives the dataflow kernel a small, typed error hierarchy
// instead of bare sentinel values: every kind the kernel can raise
// (BadStructure, NotConnected, InvalidRate, AlreadyRunning, OutOfTime,
// SettingConstraintViolation) carries a stable numeric code, an optional
// parent, and the call-site stack frame, and remains compatible with the
// standard library's errors.Is / errors.As.
package errs

import (
	"strconv"
)

// CodeError is a numeric error classification, HTTP-status-code style.
type CodeError uint16

// Uint16 returns the code as a uint16.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// String renders the code as a decimal string.
func (c CodeError) String() string {
	return strconv.Itoa(int(c))
}

// Kernel error codes, one per error kind the kernel can raise.
const (
	UnknownError CodeError = 0

	CodeBadStructure               CodeError = 1000
	CodeNotConnected               CodeError = 1001
	CodeInvalidRate                CodeError = 1002
	CodeAlreadyRunning             CodeError = 1003
	CodeOutOfTime                  CodeError = 1004
	CodeSettingConstraintViolation CodeError = 1005
	CodeSchedulerStopped           CodeError = 1006
)

var messages = map[CodeError]string{
	CodeBadStructure:               "dataflow graph is malformed",
	CodeNotConnected:               "port has no connected handler or producer",
	CodeInvalidRate:                "unknown tick rate",
	CodeAlreadyRunning:             "cycle controller is already running",
	CodeOutOfTime:                  "periodic task did not complete within its deadline",
	CodeSettingConstraintViolation: "setting value rejected by its constraint",
	CodeSchedulerStopped:           "scheduler has been stopped",
}

// Message returns the default text registered for code, or a generic
// fallback when the code is not one of the kernel's own.
func (c CodeError) Message() string {
	if m, ok := messages[c]; ok {
		return m
	}
	return "unknown error"
}

// Error builds a new Error of this code, optionally wrapping a cause.
//
// CodeNotConnected with a nil cause automatically derives from
// ErrBadStructure: an unconnected port is one flavor of malformed graph,
// so errors.Is(err, ErrBadStructure) holds for any NotConnected error
// built this way.
func (c CodeError) Error(cause error) Error {
	if c == CodeNotConnected && cause == nil {
		cause = ErrBadStructure
	}
	return newError(c, c.Message(), cause)
}
