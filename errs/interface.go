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

package errs

import (
	"errors"
	"fmt"
	"runtime"
)

// Error extends the standard error with the kernel's code/parent/trace
// model. It remains compatible with errors.Is and errors.As through
// Unwrap.
type Error interface {
	error

	// Code returns this error's own code (not a parent's).
	Code() uint16

	// IsCode reports whether this error's own code equals code.
	IsCode(code CodeError) bool

	// HasCode reports whether this error or any parent in its chain has code.
	HasCode(code CodeError) bool

	// AddParent returns a copy of this error whose parent is cause; any
	// previous parent of the copy is replaced, not kept.
	AddParent(cause error) Error

	// GetTrace renders the file:line:function the error was raised at.
	GetTrace() string

	// Unwrap exposes the parent for errors.Is / errors.As.
	Unwrap() error
}

type ers struct {
	code   CodeError
	msg    string
	parent error
	frame  runtime.Frame
}

func newError(code CodeError, msg string, parent error) Error {
	return &ers{
		code:   code,
		msg:    msg,
		parent: parent,
		frame:  getFrame(),
	}
}

func (e *ers) Error() string {
	if e.msg == "" {
		return e.code.Message()
	}
	return e.msg
}

func (e *ers) Code() uint16 {
	return e.code.Uint16()
}

func (e *ers) IsCode(code CodeError) bool {
	return e.code == code
}

// Is makes errors.Is match any two Errors of the same code, so a freshly
// constructed error compares equal to its package-level sentinel.
func (e *ers) Is(target error) bool {
	t, ok := target.(*ers)
	return ok && t.code == e.code
}

func (e *ers) HasCode(code CodeError) bool {
	if e.code == code {
		return true
	}
	var p Error
	if errors.As(e.parent, &p) {
		return p.HasCode(code)
	}
	return false
}

func (e *ers) AddParent(cause error) Error {
	n := *e
	n.parent = cause
	return &n
}

func (e *ers) GetTrace() string {
	if e.frame.Function == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d (%s)", e.frame.File, e.frame.Line, e.frame.Function)
}

func (e *ers) Unwrap() error {
	return e.parent
}
