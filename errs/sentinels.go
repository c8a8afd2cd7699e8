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

// Sentinel errors for errors.Is comparisons, one per error kind the
// kernel can raise. Call sites that need a trace build a fresh instance
// with CodeError.Error(cause) instead of reusing these directly; sentinels
// exist so a target for errors.Is/errors.As always compares equal to
// itself regardless of where the concrete error was constructed.
var (
	ErrBadStructure               = newError(CodeBadStructure, messages[CodeBadStructure], nil)
	ErrNotConnected               = newError(CodeNotConnected, messages[CodeNotConnected], ErrBadStructure)
	ErrInvalidRate                = newError(CodeInvalidRate, messages[CodeInvalidRate], nil)
	ErrAlreadyRunning             = newError(CodeAlreadyRunning, messages[CodeAlreadyRunning], nil)
	ErrOutOfTime                  = newError(CodeOutOfTime, messages[CodeOutOfTime], nil)
	ErrSettingConstraintViolation = newError(CodeSettingConstraintViolation, messages[CodeSettingConstraintViolation], nil)
	ErrSchedulerStopped           = newError(CodeSchedulerStopped, messages[CodeSchedulerStopped], nil)
)
