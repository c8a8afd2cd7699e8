/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

// Package atomic provides small generic lock-free wrappers. The clock
// faces and the settings staging helper use them; ports and buffer
// generations guard themselves with a mutex instead.
package atomic

// Value is a generic, lock-free holder of a single T.
//
// It is the primitive the clock faces advance on and that the settings
// staging helper swaps through: values read on one goroutine (a worker)
// and written on another (the main loop) that need no compound
// read-modify-write semantics beyond CompareAndSwap.
type Value[T any] interface {
	// Load returns the current value, or the zero value of T if Store was
	// never called.
	Load() T

	// Store sets the current value.
	Store(val T)

	// Swap atomically stores new and returns the previous value.
	Swap(new T) (old T)

	// CompareAndSwap stores new only if the current value equals old,
	// compared with ==. T must be comparable for this to behave
	// meaningfully; non-comparable T always fails the swap.
	CompareAndSwap(old, new T) (swapped bool)
}
