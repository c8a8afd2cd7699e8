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

package port

// Then composes f and g into a single connectable: Then(f, g)(a) ==
// g(f(a)). Plain Go function composition is associative by construction,
// so any parenthesization of a chain built from Then produces identical
// results — the `>>` combinator's associativity requirement falls out for
// free rather than needing a dedicated proxy type.
func Then[A, B, C any](f func(A) B, g func(B) C) func(A) C {
	return func(a A) C {
		return g(f(a))
	}
}

// ConnectEventThrough wires src to sink through transform: every value src
// fires is mapped by transform before reaching sink. The disconnect
// protocol is unchanged from a direct ConnectSink — closing sink erases
// the handler entry this call installed on src.
func ConnectEventThrough[In, Out any](src *EventSource[In], transform func(In) Out, sink *EventSink[Out]) {
	disconnect := src.Connect(func(v In) { sink.invoke(transform(v)) })
	sink.registerDisconnect(disconnect)
}

// ConnectStateThrough wires sink to pull from source through transform:
// every Get on sink applies transform to source's current value. Closing
// source (or reconnecting sink) clears sink's producer exactly as a direct
// Connect would.
func ConnectStateThrough[In, Out any](sink *StateSink[Out], source *StateSource[In], transform func(In) Out) {
	sink.swapRegistration(func() Out {
		v, _ := source.Get()
		return transform(v)
	}, source.registerDisconnect, source.unregisterDisconnect)
}
