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

import "sync"

// disconnectRegistry holds callbacks installed by the active side of a
// connection onto the passive side. The passive side invokes every live
// callback exactly once, on its own destruction, to erase itself from
// whatever active port it is registered with. Go has no destructors, so
// the registry is drained by an explicit Close call instead of a weak
// pointer expiring.
type disconnectRegistry struct {
	mu   sync.Mutex
	seq  uint64
	cbs  map[uint64]func()
}

func (r *disconnectRegistry) add(cb func()) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cbs == nil {
		r.cbs = make(map[uint64]func())
	}
	id := r.seq
	r.seq++
	r.cbs[id] = cb
	return id
}

func (r *disconnectRegistry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cbs, id)
}

// closeAll invokes and drops every still-registered callback. Safe to call
// more than once; the second call is a no-op.
func (r *disconnectRegistry) closeAll() {
	r.mu.Lock()
	cbs := r.cbs
	r.cbs = nil
	r.mu.Unlock()
	for _, cb := range cbs {
		cb()
	}
}

func (r *disconnectRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cbs)
}
