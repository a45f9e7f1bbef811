/*
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
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
 */

package util

import "sync/atomic"

// Bool is a small wrapper giving atomic load/store/swap/CAS on a bool,
// used by the search to flag a stop request from another goroutine.
type Bool struct{ v uint32 }

// NewBool creates a Bool initialized to the given value.
func NewBool(initial bool) *Bool {
	return &Bool{boolToUint32(initial)}
}

// Load atomically reads the value.
func (b *Bool) Load() bool {
	return atomic.LoadUint32(&b.v) == 1
}

// Store atomically sets the value.
func (b *Bool) Store(v bool) {
	atomic.StoreUint32(&b.v, boolToUint32(v))
}

// CAS is an atomic compare-and-swap.
func (b *Bool) CAS(old, new bool) bool {
	return atomic.CompareAndSwapUint32(&b.v, boolToUint32(old), boolToUint32(new))
}

// Swap sets v and returns the previous value.
func (b *Bool) Swap(v bool) bool {
	return atomic.SwapUint32(&b.v, boolToUint32(v)) == 1
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
