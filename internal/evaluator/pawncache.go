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

package evaluator

import (
	"math"

	"github.com/frankkopp/kestrel/internal/position"
	. "github.com/frankkopp/kestrel/internal/types"
)

const maxPawnCacheMB = 64

type pawnCacheEntry struct {
	key   position.Key
	score Value
}

// pawnCache memoizes the pawn structure score keyed by the position's
// Zobrist key, sized to a power-of-two entry count to turn the lookup into
// a mask-and-index.
type pawnCache struct {
	data        []pawnCacheEntry
	hashKeyMask uint64
	hits, misses uint64
}

func newPawnCache(sizeInMB int) *pawnCache {
	pc := &pawnCache{}
	pc.resize(sizeInMB)
	return pc
}

func (pc *pawnCache) resize(sizeInMB int) {
	if sizeInMB > maxPawnCacheMB {
		sizeInMB = maxPawnCacheMB
	}
	if sizeInMB < 1 {
		pc.data = nil
		pc.hashKeyMask = 0
		return
	}
	entrySize := uint64(16)
	bytes := uint64(sizeInMB) * 1024 * 1024
	count := uint64(1) << uint64(math.Floor(math.Log2(float64(bytes/entrySize))))
	pc.data = make([]pawnCacheEntry, count)
	pc.hashKeyMask = count - 1
}

func (pc *pawnCache) get(key position.Key) (Value, bool) {
	if len(pc.data) == 0 {
		return 0, false
	}
	e := &pc.data[uint64(key)&pc.hashKeyMask]
	if e.key == key {
		pc.hits++
		return e.score, true
	}
	pc.misses++
	return 0, false
}

func (pc *pawnCache) put(key position.Key, score Value) {
	if len(pc.data) == 0 {
		return
	}
	e := &pc.data[uint64(key)&pc.hashKeyMask]
	e.key = key
	e.score = score
}
