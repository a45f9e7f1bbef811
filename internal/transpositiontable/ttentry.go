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

package transpositiontable

import (
	. "github.com/frankkopp/kestrel/internal/types"
)

// genStep is added to the generation counter at the start of every
// iterative-deepening iteration. It is 4 so the low 2 bits stay free for the
// node kind packed into the same byte, see genBound below.
const genStep = 4

// genMask/kindMask split a gen_bound byte into its 6-bit generation and
// 2-bit node kind. The kind is stored as its ValueType minus ValueTypeExact,
// so Exact, Alpha, Beta and PV occupy the values 0..3.
const (
	kindMask = 0x03
	genMask  = ^uint8(kindMask)
)

// TtEntry is one slot of the transposition table: the low 16 bits of the
// position's Zobrist key
// (collision verification, not a full key, to keep the entry small), the
// best/cutoff move, a search depth, a fail-soft score, and a gen_bound byte
// combining a generation counter with the node kind.
type TtEntry struct {
	key16    uint16
	bestMove Move
	score    int16
	depth    int8
	genBound uint8
}

// EntrySize is the size in bytes of one TtEntry, used to size the table
// from a requested hash megabyte count.
const EntrySize = 8

func (e *TtEntry) isEmpty() bool { return e.genBound == 0 && e.key16 == 0 && e.bestMove == MoveEmpty }

// Key16 returns the stored low-16-bits collision check value.
func (e *TtEntry) Key16() uint16 { return e.key16 }

// Move returns the stored best/cutoff move, or MoveEmpty if none.
func (e *TtEntry) Move() Move { return e.bestMove }

// Depth returns the depth the entry was stored at.
func (e *TtEntry) Depth() int { return int(e.depth) }

// Score returns the stored fail-soft score.
func (e *TtEntry) Score() Value { return Value(e.score) }

// Kind returns the node kind (Exact/Alpha/Beta/PV) packed in gen_bound.
func (e *TtEntry) Kind() ValueType { return ValueType(e.genBound&kindMask) + ValueTypeExact }

// Generation returns the 6-bit generation the entry was last touched in.
func (e *TtEntry) Generation() uint8 { return e.genBound & genMask }

func keyOf(k uint64) uint16 { return uint16(k) }

func packGenBound(gen uint8, kind ValueType) uint8 {
	return (gen & genMask) | uint8(kind-ValueTypeExact)&kindMask
}
