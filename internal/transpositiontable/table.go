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

// Package transpositiontable implements a direct-mapped, power-of-two-sized
// hash table of search results. Every slot is an 8 byte TtEntry; the table
// never chains or probes past a single slot, so a write either refreshes,
// replaces, or is rejected by the policy in Record.
package transpositiontable

import (
	"math/bits"

	"github.com/op/go-logging"

	myLogging "github.com/frankkopp/kestrel/internal/logging"
	"github.com/frankkopp/kestrel/internal/position"
	. "github.com/frankkopp/kestrel/internal/types"
)

var log *logging.Logger

const (
	// DefaultSizeMb is the Hash option's default value per the UCI surface.
	DefaultSizeMb = 16
	// MinSizeMb and MaxSizeMb bound the "setoption name Hash" range.
	MinSizeMb = 1
	MaxSizeMb = 1024
)

// ProbeResult is what Probe reports back to the caller: whether the
// position was found at all (Hit), a usable score for an alpha-beta cutoff
// or exact value (UseScore), and/or a move-ordering hint (Move).
type ProbeResult struct {
	Hit      bool
	Move     Move
	Score    Value
	UseScore bool
	Depth    int
	Kind     ValueType
}

// Table is the transposition table: a flat, direct-mapped array of entries
// plus the current generation counter used by the replacement policy.
type Table struct {
	entries    []TtEntry
	mask       uint64
	shift      uint
	generation uint8
}

// New creates a table sized to sizeMb megabytes, rounded down to a power of
// two entry count.
func New(sizeMb int) *Table {
	if log == nil {
		log = myLogging.GetLog()
	}
	t := &Table{}
	t.Resize(sizeMb)
	return t
}

// Resize rebuilds the table for a new Hash size in megabytes, discarding all
// stored entries.
func (t *Table) Resize(sizeMb int) {
	if sizeMb < MinSizeMb {
		sizeMb = MinSizeMb
	}
	if sizeMb > MaxSizeMb {
		sizeMb = MaxSizeMb
	}
	budget := uint64(sizeMb) * 1024 * 1024
	count := uint64(1)
	for (count*2)*EntrySize <= budget {
		count *= 2
	}
	t.entries = make([]TtEntry, count)
	t.mask = count - 1
	t.shift = 64 - uint(bits.Len64(count)-1)
	t.generation = 0
	log.Infof("transposition table resized to %d MiB (%d entries)", sizeMb, count)
}

// Clear zeroes every entry and resets the generation counter, as "ucinewgame"
// requires.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = TtEntry{}
	}
	t.generation = 0
}

// SizeMb reports the table's current size, rounded to whole megabytes.
func (t *Table) SizeMb() int {
	bytes := uint64(len(t.entries)) * EntrySize
	mb := bytes / (1024 * 1024)
	if mb == 0 {
		mb = 1
	}
	return int(mb)
}

// NewGeneration advances the generation counter by the fixed step (4,
// leaving the low 2 bits free for the node kind), called once at the start
// of every iterative-deepening iteration.
func (t *Table) NewGeneration() {
	t.generation = (t.generation + genStep) & genMask
}

// Generation returns the table's current generation value.
func (t *Table) Generation() uint8 { return t.generation }

func (t *Table) indexOf(key position.Key) uint64 {
	return (uint64(key) >> t.shift) & t.mask
}

// Probe looks up key at the given alpha/beta/depth. A miss reports Hit:
// false. A hit always reports the stored Move as an ordering hint (even a
// shallower entry or a PV entry that can't itself cut); UseScore is only set
// when the stored entry's depth covers the request and its node kind
// licenses using the score directly against the window.
func (t *Table) Probe(key position.Key, alpha, beta Value, depth int) ProbeResult {
	e := &t.entries[t.indexOf(key)]
	k16 := keyOf(uint64(key))
	if e.isEmpty() || e.key16 != k16 {
		return ProbeResult{}
	}

	res := ProbeResult{Hit: true, Move: e.bestMove, Score: e.Score(), Depth: e.Depth(), Kind: e.Kind()}
	if e.Depth() < depth {
		return res
	}
	switch e.Kind() {
	case ValueTypeExact:
		res.UseScore = true
	case ValueTypeAlpha:
		res.UseScore = e.Score() <= alpha
	case ValueTypeBeta:
		res.UseScore = e.Score() >= beta
	case ValueTypePV:
		// ordering hint only; never licenses a cutoff.
	}
	return res
}

// Record stores a search result, applying the replacement policy: an entry
// already written this generation is kept if it's at
// least as deep as the new write, or if it's a PV entry for a different
// position (protecting PV lines from a same-generation, lower-priority
// overwrite elsewhere in the search tree). Otherwise the slot is overwritten;
// a new record with no move inherits the slot's previous move when the keys
// differ, so an ordering hint is never thrown away for nothing.
func (t *Table) Record(key position.Key, depth int, kind ValueType, score Value, move Move) {
	e := &t.entries[t.indexOf(key)]
	k16 := keyOf(uint64(key))

	if !e.isEmpty() && e.Generation() == t.generation {
		differentPosition := e.key16 != k16
		if e.Depth() >= depth || (e.Kind() == ValueTypePV && differentPosition) {
			return
		}
	}

	if move == MoveEmpty && e.key16 != k16 {
		move = e.bestMove
	}

	e.key16 = k16
	e.bestMove = move
	e.depth = int8(depth)
	e.score = int16(score)
	e.genBound = packGenBound(t.generation, kind)
}

// MarkPV upgrades the entry for key to the upcoming generation and PV kind,
// called while walking the principal variation so it survives eviction
// until the next iteration re-walks it (Record protects a PV entry only
// within its own generation, so stamping the current one would leave the
// line unprotected the moment NewGeneration is called). No-op if key isn't
// the entry actually stored there (it was overwritten by a collision since
// the walk started).
func (t *Table) MarkPV(key position.Key) {
	e := &t.entries[t.indexOf(key)]
	if !e.isEmpty() && e.key16 == keyOf(uint64(key)) {
		e.genBound = packGenBound((t.generation+genStep)&genMask, ValueTypePV)
	}
}

// Hashfull reports, in per mille, how many of the first 1000 entries (or
// all of them, if the table is smaller) carry the current generation.
func (t *Table) Hashfull() int {
	sample := len(t.entries)
	if sample > 1000 {
		sample = 1000
	}
	if sample == 0 {
		return 0
	}
	used := 0
	for i := 0; i < sample; i++ {
		if !t.entries[i].isEmpty() && t.entries[i].Generation() == t.generation {
			used++
		}
	}
	return used * 1000 / sample
}
