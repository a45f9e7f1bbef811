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

package search

import (
	"math"

	"github.com/frankkopp/kestrel/internal/position"
	. "github.com/frankkopp/kestrel/internal/types"
)

// ttMoveScore outranks every possible MVV-LVA score so a TT move is always
// tried first.
const ttMoveScore = math.MaxInt32

// mvvLva grades a capture by victim rank (dominant) and attacker rank
// (tie-break, cheaper attacker first): victim rank in the high bits, XOR'd
// with the inverted attacker rank. A pure comparison value, never an
// absolute one.
func mvvLva(victim, attacker PieceKind) int32 {
	return int32(victim)<<3 ^ int32(7-int(attacker))
}

// scoreMoves grades every move in moves for ordering: the TT move first,
// captures and en passant by MVV-LVA, everything else 0 (quiet moves keep
// their generation order relative to each other).
func scoreMoves(moves []Move, ttMove Move, p *position.Position) []int32 {
	scores := make([]int32, len(moves))
	for i, m := range moves {
		switch {
		case m == ttMove && !m.IsEmpty():
			scores[i] = ttMoveScore
		case m.IsEnPassant():
			scores[i] = mvvLva(Pawn, Pawn)
		case m.IsCapture():
			scores[i] = mvvLva(p.PieceOn(m.To()).Kind(), p.PieceOn(m.From()).Kind())
		default:
			scores[i] = 0
		}
	}
	return scores
}

// moveOrder hands out moves highest-score-first without fully sorting the
// list: it works in blocks, partially sorting the top k moves of the whole
// unsorted suffix to the front of the block, handing those out one by one,
// and doubling k (starting at 4) each time a block is exhausted and the
// next one begins. Most nodes only ever need the first one or two moves
// before a beta cutoff, so this amortizes the sort cost instead of paying
// for a full sort up front.
type moveOrder struct {
	moves    []Move
	scores   []int32
	pos      int
	k        int
	blockEnd int
}

func newMoveOrder(moves []Move, scores []int32) *moveOrder {
	return &moveOrder{moves: moves, scores: scores, k: 4}
}

// next returns the next move in score order, or ok=false once exhausted.
func (o *moveOrder) next() (Move, bool) {
	if o.pos >= len(o.moves) {
		return MoveEmpty, false
	}
	if o.pos >= o.blockEnd {
		if o.blockEnd > 0 {
			o.k *= 2
		}
		o.blockEnd = o.pos + o.k
		if o.blockEnd > len(o.moves) {
			o.blockEnd = len(o.moves)
		}
		o.partialSort()
	}
	m := o.moves[o.pos]
	o.pos++
	return m, true
}

// partialSort selects the best blockEnd-pos moves of the entire unsorted
// suffix into positions pos..blockEnd-1, highest score first (a selection
// sort stopped once the block is filled). The selected move is rotated into
// place rather than swapped, so moves of equal score keep their order.
func (o *moveOrder) partialSort() {
	for i := o.pos; i < o.blockEnd; i++ {
		best := i
		for j := i + 1; j < len(o.moves); j++ {
			if o.scores[j] > o.scores[best] {
				best = j
			}
		}
		if best != i {
			m, s := o.moves[best], o.scores[best]
			copy(o.moves[i+1:best+1], o.moves[i:best])
			copy(o.scores[i+1:best+1], o.scores[i:best])
			o.moves[i], o.scores[i] = m, s
		}
	}
}
