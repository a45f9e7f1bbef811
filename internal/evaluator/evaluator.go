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

// Package evaluator computes a static score for a position: material,
// tapered piece-square values, pawn structure and a tempo bonus, from
// White's point of view.
package evaluator

import (
	"github.com/op/go-logging"

	"github.com/frankkopp/kestrel/internal/config"
	myLogging "github.com/frankkopp/kestrel/internal/logging"
	"github.com/frankkopp/kestrel/internal/position"
	. "github.com/frankkopp/kestrel/internal/types"
)

var log *logging.Logger

// Evaluator computes the static evaluation of a position.
type Evaluator struct {
	pawnCache *pawnCache
}

// New creates an Evaluator ready for use.
func New() *Evaluator {
	if log == nil {
		log = myLogging.GetLog()
	}
	e := &Evaluator{}
	if config.Settings.Eval.UsePawnCache {
		e.pawnCache = newPawnCache(config.Settings.Eval.PawnCacheSize)
	}
	return e
}

// Evaluate returns the static score of p from White's perspective, in
// centipawns: positive favors White regardless of which side is to move.
// Converting to the side to move's perspective is the caller's job (see
// Color.Sign), keeping this function a pure function of the board alone.
func (e *Evaluator) Evaluate(p *position.Position) Value {
	gamePhase := gamePhaseOf(p)

	var score Value
	for pc := Piece(0); pc < PieceLength; pc++ {
		for bb := p.PieceBb(pc); bb != BbZero; {
			sq := bb.PopLsb()
			pieceScore := pc.Kind().Value() + PosValue(pc, sq, gamePhase)
			if pc.Color() == White {
				score += pieceScore
			} else {
				score -= pieceScore
			}
		}
	}

	score += e.pawnStructureScore(p, gamePhase)
	score += p.SideToMove().Sign() * Value(config.Settings.Eval.Tempo)
	return score
}

// phaseTable gives each minor/major piece's weight and the number present
// in the starting position, so their sum is exactly GamePhaseMax (24).
var phaseTable = []struct {
	kind     PieceKind
	weight   int
	startCnt int
}{
	{Knight, 1, 4},
	{Bishop, 1, 4},
	{Rook, 2, 4},
	{Queen, 4, 2},
}

// gamePhaseOf estimates how far into the game p is: GamePhaseMax at the
// start, descending toward 0 as non-pawn material is traded off.
func gamePhaseOf(p *position.Position) int {
	phase := GamePhaseMax
	for _, e := range phaseTable {
		count := p.PieceBb(MakePiece(White, e.kind)).PopCount() + p.PieceBb(MakePiece(Black, e.kind)).PopCount()
		phase -= (e.startCnt - count) * e.weight
	}
	if phase < 0 {
		phase = 0
	}
	if phase > GamePhaseMax {
		phase = GamePhaseMax
	}
	return phase
}
