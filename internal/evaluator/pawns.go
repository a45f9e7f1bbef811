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
	"github.com/frankkopp/kestrel/internal/config"
	"github.com/frankkopp/kestrel/internal/position"
	. "github.com/frankkopp/kestrel/internal/types"
)

const (
	doubledPawnMalus  = 10
	isolatedPawnMalus = 15
	passedPawnBonus   = 20
)

// pawnStructureScore scores doubled, isolated and passed pawns, from
// white's perspective, caching the result per position when enabled.
func (e *Evaluator) pawnStructureScore(p *position.Position, gamePhase int) Value {
	if config.Settings.Eval.UsePawnCache && e.pawnCache != nil {
		if v, ok := e.pawnCache.get(p.Key()); ok {
			return v
		}
	}

	whitePawns := p.PieceBb(MakePiece(White, Pawn))
	blackPawns := p.PieceBb(MakePiece(Black, Pawn))

	score := pawnSideScore(White, whitePawns, blackPawns, gamePhase) - pawnSideScore(Black, blackPawns, whitePawns, gamePhase)

	if config.Settings.Eval.UsePawnCache && e.pawnCache != nil {
		e.pawnCache.put(p.Key(), score)
	}
	return score
}

func pawnSideScore(us Color, ours, theirs Bitboard, gamePhase int) Value {
	var score Value
	for f := FileA; f <= FileH; f++ {
		onFile := ours & fileBb(f)
		count := onFile.PopCount()
		if count > 1 {
			score -= Value(doubledPawnMalus * (count - 1))
		}
		if count > 0 {
			if !hasNeighborPawns(f, ours) {
				score -= isolatedPawnMalus
			}
			if isPassed(us, f, onFile, theirs) {
				score += passedBonus(us, onFile, gamePhase)
			}
		}
	}
	return score
}

func hasNeighborPawns(f File, ours Bitboard) bool {
	var neighbors Bitboard
	if f > FileA {
		neighbors |= fileBb(f - 1)
	}
	if f < FileH {
		neighbors |= fileBb(f + 1)
	}
	return ours&neighbors != BbZero
}

// isPassed reports whether the pawns on onFile have no enemy pawn on the
// same or an adjacent file ahead of them.
func isPassed(us Color, f File, onFile, theirs Bitboard) bool {
	var blockers Bitboard
	for _, nf := range []File{f - 1, f, f + 1} {
		if nf < FileA || nf > FileH {
			continue
		}
		blockers |= theirs & fileBb(nf)
	}
	if blockers == BbZero {
		return true
	}
	frontSq := onFile.Lsb()
	if us == Black {
		frontSq = onFile.Msb()
	}
	for b := blockers; b != BbZero; {
		sq := b.PopLsb()
		if us == White && sq.RankOf() > frontSq.RankOf() {
			return false
		}
		if us == Black && sq.RankOf() < frontSq.RankOf() {
			return false
		}
	}
	return true
}

func passedBonus(us Color, onFile Bitboard, gamePhase int) Value {
	sq := onFile.Lsb()
	rank := sq.RankOf()
	advancement := int(rank)
	if us == Black {
		advancement = 7 - int(rank)
	}
	weight := (GamePhaseMax - gamePhase) + 1
	return Value(passedPawnBonus*advancement*weight) / (GamePhaseMax + 1)
}

func fileBb(f File) Bitboard {
	return FileABb << uint(f)
}
