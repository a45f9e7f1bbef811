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
	"github.com/frankkopp/kestrel/internal/config"
	"github.com/frankkopp/kestrel/internal/movegen"
	"github.com/frankkopp/kestrel/internal/position"
	. "github.com/frankkopp/kestrel/internal/types"
)

// valueToTT and valueFromTT correct a mate score for the ply it's stored or
// read at: the TT is shared across positions reached at different plies
// from the root, but a "mate in N" score only means the same thing relative
// to the node it was computed at, so it's normalized to "mate from here"
// going in and re-based to the probing node's ply coming out.
func valueToTT(v Value, ply int) Value {
	if !IsMateScore(v) {
		return v
	}
	if v > 0 {
		return v + Value(ply)
	}
	return v - Value(ply)
}

func valueFromTT(v Value, ply int) Value {
	if !IsMateScore(v) {
		return v
	}
	if v > 0 {
		return v - Value(ply)
	}
	return v + Value(ply)
}

// negamax is the alpha-beta search proper, used for the root node (ply 0)
// and every node below it alike. Fail-soft: the returned value may lie
// outside (alpha, beta).
func (e *Engine) negamax(p *position.Position, depth, ply int, alpha, beta Value, nullAllowed bool) Value {
	if e.timeUp() {
		return 0
	}
	if ply >= MaxPly-1 {
		return e.evaluate(p)
	}
	if depth <= 0 {
		return e.qsearch(p, ply, alpha, beta)
	}

	// Repetition: two-fold suffices inside the tree (the current node would
	// be the position's third occurrence in the real game); at the root and
	// its immediate children a true three-fold is required, since the
	// engine must not claim a draw score for a position the game has only
	// reached twice so far.
	if ply >= 2 {
		if p.CheckRepetition(1) {
			return ValueDraw
		}
	} else if p.CheckRepetition(2) {
		return ValueDraw
	}

	var ttMove Move
	if config.Settings.Search.UseTT {
		probe := e.tt.Probe(p.Key(), alpha, beta, depth)
		if probe.Hit {
			e.stats.TTHits++
			if config.Settings.Search.UseTTMove && !probe.Move.IsEmpty() {
				ttMove = probe.Move
				e.stats.TTMoves++
			}
			if config.Settings.Search.UseTTValue && probe.UseScore {
				e.stats.TTCuts++
				return valueFromTT(probe.Score, ply)
			}
		} else {
			e.stats.TTMiss++
		}
	}

	inCheck := p.InCheck()

	// Null-move pruning: skip making any move at all and see if the
	// resulting position is still too good for the opponent to let us reach
	// it. The reduction grows by one when enough depth remains; if the
	// reduced depth collapses to zero or below, the rest of this node's
	// search happens directly in quiescence instead of via the move loop.
	if config.Settings.Search.UseNullMove && nullAllowed && !inCheck && depth >= config.Settings.Search.NmpDepth {
		r := config.Settings.Search.NmpReduction
		if depth > 6 {
			r++
		}
		prev := p.MakeNullMove()
		e.nodes++
		nullValue := -e.negamax(p, depth-r-1, ply+1, -beta, -beta+1, false)
		p.UndoNullMove(prev)

		if e.canceled.Load() {
			return 0
		}
		if nullValue >= beta {
			e.stats.NullMoveCuts++
			reduced := depth - r
			if reduced <= 0 {
				return e.qsearch(p, ply, alpha, beta)
			}
			depth = reduced
		}
	}

	moves := e.mg[ply].GenerateLegal(p, movegen.GenAll)
	if len(moves) == 0 {
		if inCheck {
			e.stats.Checkmates++
			return MatedIn(ply)
		}
		e.stats.Stalemates++
		return ValueDraw
	}

	order := newMoveOrder(moves, scoreMoves(moves, ttMove, p))

	bestScore := ValueMin
	bestMove := MoveEmpty
	kind := ValueTypeAlpha
	first := true

	for m, ok := order.next(); ok; m, ok = order.next() {
		p.MakeMove(m)
		e.nodes++
		value := -e.negamax(p, depth-1, ply+1, -beta, -alpha, true)
		p.UndoMove(m)

		if e.canceled.Load() {
			return 0
		}

		if value > bestScore {
			bestScore = value
			bestMove = m
			if value > alpha {
				alpha = value
				kind = ValueTypeExact
			}
		}
		if alpha >= beta {
			e.stats.BetaCuts++
			if first {
				e.stats.BetaCuts1st++
			}
			kind = ValueTypeBeta
			break
		}
		first = false
	}

	if config.Settings.Search.UseTT {
		e.tt.Record(p.Key(), depth, kind, valueToTT(bestScore, ply), bestMove)
	}
	return bestScore
}

// qsearch is the quiescence tail: unbounded depth, only captures (and, when
// the side to move is in check, every legal evasion, since restricting to
// captures there can miss a quiet check evasion and misreport a position as
// checkmate).
func (e *Engine) qsearch(p *position.Position, ply int, alpha, beta Value) Value {
	if e.timeUp() {
		return 0
	}
	e.nodes++

	if ply >= MaxPly-1 {
		return e.evaluate(p)
	}

	inCheck := p.InCheck()
	standPat := e.evaluate(p)
	best := standPat

	if inCheck {
		best = ValueMin
		if alpha < -MateValue {
			alpha = -MateValue
		}
	} else if config.Settings.Search.UseQSStandpat {
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	if !config.Settings.Search.UseQuiescence {
		return standPat
	}

	mode := movegen.GenCap
	if inCheck {
		mode = movegen.GenAll
	}

	var ttMove Move
	if config.Settings.Search.UseQSTT {
		if probe := e.tt.Probe(p.Key(), alpha, beta, 0); probe.Hit {
			ttMove = probe.Move
		}
	}

	moves := e.mg[ply].GenerateLegal(p, mode)
	if inCheck && len(moves) == 0 {
		return MatedIn(ply)
	}

	order := newMoveOrder(moves, scoreMoves(moves, ttMove, p))
	for m, ok := order.next(); ok; m, ok = order.next() {
		p.MakeMove(m)
		value := -e.qsearch(p, ply+1, -beta, -alpha)
		p.UndoMove(m)

		if e.canceled.Load() {
			return 0
		}
		if value > best {
			best = value
			if value > alpha {
				alpha = value
			}
		}
		if alpha >= beta {
			break
		}
	}
	return best
}
