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

// Package search implements iterative-deepening negamax over a Position: TT
// lookups, null-move pruning, MVV-LVA move ordering, quiescence, and the
// time management that turns a UCI "go" into a bounded, cancellable call.
package search

import (
	"math"
	"time"

	"github.com/op/go-logging"

	myLogging "github.com/frankkopp/kestrel/internal/logging"
	"github.com/frankkopp/kestrel/internal/position"
	. "github.com/frankkopp/kestrel/internal/types"

	"github.com/frankkopp/kestrel/internal/config"
	"github.com/frankkopp/kestrel/internal/evaluator"
	"github.com/frankkopp/kestrel/internal/movegen"
	"github.com/frankkopp/kestrel/internal/transpositiontable"
	"github.com/frankkopp/kestrel/internal/util"
)

var log *logging.Logger

// MaxDepth is the deepest iteration the root loop will start; requested
// depths are capped here.
const MaxDepth = 64

// MaxPly bounds recursion depth (iterative deepening plus quiescence): it
// sizes the per-ply move generator pool, and negamax and qsearch return the
// static evaluation once ply reaches MaxPly-1.
const MaxPly = 128

// Result is what one Search call reports once an iteration completes or the
// time budget runs out.
type Result struct {
	BestMove Move
	Ponder   Move
	Score    Value
	Depth    int
	Nodes    uint64
	Time     time.Duration
	PV       []Move
}

// Engine bundles a Position with the move generator and transposition table
// it searches with. It is constructed once by the UCI front-end and reused
// across every "go": the TT survives between searches within the same game,
// which is the entire point of having one.
type Engine struct {
	pos  *position.Position
	mg   [MaxPly]*movegen.Movegen
	tt   *transpositiontable.Table
	eval *evaluator.Evaluator

	limits    Limits
	startTime time.Time
	timeLimit time.Duration
	nodes     uint64
	canceled  *util.Bool

	stats Statistics

	// OnIteration, if set, is called after every completed iterative
	// deepening iteration so a UCI front-end can emit an "info" line.
	OnIteration func(Result)
}

// NewEngine creates an Engine at the standard starting position with a TT
// sized per config.Settings.Search.TTSizeMb.
func NewEngine() *Engine {
	if log == nil {
		log = myLogging.GetSearchLog()
	}
	e := &Engine{
		tt:       transpositiontable.New(config.Settings.Search.TTSizeMb),
		eval:     evaluator.New(),
		canceled: util.NewBool(false),
		pos:      position.NewStartPosition(),
	}
	for i := range e.mg {
		e.mg[i] = movegen.New()
	}
	return e
}

// NewGame resets the engine for a new game: the TT is cleared (its contents
// from a finished game are worthless, possibly harmful, to the next one) and
// the position returns to the standard start.
func (e *Engine) NewGame() {
	e.tt.Clear()
	e.pos = position.NewStartPosition()
}

// SetPosition replaces the position the next Search call will start from.
func (e *Engine) SetPosition(p *position.Position) {
	e.pos = p
}

// Position returns the engine's current position.
func (e *Engine) Position() *position.Position {
	return e.pos
}

// Stop requests cooperative cancellation of an in-progress Search.
func (e *Engine) Stop() {
	e.canceled.Store(true)
}

// Resize changes the TT size, as "setoption name Hash value N" requires.
func (e *Engine) Resize(sizeMb int) {
	e.tt.Resize(sizeMb)
}

// ClearHash zeroes the TT without resizing it.
func (e *Engine) ClearHash() {
	e.tt.Clear()
}

// Hashfull reports the TT's per-mille fill, for UCI "info hashfull".
func (e *Engine) Hashfull() int {
	return e.tt.Hashfull()
}

// HashSizeMb reports the TT's current size in megabytes.
func (e *Engine) HashSizeMb() int {
	return e.tt.SizeMb()
}

// Search runs iterative deepening from depth 1 up to min(limits.Depth, 64)
// (or all the way to 64 if no depth was requested), bounded by the time
// budget computed from limits. It always searches from e.pos, which it
// restores to its original state before returning regardless of how the
// search terminated (every move it makes is undone).
func (e *Engine) Search(limits Limits) Result {
	e.limits = limits
	e.startTime = time.Now()
	e.timeLimit = computeTimeLimit(limits, e.pos.SideToMove())
	e.nodes = 0
	e.canceled.Store(false)
	e.stats = Statistics{}

	maxDepth := MaxDepth
	if limits.Depth > 0 && limits.Depth < MaxDepth {
		maxDepth = limits.Depth
	}
	log.Debugf("search started: %s (budget %s, max depth %d)", e.pos.Fen(), e.timeLimit, maxDepth)

	var result Result
	for depth := 1; depth <= maxDepth; depth++ {
		e.tt.NewGeneration()

		value := e.negamax(e.pos, depth, 0, ValueMin, ValueMax, true)
		if e.canceled.Load() {
			break
		}

		pv := e.extractPV(depth)
		if len(pv) == 0 {
			break
		}
		result = Result{
			BestMove: pv[0],
			Score:    value,
			Depth:    depth,
			Nodes:    e.nodes,
			Time:     time.Since(e.startTime),
			PV:       pv,
		}
		if len(pv) > 1 {
			result.Ponder = pv[1]
		}
		if e.OnIteration != nil {
			e.OnIteration(result)
		}

		if !limits.Infinite && time.Since(e.startTime) >= e.timeLimit {
			break
		}
	}
	log.Debugf("search finished: best %s score %d depth %d nodes %d time %s",
		result.BestMove, result.Score, result.Depth, result.Nodes, result.Time)
	return result
}

// computeTimeLimit derives the hard search budget: limits.MoveTime directly
// if given, else side_time/20 + side_increment/2. With neither set (a bare
// "go depth D" or "go infinite"), the budget is effectively unbounded and
// depth (or an explicit stop) is what ends the search.
func computeTimeLimit(l Limits, us Color) time.Duration {
	const unbounded = time.Duration(math.MaxInt64)
	if l.Infinite {
		return unbounded
	}
	if l.MoveTime > 0 {
		return l.MoveTime
	}
	sideTime, sideInc := l.WhiteTime, l.WhiteInc
	if us == Black {
		sideTime, sideInc = l.BlackTime, l.BlackInc
	}
	if sideTime <= 0 {
		return unbounded
	}
	return sideTime/20 + sideInc/2
}

// timeUp polls the wall clock only every 2048 visited nodes to keep the
// check cheap relative to a leaf's own cost.
func (e *Engine) timeUp() bool {
	if e.canceled.Load() {
		return true
	}
	if e.limits.Nodes > 0 && e.nodes >= e.limits.Nodes {
		e.canceled.Store(true)
		return true
	}
	if e.nodes%2048 != 0 {
		return false
	}
	if time.Since(e.startTime) >= e.timeLimit {
		e.canceled.Store(true)
		return true
	}
	return false
}

// evaluate converts the evaluator's White-perspective score into the side
// to move's perspective, the convention negamax is written against.
func (e *Engine) evaluate(p *position.Position) Value {
	return p.SideToMove().Sign() * e.eval.Evaluate(p)
}

// extractPV walks the transposition table's stored best moves from the
// current position, marking each visited entry PV so it survives
// replacement until the next iteration re-walks it. Runs against a scratch
// copy of the position so it never disturbs e.pos; Position has no pointers
// or slices of its own, so a plain value copy is a full deep copy.
func (e *Engine) extractPV(maxLen int) []Move {
	scratch := *e.pos
	p := &scratch

	pv := make([]Move, 0, maxLen)
	for len(pv) < maxLen {
		probe := e.tt.Probe(p.Key(), ValueMin, ValueMax, 0)
		if !probe.Hit || probe.Move.IsEmpty() {
			break
		}
		e.tt.MarkPV(p.Key())
		pv = append(pv, probe.Move)
		p.MakeMove(probe.Move)
	}
	return pv
}
