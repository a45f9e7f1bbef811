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
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankkopp/kestrel/internal/config"
	"github.com/frankkopp/kestrel/internal/position"
	. "github.com/frankkopp/kestrel/internal/types"
)

func TestMain(m *testing.M) {
	config.Setup()
	os.Exit(m.Run())
}

func engineAt(t *testing.T, fen string) *Engine {
	t.Helper()
	e := NewEngine()
	p, err := position.NewPositionFromFen(fen)
	require.NoError(t, err)
	e.SetPosition(p)
	return e
}

func TestMateInOne(t *testing.T) {
	// back rank mate: 1.Ra8#
	e := engineAt(t, "6k1/5ppp/8/8/8/8/5PPP/R6K w - - 0 1")
	r := e.Search(Limits{Depth: 2})
	assert.Equal(t, "a1a8", r.BestMove.String())
	assert.True(t, r.Score >= MateValue-2, "expected a mate score, got %d", r.Score)
	assert.True(t, IsMateScore(r.Score))
	assert.Equal(t, 1, MatePlies(r.Score))
}

func TestMateInTwo(t *testing.T) {
	// KQ vs K corner mate: no mate in one exists, e.g. 1.Kb6 Kb8 2.Qh8#
	e := engineAt(t, "k7/8/2K5/8/8/8/8/7Q w - - 0 1")
	r := e.Search(Limits{Depth: 4})
	assert.True(t, IsMateScore(r.Score), "expected a mate score, got %d", r.Score)
	assert.Equal(t, 2, MatePlies(r.Score))
}

func TestStalemateScoresZero(t *testing.T) {
	e := engineAt(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	e.startTime = time.Now()
	e.timeLimit = time.Hour
	e.canceled.Store(false)
	v := e.negamax(e.pos, 4, 0, ValueMin, ValueMax, true)
	assert.Equal(t, ValueDraw, v)
}

func TestCheckmateScore(t *testing.T) {
	// black is already mated; the search must report being mated now
	e := engineAt(t, "R6k/6pp/8/8/8/8/8/7K b - - 0 1")
	e.startTime = time.Now()
	e.timeLimit = time.Hour
	e.canceled.Store(false)
	v := e.negamax(e.pos, 4, 0, ValueMin, ValueMax, true)
	assert.Equal(t, MatedIn(0), v)
}

func TestThreefoldRepetitionDraw(t *testing.T) {
	p := position.NewStartPosition()
	cycle := []Move{
		NewMove(SqG1, SqF3, SpecialQuiet),
		NewMove(SqG8, SqF6, SpecialQuiet),
		NewMove(SqF3, SqG1, SpecialQuiet),
		NewMove(SqF6, SqG8, SpecialQuiet),
	}
	for i := 0; i < 2; i++ {
		for _, m := range cycle {
			p.MakeMove(m)
		}
	}
	// the start position has now occurred three times with White to move
	e := NewEngine()
	e.SetPosition(p)
	e.startTime = time.Now()
	e.timeLimit = time.Hour
	e.canceled.Store(false)
	v := e.negamax(e.pos, 4, 0, ValueMin, ValueMax, true)
	assert.Equal(t, ValueDraw, v)
}

func TestTwofoldRepetitionInTree(t *testing.T) {
	// inside the tree (ply >= 2) a single prior occurrence scores a draw
	p := position.NewStartPosition()
	for _, m := range []Move{
		NewMove(SqG1, SqF3, SpecialQuiet),
		NewMove(SqG8, SqF6, SpecialQuiet),
		NewMove(SqF3, SqG1, SpecialQuiet),
		NewMove(SqF6, SqG8, SpecialQuiet),
	} {
		p.MakeMove(m)
	}
	e := NewEngine()
	e.SetPosition(p)
	e.startTime = time.Now()
	e.timeLimit = time.Hour
	e.canceled.Store(false)
	assert.Equal(t, ValueDraw, e.negamax(e.pos, 2, 2, ValueMin, ValueMax, true))
	// at the root the same single occurrence is not yet a draw
	assert.NotEqual(t, ValueDraw, e.negamax(e.pos, 2, 0, ValueMin, ValueMax, true))
}

func TestSearchRestoresPosition(t *testing.T) {
	e := engineAt(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	fen := e.Position().Fen()
	key := e.Position().Key()
	e.Search(Limits{Depth: 4})
	assert.Equal(t, fen, e.Position().Fen())
	assert.Equal(t, key, e.Position().Key())
}

func TestIterationCallback(t *testing.T) {
	e := engineAt(t, position.StartFen)
	var depths []int
	e.OnIteration = func(r Result) {
		depths = append(depths, r.Depth)
		assert.NotEmpty(t, r.PV)
		assert.Equal(t, r.BestMove, r.PV[0])
	}
	r := e.Search(Limits{Depth: 4})
	assert.Equal(t, []int{1, 2, 3, 4}, depths)
	assert.Equal(t, 4, r.Depth)
	assert.False(t, r.BestMove.IsEmpty())
	assert.Greater(t, r.Nodes, uint64(0))
}

// Searching the same position twice with a warm transposition table must
// visit fewer nodes the second time.
func TestTTReducesNodes(t *testing.T) {
	e := engineAt(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	first := e.Search(Limits{Depth: 4})
	second := e.Search(Limits{Depth: 4})
	assert.Equal(t, first.BestMove, second.BestMove)
	assert.Less(t, second.Nodes, first.Nodes)
}

func TestMoveTimeIsRespected(t *testing.T) {
	e := engineAt(t, position.StartFen)
	start := time.Now()
	r := e.Search(Limits{MoveTime: 150 * time.Millisecond})
	elapsed := time.Since(start)
	assert.Less(t, elapsed, 2*time.Second)
	assert.GreaterOrEqual(t, r.Depth, 1)
	assert.False(t, r.BestMove.IsEmpty())
}

func TestStopCancelsSearch(t *testing.T) {
	e := engineAt(t, position.StartFen)
	done := make(chan Result, 1)
	go func() {
		done <- e.Search(Limits{Infinite: true})
	}()
	time.Sleep(100 * time.Millisecond)
	e.Stop()
	select {
	case r := <-done:
		assert.False(t, r.BestMove.IsEmpty())
	case <-time.After(5 * time.Second):
		t.Fatal("search did not stop")
	}
}

func TestComputeTimeLimit(t *testing.T) {
	assert.Equal(t, 5*time.Second, computeTimeLimit(Limits{MoveTime: 5 * time.Second}, White))

	l := Limits{WhiteTime: 60 * time.Second, WhiteInc: 2 * time.Second}
	assert.Equal(t, 4*time.Second, computeTimeLimit(l, White))

	l = Limits{BlackTime: 20 * time.Second}
	assert.Equal(t, time.Second, computeTimeLimit(l, Black))
}

func TestValueToFromTT(t *testing.T) {
	assert.Equal(t, Value(123), valueToTT(123, 10))
	assert.Equal(t, Value(123), valueFromTT(123, 10))

	v := MateIn(7)
	stored := valueToTT(v, 7)
	assert.Equal(t, MateIn(0), stored)
	assert.Equal(t, v, valueFromTT(stored, 7))

	v = MatedIn(5)
	stored = valueToTT(v, 5)
	assert.Equal(t, MatedIn(0), stored)
	assert.Equal(t, v, valueFromTT(stored, 5))
}

func TestMoveOrdering(t *testing.T) {
	moves := []Move{
		NewMove(SqA2, SqA3, SpecialQuiet),
		NewMove(SqB2, SqB3, SpecialQuiet),
		NewMove(SqC2, SqC3, SpecialQuiet),
		NewMove(SqD2, SqD3, SpecialQuiet),
		NewMove(SqE2, SqE3, SpecialQuiet),
	}
	scores := []int32{0, 5, 3, 9, 1}
	scoreOf := make(map[Move]int32, len(moves))
	for i, m := range moves {
		scoreOf[m] = scores[i]
	}
	order := newMoveOrder(moves, scores)
	var got []int32
	for m, ok := order.next(); ok; m, ok = order.next() {
		got = append(got, scoreOf[m])
	}
	assert.Equal(t, []int32{9, 5, 3, 1, 0}, got)
}

// A list long enough for several blocks, laid out worst-first so a selector
// stuck on a constant-width window would emit moves out of score order.
// With distinct scores the blocks must hand out the exact descending
// sequence, and the block size must double 4 -> 8 -> 16 -> 32 on the way.
func TestMoveOrderingBlockDoubling(t *testing.T) {
	const n = 40
	moves := make([]Move, n)
	scores := make([]int32, n)
	scoreOf := make(map[Move]int32, n)
	for i := 0; i < n; i++ {
		moves[i] = NewMove(Square(i), Square(i+16), SpecialQuiet)
		scores[i] = int32(i)
		scoreOf[moves[i]] = scores[i]
	}

	order := newMoveOrder(moves, scores)
	var got []int32
	var kAt []int
	for m, ok := order.next(); ok; m, ok = order.next() {
		got = append(got, scoreOf[m])
		kAt = append(kAt, order.k)
	}

	want := make([]int32, n)
	for i := range want {
		want[i] = int32(n - 1 - i)
	}
	assert.Equal(t, want, got)

	// block boundaries: 4 moves at k=4, 8 at k=8, 16 at k=16, the rest at 32
	assert.Equal(t, 4, kAt[0])
	assert.Equal(t, 4, kAt[3])
	assert.Equal(t, 8, kAt[4])
	assert.Equal(t, 8, kAt[11])
	assert.Equal(t, 16, kAt[12])
	assert.Equal(t, 16, kAt[27])
	assert.Equal(t, 32, kAt[28])
	assert.Equal(t, 32, kAt[n-1])
}

func TestScoreMoves(t *testing.T) {
	p, err := position.NewPositionFromFen("4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	capture := NewMove(SqE4, SqD5, SpecialCapture)
	quiet := NewMove(SqE1, SqD1, SpecialQuiet)
	moves := []Move{quiet, capture}

	scores := scoreMoves(moves, MoveEmpty, p)
	assert.Equal(t, int32(0), scores[0])
	assert.Equal(t, mvvLva(Queen, Pawn), scores[1])
	assert.Greater(t, scores[1], scores[0])

	// the TT move outranks everything
	scores = scoreMoves(moves, quiet, p)
	assert.Equal(t, int32(ttMoveScore), scores[0])

	// higher valued victims first, cheaper attackers break ties
	assert.Greater(t, mvvLva(Queen, Pawn), mvvLva(Rook, Pawn))
	assert.Greater(t, mvvLva(Rook, Pawn), mvvLva(Rook, Knight))
}

func TestQuiescenceResolvesCaptures(t *testing.T) {
	// the d5 pawn is defended by the pawn on e6: grabbing it with the queen
	// loses her to the recapture, which only quiescence can see at depth 1
	e := engineAt(t, "4k3/8/4p3/3p4/8/8/8/3QK3 w - - 0 1")
	r := e.Search(Limits{Depth: 1})
	assert.NotEqual(t, "d1d5", r.BestMove.String(),
		"took a defended pawn with the queen despite quiescence")
}
