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
	"os"
	"testing"

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

// The starting position is perfectly symmetric, so the only score left is
// the tempo bonus for the side to move.
func TestEvaluateSymmetric(t *testing.T) {
	e := New()
	tempo := Value(config.Settings.Eval.Tempo)

	p := position.NewStartPosition()
	assert.Equal(t, tempo, e.Evaluate(p))

	pb, err := position.NewPositionFromFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, -tempo, e.Evaluate(pb))
}

// Evaluate is always from White's perspective, independent of the side to
// move apart from the tempo term.
func TestEvaluateMaterial(t *testing.T) {
	e := New()

	// white is a queen up
	p, err := position.NewPositionFromFen("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	assert.Greater(t, int(e.Evaluate(p)), 700)

	// black is a rook up
	p, err = position.NewPositionFromFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/1NBQKBNR w Kkq - 0 1")
	require.NoError(t, err)
	assert.Less(t, int(e.Evaluate(p)), -300)
}

func TestGamePhase(t *testing.T) {
	assert.Equal(t, GamePhaseMax, gamePhaseOf(position.NewStartPosition()))

	p, err := position.NewPositionFromFen("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, 0, gamePhaseOf(p))

	// one queen and one rook left: 4 + 2 of 24
	p, err = position.NewPositionFromFen("4k3/8/8/8/8/8/8/R2QK3 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, 6, gamePhaseOf(p))
}

func TestPawnStructure(t *testing.T) {
	e := New()

	// white's doubled, isolated pawns score worse than black's healthy pair
	doubled, err := position.NewPositionFromFen("4k3/5pp1/8/8/8/4P3/4P3/4K3 w - - 0 1")
	require.NoError(t, err)
	healthy, err := position.NewPositionFromFen("4k3/5pp1/8/8/8/8/4PP2/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Less(t, int(e.Evaluate(doubled)), int(e.Evaluate(healthy)))

	// a far advanced passed pawn is worth a bonus
	passed, err := position.NewPositionFromFen("4k3/8/P7/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	blocked, err := position.NewPositionFromFen("4k3/p7/P7/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Greater(t, int(e.Evaluate(passed)), int(e.Evaluate(blocked)))
}

func TestPawnCache(t *testing.T) {
	pc := newPawnCache(1)
	key := position.Key(0xABCDEF)

	_, ok := pc.get(key)
	assert.False(t, ok)

	pc.put(key, 42)
	v, ok := pc.get(key)
	assert.True(t, ok)
	assert.Equal(t, Value(42), v)
	assert.EqualValues(t, 1, pc.hits)
	assert.EqualValues(t, 1, pc.misses)
}
