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

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankkopp/kestrel/internal/position"
)

const (
	kiwipeteFen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos3Fen     = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	pos4Fen     = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2pP/R2Q1RK1 w kq - 0 1"
)

func TestPerftStartPosition(t *testing.T) {
	for depth, want := range map[int]uint64{
		1: 20,
		2: 400,
		3: 8_902,
		4: 197_281,
		5: 4_865_609,
	} {
		nodes, err := NewPerft().Run(position.StartFen, depth)
		require.NoError(t, err)
		assert.Equal(t, want, nodes, "startpos depth %d", depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	for depth, want := range map[int]uint64{
		1: 48,
		2: 2_039,
		3: 97_862,
	} {
		nodes, err := NewPerft().Run(kiwipeteFen, depth)
		require.NoError(t, err)
		assert.Equal(t, want, nodes, "kiwipete depth %d", depth)
	}
}

func TestPerftKiwipeteCounters(t *testing.T) {
	pf := NewPerft()
	nodes, err := pf.Run(kiwipeteFen, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 2_039, nodes)
	assert.EqualValues(t, 351, pf.CaptureCounter)
	assert.EqualValues(t, 1, pf.EnpassantCounter)
	assert.EqualValues(t, 91, pf.CastleCounter)
	assert.EqualValues(t, 0, pf.PromotionCounter)
}

func TestPerftPosition3(t *testing.T) {
	for depth, want := range map[int]uint64{
		1: 14,
		2: 191,
		3: 2_812,
		4: 43_238,
		5: 674_624,
	} {
		nodes, err := NewPerft().Run(pos3Fen, depth)
		require.NoError(t, err)
		assert.Equal(t, want, nodes, "pos3 depth %d", depth)
	}
}

func TestPerftPosition4(t *testing.T) {
	for depth, want := range map[int]uint64{
		1: 6,
		2: 264,
		3: 9_467,
		4: 422_333,
	} {
		nodes, err := NewPerft().Run(pos4Fen, depth)
		require.NoError(t, err)
		assert.Equal(t, want, nodes, "pos4 depth %d", depth)
	}
}

// TestPerftDeep runs the full reference depths. Slow; skipped with -short.
func TestPerftDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	for _, tc := range []struct {
		fen   string
		depth int
		want  uint64
	}{
		{position.StartFen, 6, 119_060_324},
		{kiwipeteFen, 5, 193_690_690},
		{pos3Fen, 6, 11_030_083},
		{pos4Fen, 5, 15_833_292},
	} {
		nodes, err := NewPerft().Run(tc.fen, tc.depth)
		require.NoError(t, err)
		assert.Equal(t, tc.want, nodes, "%s depth %d", tc.fen, tc.depth)
	}
}

func TestPerftInvalidFen(t *testing.T) {
	_, err := NewPerft().Run("not a fen", 2)
	assert.Error(t, err)
}
