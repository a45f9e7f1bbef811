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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosValueTaper(t *testing.T) {
	for pc := Piece(0); pc < PieceLength; pc++ {
		for sq := SqA1; sq <= SqH8; sq++ {
			assert.Equal(t, PosMidValue(pc, sq), PosValue(pc, sq, GamePhaseMax))
			assert.Equal(t, PosEndValue(pc, sq), PosValue(pc, sq, 0))
		}
	}
}

// The tables are stored from White's point of view and mirrored for Black:
// the same square seen from the other side must score identically.
func TestPosValueMirrored(t *testing.T) {
	for pk := PieceKind(0); pk < PieceKindLength; pk++ {
		wp, bp := MakePiece(White, pk), MakePiece(Black, pk)
		for sq := SqA1; sq <= SqH8; sq++ {
			assert.Equal(t, PosMidValue(wp, sq), PosMidValue(bp, 63-sq))
			assert.Equal(t, PosEndValue(wp, sq), PosEndValue(bp, 63-sq))
		}
	}
}
