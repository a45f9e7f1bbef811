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

package position

import . "github.com/frankkopp/kestrel/internal/types"

// Key is the 64-bit Zobrist hash of a position.
type Key uint64

// zobristRandom is the xorshift64star generator used once at package init to
// seed every Zobrist constant. Same construction as the one the magic
// bitboard search uses, seeded differently so the two don't correlate.
type zobristRandom struct {
	s uint64
}

func newZobristRandom(seed uint64) *zobristRandom {
	return &zobristRandom{s: seed}
}

func (r *zobristRandom) rand64() uint64 {
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	r.s ^= r.s >> 12
	return r.s * 2685821657736338717
}

// zobrist holds every random constant the incremental key is built from.
type zobrist struct {
	pieces         [PieceLength][SqLength]Key
	castlingRights [CastlingLength]Key
	enPassantFile  [9]Key // index 8 is the "no ep" entry
	nextPlayer     Key
}

var zobristBase zobrist

func initZobrist() {
	r := newZobristRandom(1070372)
	for pc := Piece(0); pc < PieceLength; pc++ {
		for sq := SqA1; sq < SqNone; sq++ {
			zobristBase.pieces[pc][sq] = Key(r.rand64())
		}
	}
	for cr := 0; cr < CastlingLength; cr++ {
		zobristBase.castlingRights[cr] = Key(r.rand64())
	}
	for f := 0; f < 9; f++ {
		zobristBase.enPassantFile[f] = Key(r.rand64())
	}
	zobristBase.nextPlayer = Key(r.rand64())
}

// epZobristIndex returns the enPassantFile index for sq, 8 (the dedicated
// zero entry) if sq is SqNone.
func epZobristIndex(sq Square) int {
	if sq == SqNone {
		return 8
	}
	return int(sq.FileOf())
}
