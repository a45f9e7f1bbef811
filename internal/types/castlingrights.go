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

import "strings"

// CastlingRights is a 4 bit set of the castling rights still held by both
// sides.
type CastlingRights uint8

// The four individual rights and the full/empty sets.
const (
	CastlingWK CastlingRights = 1 << iota
	CastlingWQ
	CastlingBK
	CastlingBQ

	CastlingNone CastlingRights = 0
	CastlingAll  CastlingRights = CastlingWK | CastlingWQ | CastlingBK | CastlingBQ
	CastlingLength              = 16
)

// Has reports whether r grants the given right.
func (r CastlingRights) Has(right CastlingRights) bool {
	return r&right != 0
}

// String renders rights in FEN order, e.g. "KQkq", or "-" if none remain.
func (r CastlingRights) String() string {
	if r == CastlingNone {
		return "-"
	}
	var b strings.Builder
	if r.Has(CastlingWK) {
		b.WriteByte('K')
	}
	if r.Has(CastlingWQ) {
		b.WriteByte('Q')
	}
	if r.Has(CastlingBK) {
		b.WriteByte('k')
	}
	if r.Has(CastlingBQ) {
		b.WriteByte('q')
	}
	return b.String()
}

// ParseCastlingRights parses a FEN castling field, e.g. "KQkq" or "-".
func ParseCastlingRights(s string) CastlingRights {
	r := CastlingNone
	for _, c := range s {
		switch c {
		case 'K':
			r |= CastlingWK
		case 'Q':
			r |= CastlingWQ
		case 'k':
			r |= CastlingBK
		case 'q':
			r |= CastlingBQ
		}
	}
	return r
}

// castlingRightsMask[sq] is ANDed into the current rights whenever a move
// touches sq (as origin or destination): moving the king or a rook off its
// home square, or capturing a rook on its home square, clears the
// corresponding bit. All other squares are CastlingAll (no effect).
var castlingRightsMask [SqLength]CastlingRights

func initCastlingRightsMask() {
	for sq := SqA1; sq < SqNone; sq++ {
		castlingRightsMask[sq] = CastlingAll
	}
	castlingRightsMask[SqE1] &^= CastlingWK | CastlingWQ
	castlingRightsMask[SqA1] &^= CastlingWQ
	castlingRightsMask[SqH1] &^= CastlingWK
	castlingRightsMask[SqE8] &^= CastlingBK | CastlingBQ
	castlingRightsMask[SqA8] &^= CastlingBQ
	castlingRightsMask[SqH8] &^= CastlingBK
}

// CastlingMaskOf returns the castling-rights mask associated with a square.
// Intersecting the current rights with the masks of a move's from and to
// squares applies every rights-losing event in one step.
func CastlingMaskOf(sq Square) CastlingRights {
	return castlingRightsMask[sq]
}
