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

// PieceKind is a piece type without color: Pawn..King.
type PieceKind uint8

// Piece kinds.
const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	PieceKindNone
	PieceKindLength = 6
)

// IsValid reports whether pk is one of the 6 real piece kinds.
func (pk PieceKind) IsValid() bool {
	return pk < PieceKindNone
}

var pieceKindLetters = [PieceKindLength]byte{'P', 'N', 'B', 'R', 'Q', 'K'}

// String returns the upper case piece letter, e.g. "N" for knight.
func (pk PieceKind) String() string {
	if !pk.IsValid() {
		return "-"
	}
	return string(pieceKindLetters[pk])
}

// Piece is a flat 0..11 colored-piece id: WPawn..WKing, then BPawn..BKing.
// The layout lets a colored piece be computed as color*6 + kind (see
// MakePiece) and index piece bitboards without a 2D lookup.
type Piece uint8

// Colored piece ids. White pieces first (0..5), then Black (6..11), each in
// canonical P,N,B,R,Q,K order.
const (
	WPawn Piece = iota
	WKnight
	WBishop
	WRook
	WQueen
	WKing
	BPawn
	BKnight
	BBishop
	BRook
	BQueen
	BKing
	PieceNone
	PieceLength = 12
)

// MakePiece builds the flat piece id for a color and kind.
func MakePiece(c Color, pk PieceKind) Piece {
	return Piece(int(c)*PieceKindLength + int(pk))
}

// Color returns the piece's color.
func (p Piece) Color() Color {
	return Color(p / PieceKindLength)
}

// Kind returns the piece's kind.
func (p Piece) Kind() PieceKind {
	return PieceKind(p % PieceKindLength)
}

// IsValid reports whether p is one of the 12 real colored pieces.
func (p Piece) IsValid() bool {
	return p < PieceNone
}

// String renders the piece as a single letter, upper case for White, lower
// case for Black, e.g. "N" / "n".
func (p Piece) String() string {
	if !p.IsValid() {
		return "-"
	}
	s := p.Kind().String()
	if p.Color() == Black {
		return string(s[0] + 32)
	}
	return s
}

// PieceFromLetter parses a single FEN piece letter into a Piece. ok is false
// for anything that isn't one of PNBRQKpnbrqk.
func PieceFromLetter(c byte) (p Piece, ok bool) {
	color := White
	lower := c
	if c >= 'a' && c <= 'z' {
		color = Black
	} else {
		lower = c + 32
	}
	for k := PieceKind(0); k < PieceKindLength; k++ {
		if pieceKindLetters[k]+32 == lower {
			return MakePiece(color, k), true
		}
	}
	return PieceNone, false
}

// pieceValue gives the coarse material value used for MVV-LVA ordering and
// by the evaluator's material term. Centipawns; king is priceless and never
// captured so its value is only used defensively in MVV-LVA arithmetic.
var pieceValue = [PieceKindLength]Value{100, 320, 330, 500, 900, 20000}

// Value returns the kind's material value in centipawns.
func (pk PieceKind) Value() Value {
	return pieceValue[pk]
}
