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

import "fmt"

// Move is a packed 16 bit move: bits 0-5 from, bits 6-11 to, bits 12-15 a
// "special" nibble describing the kind of move. MoveEmpty (all zero) is the
// sentinel for "no move".
type Move uint16

// Special-nibble values. Promotions pack the promotion piece into the low
// two bits: N=00, B=01, R=10, Q=11, matching the classic from-to move
// encoding (https://www.chessprogramming.org/Encoding_Moves#From-To_Based).
const (
	SpecialQuiet          = 0b0000
	SpecialDoublePawnPush = 0b0001
	SpecialKingCastle     = 0b0010
	SpecialQueenCastle    = 0b0011
	SpecialCapture        = 0b0100
	SpecialEnPassant      = 0b0101
	SpecialPromoN         = 0b1000
	SpecialPromoB         = 0b1001
	SpecialPromoR         = 0b1010
	SpecialPromoQ         = 0b1011
	SpecialPromoCaptureN  = 0b1100
	SpecialPromoCaptureB  = 0b1101
	SpecialPromoCaptureR  = 0b1110
	SpecialPromoCaptureQ  = 0b1111

	moveFromMask    = 0x003F
	moveToShift     = 6
	moveToMask      = 0x0FC0
	moveSpecialShift = 12
	moveSpecialMask = 0xF000

	promotionBit = 0b1000
)

// MoveEmpty is the zero move, used as "no move" throughout search and the TT.
const MoveEmpty Move = 0

// NewMove packs a from/to/special triple into a Move.
func NewMove(from, to Square, special uint16) Move {
	return Move(uint16(from) | uint16(to)<<moveToShift | special<<moveSpecialShift)
}

// From returns the move's origin square.
func (m Move) From() Square {
	return Square(m & moveFromMask)
}

// To returns the move's destination square.
func (m Move) To() Square {
	return Square((m & moveToMask) >> moveToShift)
}

// Special returns the move's 4 bit special nibble.
func (m Move) Special() uint16 {
	return uint16((m & moveSpecialMask) >> moveSpecialShift)
}

// IsEmpty reports whether m is the zero/sentinel move.
func (m Move) IsEmpty() bool {
	return m == MoveEmpty
}

// IsCapture reports whether m captures a piece (including en passant).
func (m Move) IsCapture() bool {
	return m.Special()&SpecialCapture != 0
}

// IsEnPassant reports whether m is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Special() == SpecialEnPassant
}

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Special()&promotionBit != 0
}

// IsCastle reports whether m is a king- or queen-side castle.
func (m Move) IsCastle() bool {
	s := m.Special()
	return s == SpecialKingCastle || s == SpecialQueenCastle
}

// IsDoublePawnPush reports whether m is a two-square pawn push.
func (m Move) IsDoublePawnPush() bool {
	return m.Special() == SpecialDoublePawnPush
}

// PromotionKind decodes the promotion piece kind from the low two bits of
// the special nibble. Only meaningful when IsPromotion() is true.
func (m Move) PromotionKind() PieceKind {
	switch m.Special() & 0b0011 {
	case 0b00:
		return Knight
	case 0b01:
		return Bishop
	case 0b10:
		return Rook
	default:
		return Queen
	}
}

// promotionSpecial returns the special nibble for promoting to pk, capturing
// or not.
func promotionSpecial(pk PieceKind, capture bool) uint16 {
	var base uint16
	switch pk {
	case Knight:
		base = SpecialPromoN
	case Bishop:
		base = SpecialPromoB
	case Rook:
		base = SpecialPromoR
	default:
		base = SpecialPromoQ
	}
	if capture {
		base |= SpecialCapture
	}
	return base
}

// NewPromotion builds a (possibly capturing) promotion move.
func NewPromotion(from, to Square, pk PieceKind, capture bool) Move {
	return NewMove(from, to, promotionSpecial(pk, capture))
}

// String renders the move in UCI long algebraic notation, e.g. "e2e4" or
// "e7e8q". The empty move renders as "0000", the UCI convention for "no move".
func (m Move) String() string {
	if m.IsEmpty() {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += lowerLetter(m.PromotionKind().String())
	}
	return s
}

func lowerLetter(s string) string {
	if len(s) == 0 {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 32
	}
	return string(b)
}

// GoString supports "%#v"-style debug printing with the special nibble shown.
func (m Move) GoString() string {
	return fmt.Sprintf("%s(special=%04b)", m.String(), m.Special())
}
