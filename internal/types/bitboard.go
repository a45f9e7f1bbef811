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
	"fmt"
	"math/bits"
	"strings"
)

// Bitboard is a 64 bit unsigned int with one bit per board square.
type Bitboard uint64

// Various constant bitboards.
const (
	BbZero Bitboard = 0
	BbAll  Bitboard = ^BbZero
	BbOne  Bitboard = 1

	FileABb Bitboard = 0x0101010101010101
	FileBBb          = FileABb << 1
	FileCBb          = FileABb << 2
	FileDBb          = FileABb << 3
	FileEBb          = FileABb << 4
	FileFBb          = FileABb << 5
	FileGBb          = FileABb << 6
	FileHBb          = FileABb << 7

	Rank1Bb Bitboard = 0xFF
	Rank2Bb          = Rank1Bb << (8 * 1)
	Rank3Bb          = Rank1Bb << (8 * 2)
	Rank4Bb          = Rank1Bb << (8 * 3)
	Rank5Bb          = Rank1Bb << (8 * 4)
	Rank6Bb          = Rank1Bb << (8 * 5)
	Rank7Bb          = Rank1Bb << (8 * 6)
	Rank8Bb          = Rank1Bb << (8 * 7)

	notFileABb = ^FileABb
	notFileHBb = ^FileHBb
	notRank1Bb = ^Rank1Bb
	notRank8Bb = ^Rank8Bb
)

// Bb returns the single-bit Bitboard for sq.
func (sq Square) Bb() Bitboard {
	return sqBb[sq]
}

// FileBb returns the full-file Bitboard containing sq.
func (sq Square) FileBb() Bitboard {
	return fileBb[sq.FileOf()]
}

// RankBb returns the full-rank Bitboard containing sq.
func (sq Square) RankBb() Bitboard {
	return rankBb[sq.RankOf()]
}

// Has reports whether sq's bit is set in b.
func (b Bitboard) Has(sq Square) bool {
	return b&sqBb[sq] != 0
}

// PushSquare sets sq's bit in b.
func (b Bitboard) PushSquare(sq Square) Bitboard {
	return b | sqBb[sq]
}

// PopSquare clears sq's bit in b.
func (b Bitboard) PopSquare(sq Square) Bitboard {
	return b &^ sqBb[sq]
}

// Lsb returns the least significant set bit as a Square, or SqNone if b is
// empty.
func (b Bitboard) Lsb() Square {
	if b == BbZero {
		return SqNone
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Msb returns the most significant set bit as a Square, or SqNone if b is
// empty.
func (b Bitboard) Msb() Square {
	if b == BbZero {
		return SqNone
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLsb returns the Lsb of b and clears it from b in place.
func (b *Bitboard) PopLsb() Square {
	if *b == BbZero {
		return SqNone
	}
	sq := b.Lsb()
	*b &= *b - 1
	return sq
}

// PopCount returns the number of set bits in b.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// MoreThanOne reports whether b has more than one bit set, cheaper than
// PopCount() > 1.
func (b Bitboard) MoreThanOne() bool {
	return b&(b-1) != 0
}

// ShiftBitboard shifts every bit of b one square in direction d, masking off
// bits that would wrap around a board edge.
func ShiftBitboard(b Bitboard, d Direction) Bitboard {
	switch d {
	case North:
		return b << 8
	case South:
		return b >> 8
	case East:
		return (b &^ FileHBb) << 1
	case West:
		return (b &^ FileABb) >> 1
	case Northeast:
		return (b &^ FileHBb) << 9
	case Southeast:
		return (b &^ FileHBb) >> 7
	case Southwest:
		return (b &^ FileABb) >> 9
	case Northwest:
		return (b &^ FileABb) << 7
	}
	return b
}

// String renders b as a raw 64 character bit string, LSB first.
func (b Bitboard) String() string {
	var sb strings.Builder
	for i := 0; i < 64; i++ {
		if b&(BbOne<<i) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// StringBoard renders b as an 8x8 ASCII board, rank 8 on top.
func (b Bitboard) StringBoard() string {
	var sb strings.Builder
	sb.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank8; ; r-- {
		for f := FileA; f <= FileH; f++ {
			if b.Has(SquareOf(f, r)) {
				sb.WriteString("| X ")
			} else {
				sb.WriteString("|   ")
			}
		}
		sb.WriteString(fmt.Sprintf("| %d\n+---+---+---+---+---+---+---+---+\n", int(r)+1))
		if r == Rank1 {
			break
		}
	}
	sb.WriteString("  a   b   c   d   e   f   g   h\n")
	return sb.String()
}

// GetAttacksBb returns the attack Bitboard of a piece of kind pk (not Pawn)
// on sq given the board's full occupancy. Sliding pieces go through the
// magic bitboard tables; Knight and King ignore occupied.
func GetAttacksBb(pk PieceKind, sq Square, occupied Bitboard) Bitboard {
	switch pk {
	case Bishop:
		return bishopMagics[sq].attacksFor(occupied)
	case Rook:
		return rookMagics[sq].attacksFor(occupied)
	case Queen:
		return bishopMagics[sq].attacksFor(occupied) | rookMagics[sq].attacksFor(occupied)
	default:
		return pseudoAttacks[pk][sq]
	}
}

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func PawnAttacks(c Color, sq Square) Bitboard {
	return pawnAttacks[c][sq]
}

// PseudoAttacks returns pk's attack Bitboard on sq as if the board were
// empty (only valid for Knight and King; sliders need GetAttacksBb).
func PseudoAttacks(pk PieceKind, sq Square) Bitboard {
	return pseudoAttacks[pk][sq]
}

// Ray returns the ray of squares from sq in orientation o, stopping at the
// board edge, on an empty board.
func Ray(sq Square, o Orientation) Bitboard {
	return rays[o][sq]
}

// RookRay returns the i'th (0..3, in N/E/S/W order) rook ray from sq on an
// empty board, excluding sq, including the border square.
func RookRay(sq Square, i int) Bitboard {
	return rays[rookOrientations[i]][sq]
}

// BishopRay returns the i'th (0..3, in NE/SE/SW/NW order) bishop ray from sq
// on an empty board.
func BishopRay(sq Square, i int) Bitboard {
	return rays[bishopOrientations[i]][sq]
}

// Between returns the Bitboard of squares strictly between from and to if
// they lie on a common rank, file, or diagonal; otherwise BbZero.
func Between(from, to Square) Bitboard {
	return between[from][to]
}

// Line returns the full line (rank, file, or diagonal) through from and to,
// extended to the board edges, or BbZero if they don't share one.
func Line(from, to Square) Bitboard {
	return lineThrough[from][to]
}

// squareDistance[a][b] is the Chebyshev distance between a and b.
var squareDistance [SqLength][SqLength]int

// SquareDistance returns the Chebyshev distance between two squares.
func SquareDistance(a, b Square) int {
	return squareDistance[a][b]
}

var (
	sqBb  [SqLength]Bitboard
	fileBb [8]Bitboard
	rankBb [8]Bitboard

	pawnAttacks   [ColorLength][SqLength]Bitboard
	pseudoAttacks [PieceKindLength][SqLength]Bitboard

	rays        [8][SqLength]Bitboard
	between     [SqLength][SqLength]Bitboard
	lineThrough [SqLength][SqLength]Bitboard
)

func initBitboards() {
	for sq := SqA1; sq < SqNone; sq++ {
		sqBb[sq] = Bitboard(1) << sq
	}
	for f := FileA; f <= FileH; f++ {
		fileBb[f] = FileABb << f
	}
	for r := Rank1; r <= Rank8; r++ {
		rankBb[r] = Rank1Bb << (8 * r)
	}

	initSquareDistance()
	initPseudoAttacks()
	initRays()
	initBetweenAndLine()
	initMagicBitboards()
}

func initSquareDistance() {
	for a := SqA1; a <= SqH8; a++ {
		for b := SqA1; b <= SqH8; b++ {
			fd := abs(int(a.FileOf()) - int(b.FileOf()))
			rd := abs(int(a.RankOf()) - int(b.RankOf()))
			if fd > rd {
				squareDistance[a][b] = fd
			} else {
				squareDistance[a][b] = rd
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// slidingAttack walks each of the four given directions from sq until it
// runs off the board or hits an occupied square (inclusive of that square).
// Not used on the hot path; only to seed the magic tables and the
// pseudo-attacks for sliders on an empty board.
func slidingAttack(directions *[4]Direction, sq Square, occupied Bitboard) Bitboard {
	attack := BbZero
	for _, d := range directions {
		s := sq
		for {
			next := s.To(d)
			if !next.IsValid() || SquareDistance(s, next) != 1 {
				break
			}
			s = next
			attack = attack.PushSquare(s)
			if occupied.Has(s) {
				break
			}
		}
	}
	return attack
}

func initPseudoAttacks() {
	for sq := SqA1; sq <= SqH8; sq++ {
		f, r := int(sq.FileOf()), int(sq.RankOf())

		// King: one step in any of the 8 directions.
		for _, d := range allDirections {
			to := sq.To(d)
			if to.IsValid() {
				pseudoAttacks[King][sq] = pseudoAttacks[King][sq].PushSquare(to)
			}
		}

		// Knight: the 8 (±1,±2)/(±2,±1) jumps.
		knightDeltas := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
		for _, delta := range knightDeltas {
			nf, nr := f+delta[0], r+delta[1]
			if nf >= 0 && nf <= 7 && nr >= 0 && nr <= 7 {
				pseudoAttacks[Knight][sq] = pseudoAttacks[Knight][sq].PushSquare(SquareOf(File(nf), Rank(nr)))
			}
		}

		// Pawns: diagonal attacks only, one per color.
		if f > 0 && r < 7 {
			pawnAttacks[White][sq] = pawnAttacks[White][sq].PushSquare(sq.To(Northwest))
		}
		if f < 7 && r < 7 {
			pawnAttacks[White][sq] = pawnAttacks[White][sq].PushSquare(sq.To(Northeast))
		}
		if f > 0 && r > 0 {
			pawnAttacks[Black][sq] = pawnAttacks[Black][sq].PushSquare(sq.To(Southwest))
		}
		if f < 7 && r > 0 {
			pawnAttacks[Black][sq] = pawnAttacks[Black][sq].PushSquare(sq.To(Southeast))
		}

		// Bishop, Rook and Queen pseudo attacks are filled in once the
		// magic tables exist, see initMagicBitboards.
	}
}

func initRays() {
	for sq := SqA1; sq <= SqH8; sq++ {
		for i, d := range allDirections {
			s := sq
			for {
				next := s.To(d)
				if !next.IsValid() || SquareDistance(s, next) != 1 {
					break
				}
				s = next
				rays[i][sq] = rays[i][sq].PushSquare(s)
			}
		}
	}
}

func initBetweenAndLine() {
	for from := SqA1; from <= SqH8; from++ {
		for _, o := range []Orientation{OrientN, OrientE, OrientS, OrientW, OrientNE, OrientSE, OrientSW, OrientNW} {
			ray := rays[o][from]
			b := ray
			for b != BbZero {
				to := b.PopLsb()
				between[from][to] = ray &^ rays[o][to] &^ sqBb[to]
				lineThrough[from][to] = sqBb[from] | ray | (rays[opposite(o)][from])
			}
		}
	}
}

func opposite(o Orientation) Orientation {
	switch o {
	case OrientN:
		return OrientS
	case OrientS:
		return OrientN
	case OrientE:
		return OrientW
	case OrientW:
		return OrientE
	case OrientNE:
		return OrientSW
	case OrientSW:
		return OrientNE
	case OrientNW:
		return OrientSE
	default:
		return OrientNW
	}
}
