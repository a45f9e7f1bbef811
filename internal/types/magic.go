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

// Magic holds the fancy magic bitboard data for a single square and a single
// slider (rook or bishop): the relevant occupancy mask, the magic
// multiplier, the shift, and a slice into that slider's shared attack table.
//
// The generation algorithm (Carry-Rippler subset enumeration plus a sparse
// xorshift64star search for a collision-free magic) is the one popularized
// by Stockfish; see https://www.chessprogramming.org/Magic_Bitboards.
type Magic struct {
	mask    Bitboard
	magic   Bitboard
	attacks []Bitboard
	shift   uint
}

// index computes the attack table index for a given board occupancy.
func (m *Magic) index(occupied Bitboard) uint {
	occ := occupied & m.mask
	occ *= m.magic
	occ >>= m.shift
	return uint(occ)
}

// attacksFor returns the slider's attack set for the given occupancy.
func (m *Magic) attacksFor(occupied Bitboard) Bitboard {
	return m.attacks[m.index(occupied)]
}

var (
	rookTable  []Bitboard
	bishopTable []Bitboard

	rookMagics   [SqLength]Magic
	bishopMagics [SqLength]Magic
)

func initMagicBitboards() {
	rookTable = make([]Bitboard, 0x19000)
	bishopTable = make([]Bitboard, 0x1480)

	initMagics(rookTable, &rookMagics, &rookDirections)
	initMagics(bishopTable, &bishopMagics, &bishopDirections)

	for sq := SqA1; sq <= SqH8; sq++ {
		pseudoAttacks[Rook][sq] = rookMagics[sq].attacksFor(BbZero)
		pseudoAttacks[Bishop][sq] = bishopMagics[sq].attacksFor(BbZero)
		pseudoAttacks[Queen][sq] = pseudoAttacks[Rook][sq] | pseudoAttacks[Bishop][sq]
	}
}

// initMagics computes the magic numbers and attack tables for every square
// for one slider (rook or bishop). Table is shared across all 64 squares,
// each Magic's attacks slice is a window into it.
func initMagics(table []Bitboard, magics *[SqLength]Magic, directions *[4]Direction) {
	// Seeds picked by Stockfish's authors to find valid magics quickly; they
	// have no meaning beyond that, any seed that eventually converges works.
	seeds := [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

	var occupancy, reference [4096]Bitboard
	var epoch [4096]int
	var b Bitboard
	cnt := 0
	size := 0

	for sq := SqA1; sq <= SqH8; sq++ {
		edges := ((Rank1Bb | Rank8Bb) &^ sq.RankBb()) | ((FileABb | FileHBb) &^ sq.FileBb())

		m := &magics[sq]
		m.mask = slidingAttack(directions, sq, BbZero) &^ edges
		m.shift = uint(64 - m.mask.PopCount())

		if sq == SqA1 {
			m.attacks = table
		} else {
			m.attacks = magics[sq-1].attacks[size:]
		}

		// Carry-Rippler: enumerate every subset of the mask.
		b = 0
		size = 0
		for {
			occupancy[size] = b
			reference[size] = slidingAttack(directions, sq, b)
			size++
			b = (b - m.mask) & m.mask
			if b == 0 {
				break
			}
		}

		rng := newPrnG(seeds[sq.RankOf()])

		for i := 0; i < size; {
			for m.magic = 0; ; {
				m.magic = Bitboard(rng.sparseRand())
				if ((m.magic * m.mask) >> 56).PopCount() < 6 {
					break
				}
			}

			cnt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					m.attacks[idx] = reference[i]
				} else if m.attacks[idx] != reference[i] {
					break
				}
			}
		}
	}
}

// PrnG is the xorshift64star generator used to search for magic numbers.
// Public domain construction by Sebastiano Vigna; see
// http://vigna.di.unimi.it/ftp/papers/xorshift.pdf.
type PrnG struct {
	s uint64
}

func newPrnG(seed uint64) *PrnG {
	return &PrnG{s: seed}
}

func (r *PrnG) rand64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

// sparseRand ANDs three rand64 draws together, biasing the result toward a
// small popcount, which is what a good magic candidate needs.
func (r *PrnG) sparseRand() uint64 {
	return r.rand64() & r.rand64() & r.rand64()
}
