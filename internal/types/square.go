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

// Package types holds the low level value types shared by every other
// package in the engine: squares, bitboards, pieces, moves, and the
// precomputed attack tables (including the magic bitboards) that move
// generation and search are built on top of.
package types

import "fmt"

// Square is a board square, file-major: a1=0 .. h8=63.
type Square uint8

// Squares, a1 through h8, plus the SqNone sentinel.
const (
	SqA1 Square = iota
	SqB1
	SqC1
	SqD1
	SqE1
	SqF1
	SqG1
	SqH1
	SqA2
	SqB2
	SqC2
	SqD2
	SqE2
	SqF2
	SqG2
	SqH2
	SqA3
	SqB3
	SqC3
	SqD3
	SqE3
	SqF3
	SqG3
	SqH3
	SqA4
	SqB4
	SqC4
	SqD4
	SqE4
	SqF4
	SqG4
	SqH4
	SqA5
	SqB5
	SqC5
	SqD5
	SqE5
	SqF5
	SqG5
	SqH5
	SqA6
	SqB6
	SqC6
	SqD6
	SqE6
	SqF6
	SqG6
	SqH6
	SqA7
	SqB7
	SqC7
	SqD7
	SqE7
	SqF7
	SqG7
	SqH7
	SqA8
	SqB8
	SqC8
	SqD8
	SqE8
	SqF8
	SqG8
	SqH8
	SqNone
	SqLength = 64
)

// IsValid reports whether sq is one of the 64 real board squares.
func (sq Square) IsValid() bool {
	return sq < SqNone
}

// FileOf returns the file of sq.
func (sq Square) FileOf() File {
	return File(sq & 7)
}

// RankOf returns the rank of sq.
func (sq Square) RankOf() Rank {
	return Rank(sq >> 3)
}

// SquareOf builds a square from a file and rank, or SqNone if either is invalid.
func SquareOf(f File, r Rank) Square {
	if !f.IsValid() || !r.IsValid() {
		return SqNone
	}
	return Square(int(r)<<3 + int(f))
}

// MakeSquare parses a two character square name such as "e4". Returns SqNone
// for anything that isn't a well-formed square string.
func MakeSquare(s string) Square {
	if len(s) < 2 {
		return SqNone
	}
	f := File(s[0] - 'a')
	r := Rank(s[1] - '1')
	return SquareOf(f, r)
}

// To returns the square reached by moving one step in direction d, or SqNone
// if that step would leave the board.
func (sq Square) To(d Direction) Square {
	return squareStep[sq][d.index()]
}

// String renders the square in algebraic notation, e.g. "e4", or "-" for SqNone.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+byte(sq.FileOf()), '1'+byte(sq.RankOf()))
}

var squareStep [SqLength][8]Square

func initSquareSteps() {
	for sq := SqA1; sq < SqNone; sq++ {
		for i, d := range allDirections {
			squareStep[sq][i] = stepOnce(sq, d)
		}
	}
}

// stepOnce computes sq.To(d) the slow way, used only to build squareStep.
func stepOnce(sq Square, d Direction) Square {
	f, r := int(sq.FileOf()), int(sq.RankOf())
	switch d {
	case North:
		r++
	case South:
		r--
	case East:
		f++
	case West:
		f--
	case Northeast:
		f++
		r++
	case Southeast:
		f++
		r--
	case Southwest:
		f--
		r--
	case Northwest:
		f--
		r++
	}
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return SqNone
	}
	return SquareOf(File(f), Rank(r))
}
