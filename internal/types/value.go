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

// Value is a centipawn evaluation or search score, always carried from the
// perspective of the side to move inside search (negamax convention); the
// evaluator itself always returns White's perspective, see package evaluator.
type Value int16

// Score bounds and special values.
const (
	ValueZero  Value = 0
	ValueDraw  Value = 0
	ValueMax   Value = 32000
	ValueMin   Value = -ValueMax
	ValueNA    Value = ValueMin - 1

	// MateValue is the score of being checkmated right now. Scores within
	// 100 of it encode "mate in N" by counting down one per ply, see
	// MateIn/MatePlies.
	MateValue Value = (ValueMax - 100) / 100 * 100
)

// MateIn returns the score for delivering mate at the given ply from the
// root (ply 0 = mate on the move just made).
func MateIn(ply int) Value {
	return MateValue - Value(ply)
}

// MatedIn returns the score for being mated at the given ply.
func MatedIn(ply int) Value {
	return -MateValue + Value(ply)
}

// IsMateScore reports whether v encodes a forced mate.
func IsMateScore(v Value) bool {
	return v <= MatedIn(0)+100 || v >= MateIn(0)-100
}

// MatePlies returns the signed number of full moves to mate encoded in v,
// following the UCI convention (positive = engine mates, negative = engine
// gets mated). Only meaningful when IsMateScore(v) is true.
func MatePlies(v Value) int {
	if v > 0 {
		return (int(MateValue-v) + 1) / 2
	}
	return -((int(MateValue+v) + 1) / 2)
}
