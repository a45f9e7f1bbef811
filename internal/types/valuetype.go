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

// ValueType classifies a stored search value relative to the alpha-beta
// window it was produced in; this is the transposition table's node kind,
// packed into the low 2 bits of a gen_bound byte (see transpositiontable).
type ValueType uint8

const (
	// ValueTypeNone marks an as-yet unused transposition table slot.
	ValueTypeNone ValueType = iota
	// ValueTypeExact is a value inside (alpha, beta): the true minimax value.
	ValueTypeExact
	// ValueTypeAlpha is an upper bound (an "All" node): the true value is at
	// most this, because every move was searched and none reached alpha.
	ValueTypeAlpha
	// ValueTypeBeta is a lower bound (a "Cut" node): the true value is at
	// least this, because a move caused a beta cutoff.
	ValueTypeBeta
	// ValueTypePV marks a sticky principal-variation node: not itself a
	// cutoff bound, but its best_move is always trustworthy as an ordering
	// hint and PV extraction refreshes this kind so the entry survives
	// replacement between iterations.
	ValueTypePV
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeExact:
		return "exact"
	case ValueTypeAlpha:
		return "alpha"
	case ValueTypeBeta:
		return "beta"
	case ValueTypePV:
		return "pv"
	default:
		return "none"
	}
}
