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

// Color is a chess side. Neutral is a sentinel meaning "both colors",
// used where an API needs to address an aggregate rather than a single side.
type Color uint8

// Color constants.
const (
	White Color = iota
	Black
	Neutral
	ColorLength = 2
)

// IsValid reports whether c is White or Black (not Neutral).
func (c Color) IsValid() bool {
	return c == White || c == Black
}

// Flip returns the opposite of a real color.
func (c Color) Flip() Color {
	return c ^ 1
}

// String renders the color as "w" or "b".
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		panic(fmt.Sprintf("invalid color %d", c))
	}
}

// Sign returns +1 for White and -1 for Black, the factor search uses to
// convert an evaluation (always White's perspective) into the side to
// move's perspective.
func (c Color) Sign() Value {
	if c == White {
		return 1
	}
	return -1
}
