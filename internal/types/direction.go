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

// Direction is a compass direction used both to step a single square
// (Square.To) and to index ray/orientation tables.
type Direction int8

// The eight ray directions, expressed as the square-index delta they add
// (before edge clamping, which Square.To and the ray tables handle).
const (
	North     Direction = 8
	East      Direction = 1
	South     Direction = -8
	West      Direction = -1
	Northeast Direction = 9
	Southeast Direction = -7
	Southwest Direction = -9
	Northwest Direction = 7
)

// allDirections fixes the canonical ordering used to index per-square
// direction tables (squareStep, Rays, RookRays/BishopRays).
var allDirections = [8]Direction{North, East, South, West, Northeast, Southeast, Southwest, Northwest}

// index returns d's position in allDirections / Orientation ordering.
func (d Direction) index() int {
	switch d {
	case North:
		return 0
	case East:
		return 1
	case South:
		return 2
	case West:
		return 3
	case Northeast:
		return 4
	case Southeast:
		return 5
	case Southwest:
		return 6
	case Northwest:
		return 7
	}
	return -1
}

// Orientation names a ray direction for indexing Rays/Between tables. It
// shares the same ordering as allDirections.
type Orientation int

// The eight ray orientations, same order as allDirections.
const (
	OrientN Orientation = iota
	OrientE
	OrientS
	OrientW
	OrientNE
	OrientSE
	OrientSW
	OrientNW
)

var rookOrientations = [4]Orientation{OrientN, OrientE, OrientS, OrientW}
var bishopOrientations = [4]Orientation{OrientNE, OrientSE, OrientSW, OrientNW}
var rookDirections = [4]Direction{North, East, South, West}
var bishopDirections = [4]Direction{Northeast, Southeast, Southwest, Northwest}
