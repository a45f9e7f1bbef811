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

// GamePhaseMax is the maximum game phase value (24 = starting material: one
// point per minor, two per rook, four per queen, summed over both sides),
// used to taper piece-square values between midgame and endgame.
const GamePhaseMax = 24

var (
	posMidValue = [PieceLength][SqLength]Value{}
	posEndValue = [PieceLength][SqLength]Value{}
	posValue    = [PieceLength][SqLength][GamePhaseMax + 1]Value{}
)

// PosMidValue returns the midgame positional value for pc on sq.
func PosMidValue(pc Piece, sq Square) Value { return posMidValue[pc][sq] }

// PosEndValue returns the endgame positional value for pc on sq.
func PosEndValue(pc Piece, sq Square) Value { return posEndValue[pc][sq] }

// PosValue returns the positional value for pc on sq tapered to gamePhase
// (0 = endgame, GamePhaseMax = full midgame material).
func PosValue(pc Piece, sq Square, gamePhase int) Value { return posValue[pc][sq][gamePhase] }

func initPosValues() {
	tables := map[PieceKind]*[2][SqLength]Value{
		Pawn:   {pawnsMidGame, pawnsEndGame},
		Knight: {knightMidGame, knightEndGame},
		Bishop: {bishopMidGame, bishopEndGame},
		Rook:   {rookMidGame, rookEndGame},
		Queen:  {queenMidGame, queenEndGame},
		King:   {kingMidGame, kingEndGame},
	}
	for pk, t := range tables {
		mid, end := t[0], t[1]
		for sq := SqA1; sq <= SqH8; sq++ {
			wp, bp := MakePiece(White, pk), MakePiece(Black, pk)
			posMidValue[wp][sq] = mid[63-sq]
			posEndValue[wp][sq] = end[63-sq]
			posMidValue[bp][sq] = mid[sq]
			posEndValue[bp][sq] = end[sq]
			for gp := 0; gp <= GamePhaseMax; gp++ {
				posValue[wp][sq][gp] = taper(gp, mid[63-sq], end[63-sq])
				posValue[bp][sq][gp] = taper(gp, mid[sq], end[sq])
			}
		}
	}
}

func taper(gamePhase int, mid, end Value) Value {
	return (Value(gamePhase)*mid + Value(GamePhaseMax-gamePhase)*end) / GamePhaseMax
}

// Piece-square tables, laid out as seen from White's side with rank 8 in the
// first row. White reads entry 63-sq and Black reads entry sq (see
// initPosValues above), a 180 degree turn of the board that also mirrors
// the files.
var (
	pawnsMidGame = [SqLength]Value{
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 5, 5, 5, 5, 5, 5, 0,
		5, 5, 10, 30, 30, 10, 5, 5,
		0, 0, 0, 30, 30, 0, 0, 0,
		5, -5, -10, 0, 0, -10, -5, 5,
		5, 10, 10, -30, -30, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	pawnsEndGame = [SqLength]Value{
		0, 0, 0, 0, 0, 0, 0, 0,
		90, 90, 90, 90, 90, 90, 90, 90,
		40, 50, 50, 60, 60, 50, 50, 40,
		20, 30, 30, 40, 40, 30, 30, 20,
		10, 10, 20, 20, 20, 10, 10, 10,
		5, 10, 10, 10, 10, 10, 10, 5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	knightMidGame = [SqLength]Value{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -25, -20, -30, -30, -20, -25, -50,
	}
	knightEndGame = [SqLength]Value{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -20, -30, -30, -20, -40, -50,
	}
	bishopMidGame = [SqLength]Value{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -40, -10, -10, -40, -10, -20,
	}
	bishopEndGame = [SqLength]Value{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}
	rookMidGame = [SqLength]Value{
		5, 5, 5, 5, 5, 5, 5, 5,
		10, 10, 10, 10, 10, 10, 10, 10,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		-15, -10, 15, 15, 15, 15, -10, -15,
	}
	rookEndGame = [SqLength]Value{
		5, 5, 5, 5, 5, 5, 5, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	queenMidGame = [SqLength]Value{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-5, 0, 2, 2, 2, 2, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	}
	queenEndGame = [SqLength]Value{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	}
	kingMidGame = [SqLength]Value{
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-10, -20, -20, -30, -30, -30, -20, -10,
		0, 0, -20, -20, -20, -20, 0, 0,
		20, 50, 0, -20, -20, 0, 50, 20,
	}
	kingEndGame = [SqLength]Value{
		-50, -30, -30, -20, -20, -30, -30, -50,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-50, -30, -30, -30, -30, -30, -30, -50,
	}
)
