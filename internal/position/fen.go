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

package position

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	. "github.com/frankkopp/kestrel/internal/types"
)

// setupFromFen resets p and populates it from a FEN string. Only the first
// four fields are required; halfmove clock and fullmove number default to 0
// and 1 when absent.
func (p *Position) setupFromFen(fen string) error {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) == 0 {
		return errors.New("fen: empty string")
	}

	*p = Position{}
	p.state.EpSquare = SqNone
	for sq := range p.pieceOn {
		p.pieceOn[sq] = PieceNone
	}

	if err := p.placePieces(fields[0]); err != nil {
		return err
	}

	p.state.SideToMove, p.state.Opponent = White, Black
	if len(fields) >= 2 {
		switch fields[1] {
		case "w":
			p.state.SideToMove, p.state.Opponent = White, Black
		case "b":
			p.state.SideToMove, p.state.Opponent = Black, White
		default:
			return fmt.Errorf("fen: invalid side to move %q", fields[1])
		}
	}

	if len(fields) >= 3 && fields[2] != "-" {
		p.state.Castling = ParseCastlingRights(fields[2])
	}

	if len(fields) >= 4 && fields[3] != "-" {
		sq := MakeSquare(fields[3])
		if !sq.IsValid() {
			return fmt.Errorf("fen: invalid en passant square %q", fields[3])
		}
		p.state.EpSquare = sq
	}

	halfMove := 0
	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return fmt.Errorf("fen: invalid halfmove clock: %w", err)
		}
		halfMove = n
	}
	p.state.HalfMoveClock = halfMove

	fullMove := 1
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return fmt.Errorf("fen: invalid fullmove number: %w", err)
		}
		if n > 0 {
			fullMove = n
		}
	}
	p.nextFullMoveBase = 2*(fullMove-1) + int(p.state.SideToMove)

	p.state.KingSquare[White] = p.kingSquareOf(White)
	p.state.KingSquare[Black] = p.kingSquareOf(Black)

	p.key = p.RecomputeKey()
	p.state.InCheck = p.Attacked(p.state.KingSquare[p.state.SideToMove], p.state.Opponent)
	p.pushRepetition(true)

	return nil
}

func (p *Position) placePieces(board string) error {
	rows := strings.Split(board, "/")
	if len(rows) != 8 {
		return fmt.Errorf("fen: expected 8 ranks, got %d", len(rows))
	}
	for i, row := range rows {
		r := Rank8 - Rank(i)
		f := FileA
		for _, c := range row {
			if c >= '1' && c <= '8' {
				f += File(c - '0')
				continue
			}
			if f > FileH {
				return fmt.Errorf("fen: rank %d overflows", int(r)+1)
			}
			pc, ok := PieceFromLetter(byte(c))
			if !ok {
				return fmt.Errorf("fen: invalid piece letter %q", c)
			}
			sq := SquareOf(f, r)
			p.pieceOn[sq] = pc
			p.pieceBb[pc] = p.pieceBb[pc].PushSquare(sq)
			p.updateAggregates(pc, sq, true)
			f++
		}
		if f != FileH+1 {
			return fmt.Errorf("fen: rank %d does not sum to 8 squares", int(r)+1)
		}
	}
	return nil
}

// RecomputeKey rebuilds the Zobrist key from scratch from the current board
// state, independent of the incrementally maintained key. Used by tests to
// check the two stay in sync.
func (p *Position) RecomputeKey() Key {
	var key Key
	for sq := SqA1; sq < SqNone; sq++ {
		if pc := p.pieceOn[sq]; pc != PieceNone {
			key ^= zobristBase.pieces[pc][sq]
		}
	}
	key ^= zobristBase.castlingRights[p.state.Castling]
	key ^= zobristBase.enPassantFile[epZobristIndex(p.state.EpSquare)]
	if p.state.SideToMove == Black {
		key ^= zobristBase.nextPlayer
	}
	return key
}

// Fen renders the position as a FEN string.
func (p *Position) Fen() string {
	var sb strings.Builder
	for r := Rank8; ; r-- {
		empty := 0
		for f := FileA; f <= FileH; f++ {
			pc := p.pieceOn[SquareOf(f, r)]
			if pc == PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > Rank1 {
			sb.WriteString("/")
		}
		if r == Rank1 {
			break
		}
	}
	sb.WriteString(" ")
	sb.WriteString(p.state.SideToMove.String())
	sb.WriteString(" ")
	sb.WriteString(p.state.Castling.String())
	sb.WriteString(" ")
	sb.WriteString(p.state.EpSquare.String())
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.state.HalfMoveClock))
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.FullMoveNumber()))
	return sb.String()
}
