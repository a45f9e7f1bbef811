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

// Package position implements the board representation the rest of the
// engine operates on: piece bitboards and their aggregates, an incrementally
// maintained Zobrist key, reversible make/undo of moves (including null
// moves), FEN load/emit, and the two history stacks search needs for undo
// and repetition detection.
package position

import (
	"fmt"
	"strings"

	"github.com/op/go-logging"

	"github.com/frankkopp/kestrel/internal/assert"
	myLogging "github.com/frankkopp/kestrel/internal/logging"
	. "github.com/frankkopp/kestrel/internal/types"
)

var log *logging.Logger

func init() {
	initZobrist()
}

// StartFen is the FEN of the standard chess starting position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// maxHistory bounds the make/undo history stack; 512 plies comfortably
// covers any game or search line the engine will ever build.
const maxHistory = 512

// GameState is the compact, copyable part of a Position that make/undo push
// and pop wholesale: everything needed to know whose move it is, where the
// kings are, and what rights/en-passant status apply.
type GameState struct {
	SideToMove Color
	Opponent   Color

	KingSquare    [ColorLength]Square
	Castling      CastlingRights
	EpSquare      Square // SqNone if no ep target
	InCheck       bool
	HalfMoveClock int
}

// EpBb returns the en passant target as a one-bit (or zero) bitboard;
// internally it is tracked as a square for cheap comparison and Zobrist
// lookup.
func (gs GameState) EpBb() Bitboard {
	if gs.EpSquare == SqNone {
		return BbZero
	}
	return gs.EpSquare.Bb()
}

type historyEntry struct {
	state    GameState
	captured Piece
	key      Key
}

// Position is the mutable board: 12 piece bitboards, derived aggregates, a
// piece-square array, the current GameState, an incremental Zobrist key, and
// the history stacks used by UndoMove/UndoNullMove and repetition detection.
type Position struct {
	pieceBb [PieceLength]Bitboard
	pieceOn [SqLength]Piece

	anyWhite, anyBlack, anyPiece Bitboard
	whvSlider, bhvSlider         Bitboard
	wdSlider, bdSlider           Bitboard

	state GameState
	key   Key

	nextFullMoveBase int // ply offset so FullMoveNumber() reconstructs the FEN field

	history    [maxHistory]historyEntry
	historyLen int

	// repHistory packs (key with low 7 bits cleared) | (plies-since-irreversible
	// counter, low 7 bits), see CheckRepetition.
	repHistory    [maxHistory]uint64
	repHistoryLen int
}

// NewStartPosition returns a Position set up at the standard chess start.
func NewStartPosition() *Position {
	p, err := NewPositionFromFen(StartFen)
	if err != nil {
		panic(fmt.Sprintf("start position FEN must always parse: %v", err))
	}
	return p
}

// NewPositionFromFen parses fen and returns the resulting Position. Only the
// first four fields are required; halfmove clock and fullmove number default
// to 0 and 1 if omitted.
func NewPositionFromFen(fen string) (*Position, error) {
	if log == nil {
		log = myLogging.GetLog()
	}
	p := &Position{}
	p.state.EpSquare = SqNone
	if err := p.setupFromFen(fen); err != nil {
		log.Errorf("invalid fen, position not created: %v", err)
		return nil, err
	}
	return p, nil
}

// SideToMove returns the color on the move.
func (p *Position) SideToMove() Color { return p.state.SideToMove }

// Opponent returns the color not on the move.
func (p *Position) Opponent() Color { return p.state.Opponent }

// Castling returns the current castling rights.
func (p *Position) Castling() CastlingRights { return p.state.Castling }

// EpSquare returns the current en passant target square, or SqNone.
func (p *Position) EpSquare() Square { return p.state.EpSquare }

// InCheck reports whether the side to move is currently in check.
func (p *Position) InCheck() bool { return p.state.InCheck }

// KingSquare returns the king square of color c.
func (p *Position) KingSquare(c Color) Square { return p.state.KingSquare[c] }

// Key returns the current incremental Zobrist key.
func (p *Position) Key() Key { return p.key }

// HalfMoveClock returns the 50-move-rule half move clock.
func (p *Position) HalfMoveClock() int { return p.state.HalfMoveClock }

// PieceOn returns the piece on sq, or PieceNone.
func (p *Position) PieceOn(sq Square) Piece { return p.pieceOn[sq] }

// PieceBb returns the bitboard for a single flat piece id.
func (p *Position) PieceBb(pc Piece) Bitboard { return p.pieceBb[pc] }

// PiecesOf returns the union of a color and kind's bitboard.
func (p *Position) PiecesOf(c Color, pk PieceKind) Bitboard {
	return p.pieceBb[MakePiece(c, pk)]
}

// AnyWhite, AnyBlack, AnyPiece are the three basic occupancy aggregates.
func (p *Position) AnyWhite() Bitboard { return p.anyWhite }
func (p *Position) AnyBlack() Bitboard { return p.anyBlack }
func (p *Position) AnyPiece() Bitboard { return p.anyPiece }

// Any returns the occupancy bitboard for color c.
func (p *Position) Any(c Color) Bitboard {
	if c == White {
		return p.anyWhite
	}
	return p.anyBlack
}

// HVSlider returns the rook+queen bitboard for color c.
func (p *Position) HVSlider(c Color) Bitboard {
	if c == White {
		return p.whvSlider
	}
	return p.bhvSlider
}

// DSlider returns the bishop+queen bitboard for color c.
func (p *Position) DSlider(c Color) Bitboard {
	if c == White {
		return p.wdSlider
	}
	return p.bdSlider
}

// FullMoveNumber reconstructs the FEN fullmove counter from the ply count.
func (p *Position) FullMoveNumber() int {
	return (p.historyLen+p.nextFullMoveBase)/2 + 1
}

// ///////////////////////////////////////////////////////////////////////
// Attacks
// ///////////////////////////////////////////////////////////////////////

// AttackedBy reports whether sq is attacked by a piece of color `by`, using
// occupied as the blocker set for sliders. Passing an occupancy with the
// defending king removed lets callers test squares "behind" the king along a
// slider's ray, as the king-ban computation in movegen needs.
func (p *Position) AttackedBy(sq Square, by Color, occupied Bitboard) bool {
	if PawnAttacks(by.Flip(), sq)&p.PiecesOf(by, Pawn) != 0 {
		return true
	}
	if PseudoAttacks(Knight, sq)&p.PiecesOf(by, Knight) != 0 {
		return true
	}
	if PseudoAttacks(King, sq)&p.PiecesOf(by, King) != 0 {
		return true
	}
	if GetAttacksBb(Rook, sq, occupied)&p.HVSlider(by) != 0 {
		return true
	}
	if GetAttacksBb(Bishop, sq, occupied)&p.DSlider(by) != 0 {
		return true
	}
	return false
}

// Attacked reports whether sq is attacked by `by` given the current board
// occupancy (no king removed).
func (p *Position) Attacked(sq Square, by Color) bool {
	return p.AttackedBy(sq, by, p.anyPiece)
}

// ///////////////////////////////////////////////////////////////////////
// Mutation
// ///////////////////////////////////////////////////////////////////////

func (p *Position) putPiece(pc Piece, sq Square) {
	if assert.DEBUG {
		assert.Assert(p.pieceOn[sq] == PieceNone, "putPiece: %s already occupied", sq)
	}
	p.pieceOn[sq] = pc
	p.pieceBb[pc] = p.pieceBb[pc].PushSquare(sq)
	p.updateAggregates(pc, sq, true)
	p.key ^= zobristBase.pieces[pc][sq]
}

func (p *Position) removePiece(sq Square) Piece {
	pc := p.pieceOn[sq]
	if assert.DEBUG {
		assert.Assert(pc != PieceNone, "removePiece: %s already empty", sq)
	}
	p.pieceOn[sq] = PieceNone
	p.pieceBb[pc] = p.pieceBb[pc].PopSquare(sq)
	p.updateAggregates(pc, sq, false)
	p.key ^= zobristBase.pieces[pc][sq]
	return pc
}

func (p *Position) movePieceSq(from, to Square) {
	p.putPiece(p.removePiece(from), to)
}

func (p *Position) updateAggregates(pc Piece, sq Square, set bool) {
	c := pc.Color()
	pk := pc.Kind()
	if set {
		if c == White {
			p.anyWhite = p.anyWhite.PushSquare(sq)
		} else {
			p.anyBlack = p.anyBlack.PushSquare(sq)
		}
		p.anyPiece = p.anyPiece.PushSquare(sq)
	} else {
		if c == White {
			p.anyWhite = p.anyWhite.PopSquare(sq)
		} else {
			p.anyBlack = p.anyBlack.PopSquare(sq)
		}
		p.anyPiece = p.anyPiece.PopSquare(sq)
	}
	update := func(bb *Bitboard) {
		if set {
			*bb = bb.PushSquare(sq)
		} else {
			*bb = bb.PopSquare(sq)
		}
	}
	if pk == Rook || pk == Queen {
		if c == White {
			update(&p.whvSlider)
		} else {
			update(&p.bhvSlider)
		}
	}
	if pk == Bishop || pk == Queen {
		if c == White {
			update(&p.wdSlider)
		} else {
			update(&p.bdSlider)
		}
	}
}

func (p *Position) pushHistory(captured Piece) {
	p.history[p.historyLen] = historyEntry{state: p.state, captured: captured, key: p.key}
	p.historyLen++
}

func (p *Position) pushRepetition(irreversible bool) {
	counter := 1
	if !irreversible && p.repHistoryLen > 0 {
		counter = int(p.repHistory[p.repHistoryLen-1]&0x7F) + 1
	}
	p.repHistory[p.repHistoryLen] = (uint64(p.key) &^ 0x7F) | uint64(counter&0x7F)
	p.repHistoryLen++
}

func (p *Position) popRepetition() {
	p.repHistoryLen--
}

// CheckRepetition reports whether the current position has occurred at
// least `count` times before in the repetition history. Only entries since
// the last irreversible move can match, so the scan is bounded by the
// counter packed into the newest entry; it also skips the first 4 plies
// (a repeat is impossible closer than that) and steps by 2 (only
// same-side-to-move entries can match).
func (p *Position) CheckRepetition(count int) bool {
	if p.repHistoryLen < 5 {
		return false
	}
	top := p.repHistory[p.repHistoryLen-1]
	reversiblePlies := int(top & 0x7F)
	if reversiblePlies < 5 {
		return false
	}
	target := top &^ 0x7F
	oldest := p.repHistoryLen - reversiblePlies
	found := 0
	for i := p.repHistoryLen - 1 - 4; i >= oldest; i -= 2 {
		if p.repHistory[i]&^0x7F == target {
			found++
			if found >= count {
				return true
			}
		}
	}
	return false
}

// MakeMove commits m to the board. The caller must guarantee m is legal in
// the current position (the move generator only ever produces legal moves).
func (p *Position) MakeMove(m Move) {
	from, to := m.From(), m.To()
	us := p.state.SideToMove
	them := p.state.Opponent
	fromPc := p.pieceOn[from]
	targetPc := p.pieceOn[to]

	if assert.DEBUG {
		assert.Assert(fromPc != PieceNone, "MakeMove: no piece on %s for %s", from, m)
		assert.Assert(fromPc.Color() == us, "MakeMove: piece on %s isn't side to move's", from)
	}

	p.pushHistory(targetPc)

	p.key ^= zobristBase.enPassantFile[epZobristIndex(p.state.EpSquare)]
	p.key ^= zobristBase.castlingRights[p.state.Castling]

	p.state.EpSquare = SqNone
	p.state.Castling &= CastlingMaskOf(from) & CastlingMaskOf(to)

	irreversible := false

	switch m.Special() {
	case SpecialKingCastle, SpecialQueenCastle:
		p.movePieceSq(from, to)
		rookFrom, rookTo := castleRookSquares(to)
		p.movePieceSq(rookFrom, rookTo)
		irreversible = true

	case SpecialEnPassant:
		capSq := SquareOf(to.FileOf(), from.RankOf())
		p.removePiece(capSq)
		p.movePieceSq(from, to)
		irreversible = true

	default:
		if m.IsPromotion() {
			p.removePiece(from)
			if targetPc != PieceNone {
				p.removePiece(to)
			}
			p.putPiece(MakePiece(us, m.PromotionKind()), to)
			irreversible = true
		} else {
			if targetPc != PieceNone {
				p.removePiece(to)
				irreversible = true
			}
			if fromPc.Kind() == Pawn {
				irreversible = true
				if m.IsDoublePawnPush() {
					p.state.EpSquare = SquareOf(from.FileOf(), midRank(from, to))
				}
			}
			p.movePieceSq(from, to)
		}
	}

	p.key ^= zobristBase.enPassantFile[epZobristIndex(p.state.EpSquare)]
	p.key ^= zobristBase.castlingRights[p.state.Castling]
	p.key ^= zobristBase.nextPlayer

	if irreversible {
		p.state.HalfMoveClock = 0
	} else {
		p.state.HalfMoveClock++
	}

	p.state.SideToMove, p.state.Opponent = them, us
	p.state.KingSquare[White], p.state.KingSquare[Black] = p.kingSquareOf(White), p.kingSquareOf(Black)
	p.state.InCheck = p.Attacked(p.state.KingSquare[p.state.SideToMove], p.state.Opponent)

	p.pushRepetition(irreversible)
}

// UndoMove restores the position to how it was before the last MakeMove.
func (p *Position) UndoMove(m Move) {
	if assert.DEBUG {
		assert.Assert(p.historyLen > 0, "UndoMove: history empty")
	}
	p.popRepetition()

	p.historyLen--
	entry := p.history[p.historyLen]
	from, to := m.From(), m.To()

	switch m.Special() {
	case SpecialKingCastle, SpecialQueenCastle:
		p.movePieceSq(to, from)
		rookFrom, rookTo := castleRookSquares(to)
		p.movePieceSq(rookTo, rookFrom)

	case SpecialEnPassant:
		p.movePieceSq(to, from)
		capSq := SquareOf(to.FileOf(), from.RankOf())
		p.putPiece(MakePiece(entry.state.Opponent, Pawn), capSq)

	default:
		if m.IsPromotion() {
			p.removePiece(to)
			p.putPiece(MakePiece(entry.state.SideToMove, Pawn), from)
			if entry.captured != PieceNone {
				p.putPiece(entry.captured, to)
			}
		} else {
			p.movePieceSq(to, from)
			if entry.captured != PieceNone {
				p.putPiece(entry.captured, to)
			}
		}
	}

	p.state = entry.state
	p.key = entry.key
}

// MakeNullMove passes the turn without moving, for null-move pruning. Does
// not touch the make/undo history or repetition history.
func (p *Position) MakeNullMove() GameState {
	prev := p.state
	p.key ^= zobristBase.enPassantFile[epZobristIndex(p.state.EpSquare)]
	p.state.EpSquare = SqNone
	p.key ^= zobristBase.enPassantFile[epZobristIndex(p.state.EpSquare)]
	p.key ^= zobristBase.nextPlayer
	p.state.SideToMove, p.state.Opponent = p.state.Opponent, p.state.SideToMove
	p.state.InCheck = p.Attacked(p.state.KingSquare[p.state.SideToMove], p.state.Opponent)
	return prev
}

// UndoNullMove restores the state saved by the matching MakeNullMove,
// including the ep-file contribution the null move cleared from the key.
func (p *Position) UndoNullMove(prev GameState) {
	p.key ^= zobristBase.enPassantFile[epZobristIndex(p.state.EpSquare)]
	p.state = prev
	p.key ^= zobristBase.enPassantFile[epZobristIndex(p.state.EpSquare)]
	p.key ^= zobristBase.nextPlayer
}

func (p *Position) kingSquareOf(c Color) Square {
	return p.PiecesOf(c, King).Lsb()
}

func midRank(from, to Square) Rank {
	if to.RankOf() > from.RankOf() {
		return from.RankOf() + 1
	}
	return from.RankOf() - 1
}

func castleRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case SqG1:
		return SqH1, SqF1
	case SqC1:
		return SqA1, SqD1
	case SqG8:
		return SqH8, SqF8
	case SqC8:
		return SqA8, SqD8
	default:
		panic("castleRookSquares: not a castle destination")
	}
}

// String renders the FEN followed by an ASCII board, for debugging.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString(p.Fen())
	sb.WriteString("\n")
	for r := Rank8; ; r-- {
		for f := FileA; f <= FileH; f++ {
			pc := p.pieceOn[SquareOf(f, r)]
			if pc == PieceNone {
				sb.WriteString(". ")
			} else {
				sb.WriteString(pc.String() + " ")
			}
		}
		sb.WriteString("\n")
		if r == Rank1 {
			break
		}
	}
	return sb.String()
}
