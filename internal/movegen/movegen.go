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

// Package movegen generates legal moves for a position in a single pass: no
// move is ever produced, made, and thrown away to test legality. A check
// mask and per-square pin masks are computed once per call and every piece's
// candidate destinations are intersected against them, so the result is
// legal by construction. Two output modes exist: the full move set, and a
// captures-and-promotions-only set used by quiescence search.
package movegen

import (
	"github.com/op/go-logging"

	myLogging "github.com/frankkopp/kestrel/internal/logging"
	"github.com/frankkopp/kestrel/internal/position"
	. "github.com/frankkopp/kestrel/internal/types"
)

var log *logging.Logger

// GenMode selects which subset of moves to generate.
type GenMode int

const (
	GenCap    GenMode = 0b01
	GenNonCap GenMode = 0b10
	GenAll    GenMode = GenCap | GenNonCap
)

// MaxMoves is the proven upper bound on legal moves in any reachable chess
// position, used to preallocate generation buffers.
const MaxMoves = 218

// Movegen generates moves for a position. All of its state is scratch
// buffers recomputed at the start of every call, so one instance can be
// reused across an entire search without aliasing between positions.
type Movegen struct {
	buf []Move

	checkMask    Bitboard
	checkers     int
	pinMask      [SqLength]Bitboard // defaults to BbAll (unpinned)
	pawnAttacked Bitboard           // union of opponent pawn attacks, for cheap king/castle safety checks
}

// New creates a move generator ready for use.
func New() *Movegen {
	if log == nil {
		log = myLogging.GetLog()
	}
	return &Movegen{buf: make([]Move, 0, MaxMoves)}
}

// GenerateLegal returns every legal move matching mode for the side to move.
// GenAll produces the full legal move set; GenCap restricts it to captures,
// en passant, and promotions (quiescence search's diet). The returned slice
// aliases the generator's internal buffer and is only valid until the next
// call on the same instance; search holds one Movegen per ply for this
// reason.
func (mg *Movegen) GenerateLegal(p *position.Position, mode GenMode) []Move {
	mg.buf = mg.buf[:0]
	us := p.SideToMove()
	them := us.Flip()
	kingSq := p.KingSquare(us)

	mg.computeCheckMask(p, us, them, kingSq)
	mg.computePinMasks(p, us, them, kingSq)

	mg.generateKingMoves(p, us, them, kingSq, mode)
	if mg.checkers < 2 {
		mg.generatePawnMoves(p, us, them, mode)
		mg.generatePieceMoves(p, us, Knight, mode)
		mg.generatePieceMoves(p, us, Bishop, mode)
		mg.generatePieceMoves(p, us, Rook, mode)
		mg.generatePieceMoves(p, us, Queen, mode)
		if mg.checkers == 0 && mode&GenNonCap != 0 {
			mg.generateCastling(p, us, them)
		}
	}

	return mg.buf
}

// HasLegalMove reports whether the side to move has at least one legal
// move.
func (mg *Movegen) HasLegalMove(p *position.Position) bool {
	return len(mg.GenerateLegal(p, GenAll)) > 0
}

// MoveFromUci resolves a move given in UCI long algebraic notation (e.g.
// "e2e4", "e7e8q") against the legal moves of p. Returns MoveEmpty if the
// string doesn't name a legal move in this position.
func (mg *Movegen) MoveFromUci(p *position.Position, s string) Move {
	if len(s) < 4 || len(s) > 5 {
		return MoveEmpty
	}
	for _, m := range mg.GenerateLegal(p, GenAll) {
		if m.String() == s {
			return m
		}
	}
	return MoveEmpty
}

func (mg *Movegen) add(m Move) { mg.buf = append(mg.buf, m) }

// ///////////////////////////////////////////////////////////////////////
// Check mask, king ban, and pin masks
// ///////////////////////////////////////////////////////////////////////

// computeCheckMask finds every checker of the side-to-move's king and
// derives checkMask: the set of squares a non-king move may land on to
// resolve check. BbAll if not in check, a single checker's square (or the
// ray between king and a slider checker, inclusive) if in check once, and
// BbZero (only king moves legal) if in check by two pieces at once.
func (mg *Movegen) computeCheckMask(p *position.Position, us, them Color, kingSq Square) {
	occ := p.AnyPiece()
	mg.checkMask = BbAll
	mg.checkers = 0

	note := func(attackers Bitboard, single func(Square) Bitboard) {
		for a := attackers; a != BbZero; {
			sq := a.PopLsb()
			mg.checkers++
			if mg.checkers == 1 {
				mg.checkMask = single(sq)
			} else {
				mg.checkMask = BbZero
			}
		}
	}

	note(PawnAttacks(us, kingSq)&p.PiecesOf(them, Pawn), func(sq Square) Bitboard { return sq.Bb() })
	note(PseudoAttacks(Knight, kingSq)&p.PiecesOf(them, Knight), func(sq Square) Bitboard { return sq.Bb() })
	note(GetAttacksBb(Rook, kingSq, occ)&p.HVSlider(them), func(sq Square) Bitboard { return Between(kingSq, sq) | sq.Bb() })
	note(GetAttacksBb(Bishop, kingSq, occ)&p.DSlider(them), func(sq Square) Bitboard { return Between(kingSq, sq) | sq.Bb() })

	if mg.checkers >= 2 {
		mg.checkMask = BbZero
	}

	mg.pawnAttacked = BbZero
	for pawns := p.PiecesOf(them, Pawn); pawns != BbZero; {
		mg.pawnAttacked |= PawnAttacks(them, pawns.PopLsb())
	}
}

// computePinMasks finds every own piece pinned to the king by an opposing
// HV- or D-slider via the classic xray technique: cast a ray from the king,
// strip off the first blocker if it is one of ours, and see whether the ray
// then reaches an enemy slider of the matching orientation. pinMask[sq]
// defaults to BbAll (unpinned); a pinned piece's entry is narrowed to the
// line between the king and its pinner, inclusive of the pinner's square so
// capturing it is still recognized as legal.
func (mg *Movegen) computePinMasks(p *position.Position, us, them Color, kingSq Square) {
	for sq := SqA1; sq < SqNone; sq++ {
		mg.pinMask[sq] = BbAll
	}

	own := p.Any(us)
	occ := p.AnyPiece()

	xray := func(pk PieceKind, slider Bitboard) {
		direct := GetAttacksBb(pk, kingSq, occ)
		throughOwn := GetAttacksBb(pk, kingSq, occ&^(direct&own))
		for pinners := (throughOwn &^ direct) & slider; pinners != BbZero; {
			pinnerSq := pinners.PopLsb()
			line := Between(kingSq, pinnerSq) | pinnerSq.Bb()
			if pinnedSq := (line &^ pinnerSq.Bb()) & own; pinnedSq != BbZero {
				mg.pinMask[pinnedSq.Lsb()] = line
			}
		}
	}
	xray(Rook, p.HVSlider(them))
	xray(Bishop, p.DSlider(them))
}

// attackedExceptPawn reports whether sq is attacked by any opposing knight,
// king, or slider, using occ as the blocker set (callers pass occupancy with
// the defending king removed so rays correctly extend through/behind it).
// Pawn attacks are handled separately via the precomputed pawnAttacked
// bitboard; see computeCheckMask.
func attackedExceptPawn(p *position.Position, sq Square, them Color, occ Bitboard) bool {
	if PseudoAttacks(Knight, sq)&p.PiecesOf(them, Knight) != 0 {
		return true
	}
	if PseudoAttacks(King, sq)&p.PiecesOf(them, King) != 0 {
		return true
	}
	if GetAttacksBb(Rook, sq, occ)&p.HVSlider(them) != 0 {
		return true
	}
	if GetAttacksBb(Bishop, sq, occ)&p.DSlider(them) != 0 {
		return true
	}
	return false
}

func (mg *Movegen) squareSafe(p *position.Position, sq Square, them Color, occ Bitboard) bool {
	return !mg.pawnAttacked.Has(sq) && !attackedExceptPawn(p, sq, them, occ)
}

// ///////////////////////////////////////////////////////////////////////
// Piece move generation
// ///////////////////////////////////////////////////////////////////////

func (mg *Movegen) generatePawnMoves(p *position.Position, us, them Color, mode GenMode) {
	pawn := MakePiece(us, Pawn)
	pawns := p.PieceBb(pawn)
	theirs := p.Any(them)
	occupied := p.AnyPiece()
	push := Direction(us.Sign()) * Direction(North)
	startRank, promoRank := Rank2Bb, Rank8Bb
	if us == Black {
		startRank, promoRank = Rank7Bb, Rank1Bb
	}

	if mode&GenCap != 0 {
		for _, capDir := range [2]Direction{push + West, push + East} {
			targets := ShiftBitboard(pawns, capDir) & theirs & mg.checkMask
			for targets != BbZero {
				to := targets.PopLsb()
				from := to.To(-capDir)
				if mg.pinMask[from].Has(to) {
					mg.addPawnMove(from, to, promoRank, true)
				}
			}
		}
		if p.EpSquare() != SqNone {
			mg.generateEnPassant(p, us, them, push)
		}
		// Quiet promotions count as forcing moves: capture-only mode keeps
		// them even though they are pushes.
		if mode&GenNonCap == 0 {
			promoPushes := ShiftBitboard(pawns, push) &^ occupied & promoRank
			for s := promoPushes; s != BbZero; {
				to := s.PopLsb()
				from := to.To(-push)
				if mg.checkMask.Has(to) && mg.pinMask[from].Has(to) {
					mg.addPawnMove(from, to, promoRank, false)
				}
			}
		}
	}

	if mode&GenNonCap != 0 {
		single := ShiftBitboard(pawns, push) &^ occupied
		for s := single; s != BbZero; {
			to := s.PopLsb()
			from := to.To(-push)
			if mg.checkMask.Has(to) && mg.pinMask[from].Has(to) {
				mg.addPawnMove(from, to, promoRank, false)
			}
		}
		fromDouble := pawns & startRank
		firstStep := ShiftBitboard(fromDouble, push) &^ occupied
		doubleTargets := ShiftBitboard(firstStep, push) &^ occupied & mg.checkMask
		for d := doubleTargets; d != BbZero; {
			to := d.PopLsb()
			from := to.To(-push).To(-push)
			if mg.pinMask[from].Has(to) {
				mg.add(NewMove(from, to, SpecialDoublePawnPush))
			}
		}
	}
}

// generateEnPassant handles the one pawn-capture variant that the uniform
// pin-mask/check-mask intersection can't cover on its own: the captured
// pawn doesn't sit on the destination square, so resolving a pawn check via
// en passant has to compare against the captured square, and the famous
// "horizontal pin" (both pawns vanishing from the same rank exposes the king
// to a rook/queen along that rank) needs its own occupancy probe.
func (mg *Movegen) generateEnPassant(p *position.Position, us, them Color, push Direction) {
	epSq := p.EpSquare()
	epBb := epSq.Bb()
	pawns := p.PieceBb(MakePiece(us, Pawn))

	for _, capDir := range [2]Direction{push + West, push + East} {
		fromBb := ShiftBitboard(epBb, -capDir) & pawns
		if fromBb == BbZero {
			continue
		}
		from := fromBb.Lsb()
		capSq := SquareOf(epSq.FileOf(), from.RankOf())
		if !mg.checkMask.Has(capSq) && !mg.checkMask.Has(epSq) {
			continue
		}
		if !mg.pinMask[from].Has(epSq) {
			continue
		}
		if mg.enPassantExposesKing(p, us, them, from, epSq, capSq) {
			continue
		}
		mg.add(NewMove(from, epSq, SpecialEnPassant))
	}
}

func (mg *Movegen) enPassantExposesKing(p *position.Position, us, them Color, from, to, capSq Square) bool {
	kingSq := p.KingSquare(us)
	occ := p.AnyPiece() &^ from.Bb() &^ capSq.Bb() | to.Bb()
	return GetAttacksBb(Rook, kingSq, occ)&p.HVSlider(them) != 0
}

func (mg *Movegen) addPawnMove(from, to Square, promoRank Bitboard, capture bool) {
	if to.Bb()&promoRank != 0 {
		for _, pk := range [4]PieceKind{Queen, Rook, Bishop, Knight} {
			mg.add(NewPromotion(from, to, pk, capture))
		}
		return
	}
	special := uint16(SpecialQuiet)
	if capture {
		special = SpecialCapture
	}
	mg.add(NewMove(from, to, special))
}

func (mg *Movegen) generatePieceMoves(p *position.Position, us Color, pk PieceKind, mode GenMode) {
	pieces := p.PieceBb(MakePiece(us, pk))
	own := p.Any(us)
	them := p.Any(us.Flip())
	occupied := p.AnyPiece()
	for pcs := pieces; pcs != BbZero; {
		from := pcs.PopLsb()
		attacks := GetAttacksBb(pk, from, occupied) &^ own & mg.checkMask & mg.pinMask[from]
		if mode&GenCap != 0 {
			for caps := attacks & them; caps != BbZero; {
				mg.add(NewMove(from, caps.PopLsb(), SpecialCapture))
			}
		}
		if mode&GenNonCap != 0 {
			for quiet := attacks &^ them; quiet != BbZero; {
				mg.add(NewMove(from, quiet.PopLsb(), SpecialQuiet))
			}
		}
	}
}

func (mg *Movegen) generateKingMoves(p *position.Position, us, them Color, from Square, mode GenMode) {
	own := p.Any(us)
	theirs := p.Any(them)
	occNoKing := p.AnyPiece() &^ from.Bb()
	candidates := PseudoAttacks(King, from) &^ own
	for c := candidates; c != BbZero; {
		to := c.PopLsb()
		if !mg.squareSafe(p, to, them, occNoKing) {
			continue
		}
		if theirs.Has(to) {
			if mode&GenCap != 0 {
				mg.add(NewMove(from, to, SpecialCapture))
			}
		} else if mode&GenNonCap != 0 {
			mg.add(NewMove(from, to, SpecialQuiet))
		}
	}
}

func (mg *Movegen) generateCastling(p *position.Position, us, them Color) {
	occ := p.AnyPiece()
	rights := p.Castling()
	kingSq := p.KingSquare(us)
	occNoKing := occ &^ kingSq.Bb()

	tryCastle := func(right CastlingRights, empty Bitboard, kingTo Square) {
		if rights&right == 0 || occ&empty != 0 {
			return
		}
		if !mg.squareSafe(p, kingSq, them, occNoKing) {
			return
		}
		for path := Between(kingSq, kingTo); path != BbZero; {
			if !mg.squareSafe(p, path.PopLsb(), them, occNoKing) {
				return
			}
		}
		if !mg.squareSafe(p, kingTo, them, occNoKing) {
			return
		}
		special := uint16(SpecialQueenCastle)
		if kingTo > kingSq {
			special = SpecialKingCastle
		}
		mg.add(NewMove(kingSq, kingTo, special))
	}

	if us == White {
		tryCastle(CastlingWK, SqF1.Bb()|SqG1.Bb(), SqG1)
		tryCastle(CastlingWQ, SqB1.Bb()|SqC1.Bb()|SqD1.Bb(), SqC1)
		return
	}
	tryCastle(CastlingBK, SqF8.Bb()|SqG8.Bb(), SqG8)
	tryCastle(CastlingBQ, SqB8.Bb()|SqC8.Bb()|SqD8.Bb(), SqC8)
}
