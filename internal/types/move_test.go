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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovePacking(t *testing.T) {
	m := NewMove(SqE2, SqE4, SpecialDoublePawnPush)
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())
	assert.Equal(t, uint16(SpecialDoublePawnPush), m.Special())
	assert.True(t, m.IsDoublePawnPush())
	assert.False(t, m.IsCapture())
	assert.False(t, m.IsPromotion())
	assert.False(t, m.IsEmpty())

	assert.True(t, MoveEmpty.IsEmpty())
	assert.Equal(t, "0000", MoveEmpty.String())
}

func TestMoveKinds(t *testing.T) {
	assert.True(t, NewMove(SqE4, SqD5, SpecialCapture).IsCapture())
	assert.True(t, NewMove(SqE5, SqD6, SpecialEnPassant).IsCapture())
	assert.True(t, NewMove(SqE5, SqD6, SpecialEnPassant).IsEnPassant())
	assert.True(t, NewMove(SqE1, SqG1, SpecialKingCastle).IsCastle())
	assert.True(t, NewMove(SqE1, SqC1, SpecialQueenCastle).IsCastle())
	assert.False(t, NewMove(SqE1, SqE2, SpecialQuiet).IsCastle())
}

// Promotion piece order in the special nibble must be N=00, B=01, R=10,
// Q=11, capture adding the capture bit on top.
func TestPromotionEncoding(t *testing.T) {
	for _, tc := range []struct {
		pk      PieceKind
		capture bool
		special uint16
		str     string
	}{
		{Knight, false, SpecialPromoN, "e7e8n"},
		{Bishop, false, SpecialPromoB, "e7e8b"},
		{Rook, false, SpecialPromoR, "e7e8r"},
		{Queen, false, SpecialPromoQ, "e7e8q"},
		{Knight, true, SpecialPromoCaptureN, "e7e8n"},
		{Bishop, true, SpecialPromoCaptureB, "e7e8b"},
		{Rook, true, SpecialPromoCaptureR, "e7e8r"},
		{Queen, true, SpecialPromoCaptureQ, "e7e8q"},
	} {
		m := NewPromotion(SqE7, SqE8, tc.pk, tc.capture)
		assert.Equal(t, tc.special, m.Special())
		assert.True(t, m.IsPromotion())
		assert.Equal(t, tc.capture, m.IsCapture())
		assert.Equal(t, tc.pk, m.PromotionKind())
		assert.Equal(t, tc.str, m.String())
	}
}

func TestMoveString(t *testing.T) {
	assert.Equal(t, "e2e4", NewMove(SqE2, SqE4, SpecialDoublePawnPush).String())
	assert.Equal(t, "e1g1", NewMove(SqE1, SqG1, SpecialKingCastle).String())
	assert.Equal(t, "a7a8q", NewPromotion(SqA7, SqA8, Queen, false).String())
}

func TestPiece(t *testing.T) {
	assert.Equal(t, WKnight, MakePiece(White, Knight))
	assert.Equal(t, BQueen, MakePiece(Black, Queen))
	assert.Equal(t, White, WRook.Color())
	assert.Equal(t, Black, BRook.Color())
	assert.Equal(t, Rook, BRook.Kind())
	assert.Equal(t, "N", WKnight.String())
	assert.Equal(t, "n", BKnight.String())

	p, ok := PieceFromLetter('q')
	assert.True(t, ok)
	assert.Equal(t, BQueen, p)
	p, ok = PieceFromLetter('K')
	assert.True(t, ok)
	assert.Equal(t, WKing, p)
	_, ok = PieceFromLetter('x')
	assert.False(t, ok)
}

func TestSquare(t *testing.T) {
	assert.Equal(t, SqE4, MakeSquare("e4"))
	assert.Equal(t, SqA1, MakeSquare("a1"))
	assert.Equal(t, SqH8, MakeSquare("h8"))
	assert.Equal(t, SqNone, MakeSquare("i1"))
	assert.Equal(t, SqNone, MakeSquare("a9"))
	assert.Equal(t, SqNone, MakeSquare(""))
	assert.Equal(t, "e4", SqE4.String())
	assert.Equal(t, FileE, SqE4.FileOf())
	assert.Equal(t, Rank4, SqE4.RankOf())
	assert.Equal(t, SqE5, SqE4.To(North))
	assert.Equal(t, SqNone, SqH8.To(Northeast))
}

func TestValueMateHelpers(t *testing.T) {
	assert.Equal(t, MateValue, MateIn(0))
	assert.Equal(t, -MateValue, MatedIn(0))
	assert.True(t, IsMateScore(MateIn(3)))
	assert.True(t, IsMateScore(MatedIn(3)))
	assert.False(t, IsMateScore(ValueDraw))
	assert.False(t, IsMateScore(Value(500)))

	// plies to mate round up to full moves, negative when the engine is
	// the side being mated
	assert.Equal(t, 1, MatePlies(MateIn(1)))
	assert.Equal(t, 1, MatePlies(MateIn(2)))
	assert.Equal(t, 2, MatePlies(MateIn(3)))
	assert.Equal(t, 0, MatePlies(MatedIn(0)))
	assert.Equal(t, -1, MatePlies(MatedIn(2)))
}

func TestCastlingRights(t *testing.T) {
	assert.Equal(t, "KQkq", CastlingAll.String())
	assert.Equal(t, "-", CastlingNone.String())
	assert.Equal(t, CastlingAll, ParseCastlingRights("KQkq"))
	assert.Equal(t, CastlingBK|CastlingBQ, ParseCastlingRights("kq"))

	// moving or capturing on a corner/king square clears rights
	assert.Equal(t, CastlingAll&^(CastlingWK|CastlingWQ), CastlingMaskOf(SqE1))
	assert.Equal(t, CastlingAll&^CastlingWK, CastlingMaskOf(SqH1))
	assert.Equal(t, CastlingAll&^CastlingWQ, CastlingMaskOf(SqA1))
	assert.Equal(t, CastlingAll&^(CastlingBK|CastlingBQ), CastlingMaskOf(SqE8))
	assert.Equal(t, CastlingAll&^CastlingBK, CastlingMaskOf(SqH8))
	assert.Equal(t, CastlingAll&^CastlingBQ, CastlingMaskOf(SqA8))
	assert.Equal(t, CastlingAll, CastlingMaskOf(SqE4))
}
