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

package transpositiontable

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/kestrel/internal/config"
	"github.com/frankkopp/kestrel/internal/position"
	. "github.com/frankkopp/kestrel/internal/types"
)

func TestMain(m *testing.M) {
	config.Setup()
	os.Exit(m.Run())
}

func TestNewAndResize(t *testing.T) {
	tt := New(1)
	assert.Equal(t, 1, tt.SizeMb())
	entries := len(tt.entries)
	assert.Equal(t, entries&(entries-1), 0, "entry count must be a power of two")

	tt.Resize(4)
	assert.Equal(t, 4, tt.SizeMb())
	assert.Equal(t, 4*entries, len(tt.entries))

	// out-of-range requests are clamped
	tt.Resize(0)
	assert.Equal(t, MinSizeMb, tt.SizeMb())
	tt.Resize(MaxSizeMb + 1)
	assert.Equal(t, MaxSizeMb, tt.SizeMb())
}

func TestProbeMissAndHit(t *testing.T) {
	tt := New(1)
	key := position.Key(0xDEADBEEF12345678)

	res := tt.Probe(key, -100, 100, 3)
	assert.False(t, res.Hit)

	move := NewMove(SqE2, SqE4, SpecialDoublePawnPush)
	tt.Record(key, 5, ValueTypeExact, 42, move)

	res = tt.Probe(key, -100, 100, 3)
	assert.True(t, res.Hit)
	assert.True(t, res.UseScore)
	assert.Equal(t, Value(42), res.Score)
	assert.Equal(t, move, res.Move)

	// a deeper request can only use the move as an ordering hint
	res = tt.Probe(key, -100, 100, 7)
	assert.True(t, res.Hit)
	assert.False(t, res.UseScore)
	assert.Equal(t, move, res.Move)
}

func TestProbeBoundKinds(t *testing.T) {
	tt := New(1)
	move := NewMove(SqG1, SqF3, SpecialQuiet)

	// Alpha entry (upper bound): usable only when score <= alpha
	keyA := position.Key(0x1111111111111111)
	tt.Record(keyA, 5, ValueTypeAlpha, 10, move)
	assert.True(t, tt.Probe(keyA, 20, 50, 5).UseScore)
	assert.False(t, tt.Probe(keyA, 5, 50, 5).UseScore)

	// Beta entry (lower bound): usable only when score >= beta
	keyB := position.Key(0x2222222222222222)
	tt.Record(keyB, 5, ValueTypeBeta, 80, move)
	assert.True(t, tt.Probe(keyB, 20, 50, 5).UseScore)
	assert.False(t, tt.Probe(keyB, 20, 100, 5).UseScore)

	// PV entries never license a cutoff, only the move hint
	keyP := position.Key(0x3333333333333333)
	tt.Record(keyP, 5, ValueTypePV, 30, move)
	res := tt.Probe(keyP, -100, 100, 3)
	assert.True(t, res.Hit)
	assert.False(t, res.UseScore)
	assert.Equal(t, move, res.Move)
}

func TestRecordReplacementPolicy(t *testing.T) {
	tt := New(1)
	key := position.Key(0x4444444444444444)
	deepMove := NewMove(SqE2, SqE4, SpecialDoublePawnPush)
	shallowMove := NewMove(SqD2, SqD4, SpecialDoublePawnPush)

	// same generation: a shallower record must not evict a deeper entry
	tt.Record(key, 8, ValueTypeExact, 50, deepMove)
	tt.Record(key, 3, ValueTypeExact, -10, shallowMove)
	res := tt.Probe(key, -100, 100, 3)
	assert.Equal(t, deepMove, res.Move)
	assert.Equal(t, Value(50), res.Score)

	// a new generation frees the slot for any depth
	tt.NewGeneration()
	tt.Record(key, 3, ValueTypeExact, -10, shallowMove)
	res = tt.Probe(key, -100, 100, 3)
	assert.Equal(t, shallowMove, res.Move)
	assert.Equal(t, Value(-10), res.Score)
}

func TestRecordPreservesMoveOnKeyChange(t *testing.T) {
	tt := New(1)
	// two keys that map to the same slot but differ in their low 16 bits
	keyA := position.Key(0)
	keyB := position.Key(1)
	assert.Equal(t, tt.indexOf(keyA), tt.indexOf(keyB))

	move := NewMove(SqE2, SqE4, SpecialDoublePawnPush)
	tt.Record(keyA, 3, ValueTypeExact, 10, move)

	// replacing with a different position and no move keeps the old move
	tt.NewGeneration()
	tt.Record(keyB, 2, ValueTypeBeta, 99, MoveEmpty)
	res := tt.Probe(keyB, -100, 100, 2)
	assert.True(t, res.Hit)
	assert.Equal(t, move, res.Move)
}

func TestPVProtection(t *testing.T) {
	tt := New(1)
	keyA := position.Key(0)
	keyB := position.Key(1)
	pvMove := NewMove(SqE2, SqE4, SpecialDoublePawnPush)

	tt.Record(keyA, 4, ValueTypeExact, 10, pvMove)
	tt.MarkPV(keyA)
	// MarkPV stamps the upcoming generation so the entry survives it
	tt.NewGeneration()

	// same generation, different position, deeper: the PV entry stays
	tt.Record(keyB, 9, ValueTypeExact, -5, NewMove(SqD2, SqD4, SpecialDoublePawnPush))
	res := tt.Probe(keyA, -100, 100, 0)
	assert.True(t, res.Hit)
	assert.Equal(t, pvMove, res.Move)
	assert.Equal(t, ValueTypePV, res.Kind)
}

func TestGenerationStep(t *testing.T) {
	tt := New(1)
	assert.EqualValues(t, 0, tt.Generation())
	tt.NewGeneration()
	assert.EqualValues(t, genStep, tt.Generation())
	// the low two bits stay clear for the packed node kind
	for i := 0; i < 100; i++ {
		tt.NewGeneration()
		assert.EqualValues(t, 0, tt.Generation()&kindMask)
	}
}

func TestClearAndHashfull(t *testing.T) {
	tt := New(1)
	assert.Equal(t, 0, tt.Hashfull())

	move := NewMove(SqE2, SqE4, SpecialDoublePawnPush)
	// fill some of the first slots of the current generation; indexOf uses
	// the high key bits, so spread keys across the top bits
	for i := 0; i < 100; i++ {
		key := position.Key(uint64(i) << tt.shift)
		tt.Record(key, 1, ValueTypeExact, 0, move)
	}
	assert.Equal(t, 100, tt.Hashfull())

	// entries of an older generation no longer count
	tt.NewGeneration()
	assert.Equal(t, 0, tt.Hashfull())

	tt.Clear()
	assert.Equal(t, 0, tt.Hashfull())
	assert.False(t, tt.Probe(position.Key(0), -100, 100, 0).Hit)
}
