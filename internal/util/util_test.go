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

package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAbsMinMax(t *testing.T) {
	assert.Equal(t, 5, Abs(-5))
	assert.Equal(t, 5, Abs(5))
	assert.Equal(t, 0, Abs(0))
	assert.Equal(t, int16(7), Abs16(-7))
	assert.Equal(t, 3, Min(3, 9))
	assert.Equal(t, 9, Max(3, 9))
}

func TestNps(t *testing.T) {
	assert.EqualValues(t, 1_000_000, Nps(1_000_000, time.Second))
	// a zero duration must not divide by zero
	assert.NotPanics(t, func() { Nps(100, 0) })
}

func TestBool(t *testing.T) {
	b := NewBool(false)
	assert.False(t, b.Load())
	b.Store(true)
	assert.True(t, b.Load())
	assert.True(t, b.CAS(true, false))
	assert.False(t, b.Load())
	assert.False(t, b.CAS(true, false))
	assert.False(t, b.Swap(true))
	assert.True(t, b.Load())
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present.toml")
	assert.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	// absolute path that exists
	got, err := ResolveFile(file)
	assert.NoError(t, err)
	assert.Equal(t, file, got)

	// absolute path that doesn't
	_, err = ResolveFile(filepath.Join(dir, "absent.toml"))
	assert.Error(t, err)

	// relative path resolved against the working directory
	wd, _ := os.Getwd()
	rel := filepath.Join(wd, "util.go")
	got, err = ResolveFile("util.go")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Clean(rel), got)
}
