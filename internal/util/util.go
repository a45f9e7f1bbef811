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

// Package util provides small helpers shared across the engine that the
// standard library doesn't give us directly.
package util

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var out = message.NewPrinter(language.English)

// Abs is a non-branching absolute value for int.
func Abs(n int) int {
	y := n >> 63
	return (n ^ y) - y
}

// Abs16 is a non-branching absolute value for int16.
func Abs16(n int16) int16 {
	y := n >> 15
	return (n ^ y) - y
}

// Min returns the smaller of x and y.
func Min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

// Max returns the bigger of x and y.
func Max(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// TimeTrack logs how long has elapsed since start. Usage:
// defer util.TimeTrack(time.Now(), "perft")
func TimeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	_, _ = out.Printf("%s took %s\n", name, elapsed)
}

// Nps computes nodes per second, nudging a zero duration to one nanosecond
// so a very fast search never divides by zero.
func Nps(nodes uint64, duration time.Duration) uint64 {
	ns := duration.Nanoseconds()
	if ns == 0 {
		ns = 1
	}
	return uint64(int64(nodes) * time.Second.Nanoseconds() / ns)
}

// MemStat renders current allocator and GC statistics for diagnostics.
func MemStat() string {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return out.Sprintf("Alloc: %d TotalAlloc: %d HeapAlloc: %d HeapObjects: %d NumGC: %d",
		mem.Alloc, mem.TotalAlloc, mem.HeapAlloc, mem.HeapObjects, mem.NumGC)
}

// GcWithStats forces a GC cycle and reports memory stats before and after.
func GcWithStats() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("before: %s ", MemStat()))
	start := time.Now()
	runtime.GC()
	sb.WriteString(fmt.Sprintf("GC took %s ", time.Since(start)))
	sb.WriteString(fmt.Sprintf("after: %s", MemStat()))
	return sb.String()
}

// IsDigit reports whether l is an ASCII digit.
func IsDigit(l byte) bool {
	return l >= '0' && l <= '9'
}
