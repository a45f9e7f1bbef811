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

package movegen

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/kestrel/internal/position"
)

var out = message.NewPrinter(language.English)

// Perft counts leaf nodes of the legal move tree to a fixed depth, plus a
// few per-category counters, to validate move generation against known
// reference counts.
type Perft struct {
	Nodes            uint64
	CaptureCounter   uint64
	EnpassantCounter uint64
	CastleCounter    uint64
	PromotionCounter uint64
	CheckCounter     uint64

	stopFlag bool
}

// NewPerft creates an empty Perft instance.
func NewPerft() *Perft {
	return &Perft{}
}

// Stop aborts an in-progress Run, e.g. when it was launched in a goroutine.
func (pf *Perft) Stop() { pf.stopFlag = true }

// Run performs a perft search from fen to depth and reports timing.
func (pf *Perft) Run(fen string, depth int) (uint64, error) {
	pf.stopFlag = false
	if depth < 1 {
		depth = 1
	}
	pf.reset()

	pos, err := position.NewPositionFromFen(fen)
	if err != nil {
		return 0, err
	}

	mgs := make([]*Movegen, depth+1)
	for i := range mgs {
		mgs[i] = New()
	}

	start := time.Now()
	nodes := pf.search(depth, pos, mgs)
	elapsed := time.Since(start)

	pf.Nodes = nodes
	out.Printf("perft depth %d nodes %d time %s nps %d\n", depth, nodes, elapsed, nps(nodes, elapsed))
	return nodes, nil
}

func nps(nodes uint64, d time.Duration) uint64 {
	ns := d.Nanoseconds()
	if ns == 0 {
		ns = 1
	}
	return uint64(int64(nodes) * time.Second.Nanoseconds() / ns)
}

func (pf *Perft) reset() {
	pf.Nodes = 0
	pf.CaptureCounter = 0
	pf.EnpassantCounter = 0
	pf.CastleCounter = 0
	pf.PromotionCounter = 0
	pf.CheckCounter = 0
}

func (pf *Perft) search(depth int, pos *position.Position, mgs []*Movegen) uint64 {
	if pf.stopFlag {
		return 0
	}
	mg := mgs[depth]
	moves := mg.GenerateLegal(pos, GenAll)

	if depth == 1 {
		for _, m := range moves {
			if m.IsCapture() {
				pf.CaptureCounter++
			}
			if m.IsEnPassant() {
				pf.EnpassantCounter++
			}
			if m.IsCastle() {
				pf.CastleCounter++
			}
			if m.IsPromotion() {
				pf.PromotionCounter++
			}
		}
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		pos.MakeMove(m)
		nodes += pf.search(depth-1, pos, mgs)
		pos.UndoMove(m)
	}
	return nodes
}
