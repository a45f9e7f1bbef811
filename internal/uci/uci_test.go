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

package uci

import (
	"bufio"
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	logging2 "github.com/op/go-logging"
	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/kestrel/internal/config"
	myLogging "github.com/frankkopp/kestrel/internal/logging"
	"github.com/frankkopp/kestrel/internal/position"
	. "github.com/frankkopp/kestrel/internal/types"
)

var logTest *logging2.Logger

func TestMain(m *testing.M) {
	config.Setup()
	logTest = myLogging.GetTestLog()
	logTest.Info("uci test setup complete")
	os.Exit(m.Run())
}

func TestUciCommand(t *testing.T) {
	u := NewUciHandler()
	result := u.Command("uci")
	assert.Contains(t, result, "id name Kestrel")
	assert.Contains(t, result, "option name Hash type spin default 16 min 1 max 1024")
	assert.Contains(t, result, "uciok")
}

func TestIsReadyCommand(t *testing.T) {
	u := NewUciHandler()
	assert.Contains(t, u.Command("isready"), "readyok")
}

func TestLoop(t *testing.T) {
	u := NewUciHandler()
	u.InIo = bufio.NewScanner(strings.NewReader("uci\nisready\nquit\n"))
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)
	u.Loop()
	result := buffer.String()
	assert.Contains(t, result, "uciok")
	assert.Contains(t, result, "readyok")
}

func TestPositionCommand(t *testing.T) {
	u := NewUciHandler()

	u.Command("position startpos")
	assert.Equal(t, position.StartFen, u.engine.Position().Fen())

	u.Command("position fen " + position.StartFen)
	assert.Equal(t, position.StartFen, u.engine.Position().Fen())

	u.Command("position startpos moves e2e4 e7e5 g1f3 b8c6")
	assert.Equal(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		u.engine.Position().Fen())

	result := u.Command("position fen")
	assert.Contains(t, result, "info string")

	result = u.Command("position")
	assert.Contains(t, result, "info string")

	// an illegal move aborts with a message and leaves the rest unplayed
	u.Command("position startpos")
	result = u.Command("position startpos moves e2e4 e2e4 d7d5")
	assert.Contains(t, result, "invalid or illegal move")

	result = u.Command("position fen not/even/a/fen w - - 0 1")
	assert.Contains(t, result, "info string")
	// the prior position is untouched by the failed load
	assert.Equal(t, position.StartFen, u.engine.Position().Fen())
}

func TestSetOptionCommand(t *testing.T) {
	u := NewUciHandler()

	u.Command("setoption name Hash value 32")
	assert.Equal(t, 32, u.engine.HashSizeMb())

	result := u.Command("setoption name NoSuchOption value 1")
	assert.Contains(t, result, "no such option")

	result = u.Command("setoption malformed")
	assert.Contains(t, result, "malformed")

	result = u.Command("setoption name Hash value notanumber")
	assert.Contains(t, result, "invalid value")
}

func TestGoDepthCommand(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos")
	result := u.Command("go depth 3")
	assert.Contains(t, result, "info depth 3")
	assert.Contains(t, result, " pv ")
	assert.Contains(t, result, "bestmove ")
}

func TestGoMovetimeCommand(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos moves e2e4")
	result := u.Command("go movetime 200")
	assert.Contains(t, result, "bestmove ")
	assert.Contains(t, result, "score cp ")
}

func TestGoMateOutput(t *testing.T) {
	u := NewUciHandler()
	u.Command("position fen 6k1/5ppp/8/8/8/8/5PPP/R6K w - - 0 1")
	result := u.Command("go depth 2")
	assert.Contains(t, result, "score mate 1")
	assert.Contains(t, result, "bestmove a1a8")
}

func TestGoMalformed(t *testing.T) {
	u := NewUciHandler()
	assert.Contains(t, u.Command("go depth x"), "info string")
	assert.Contains(t, u.Command("go banana"), "info string")
	assert.Contains(t, u.Command("go"), "no effective limits")
	assert.Contains(t, u.Command("go wtime 0"), "info string")
}

func TestStopCommand(t *testing.T) {
	u := NewUciHandler()
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)

	u.handleReceivedCommand("position startpos")
	u.handleReceivedCommand("go infinite")
	time.Sleep(100 * time.Millisecond)
	u.handleReceivedCommand("stop")
	u.WaitWhileSearching()
	assert.Contains(t, buffer.String(), "bestmove ")
}

func TestUciNewGameCommand(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos moves e2e4")
	u.Command("ucinewgame")
	assert.Equal(t, position.StartFen, u.engine.Position().Fen())
}

func TestUnknownCommand(t *testing.T) {
	u := NewUciHandler()
	assert.Contains(t, u.Command("frobnicate"), "unknown command")
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "cp 42", scoreString(42))
	assert.Equal(t, "cp -100", scoreString(-100))
	assert.Equal(t, "mate 1", scoreString(MateIn(1)))
	assert.Equal(t, "mate 2", scoreString(MateIn(3)))
	assert.Equal(t, "mate -1", scoreString(MatedIn(2)))
}

func TestPerftCommand(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos")
	result := u.Command("go perft 3")
	assert.Contains(t, result, "nodes 8,902")
}
