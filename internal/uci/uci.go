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

// Package uci handles the UCI protocol communication between a chess user
// interface and the engine: it parses commands from an input stream, drives
// the search.Engine accordingly, and writes protocol responses to an output
// stream.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/kestrel/internal/config"
	myLogging "github.com/frankkopp/kestrel/internal/logging"
	"github.com/frankkopp/kestrel/internal/movegen"
	"github.com/frankkopp/kestrel/internal/position"
	"github.com/frankkopp/kestrel/internal/search"
	. "github.com/frankkopp/kestrel/internal/types"
	"github.com/frankkopp/kestrel/internal/util"
)

var out = message.NewPrinter(language.English)
var log *logging.Logger

// UciHandler reads UCI commands from InIo and answers on OutIo. Both can be
// replaced before Loop is called, which is how tests drive the handler with
// canned input and capture its output.
type UciHandler struct {
	InIo  *bufio.Scanner
	OutIo *bufio.Writer

	mg     *movegen.Movegen
	perft  *movegen.Perft
	engine *search.Engine
	uciLog *logging.Logger

	searching *util.Bool
	searchWg  sync.WaitGroup
}

// NewUciHandler creates a handler wired to stdin/stdout with a fresh engine.
func NewUciHandler() *UciHandler {
	if log == nil {
		log = myLogging.GetLog()
	}
	u := &UciHandler{
		InIo:      bufio.NewScanner(os.Stdin),
		OutIo:     bufio.NewWriter(os.Stdout),
		mg:        movegen.New(),
		perft:     movegen.NewPerft(),
		engine:    search.NewEngine(),
		uciLog:    myLogging.GetUciLog(),
		searching: util.NewBool(false),
	}
	u.engine.OnIteration = u.sendIterationEndInfo
	return u
}

// Loop reads and executes commands until "quit" is received or the input
// stream ends.
func (u *UciHandler) Loop() {
	for u.InIo.Scan() {
		if u.handleReceivedCommand(u.InIo.Text()) {
			break
		}
	}
	u.WaitWhileSearching()
}

// Command executes a single UCI command line and returns everything the
// handler wrote in response. Useful for debugging and unit tests; a "go"
// started through here should be followed by WaitWhileSearching before the
// caller inspects shared state.
func (u *UciHandler) Command(cmd string) string {
	tmp := u.OutIo
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)
	u.handleReceivedCommand(cmd)
	u.WaitWhileSearching()
	_ = u.OutIo.Flush()
	u.OutIo = tmp
	return buffer.String()
}

// WaitWhileSearching blocks until a search started by a "go" command has
// finished and its bestmove has been sent.
func (u *UciHandler) WaitWhileSearching() {
	u.searchWg.Wait()
}

var regexWhiteSpace = regexp.MustCompile(`\s+`)

// handleReceivedCommand dispatches one command line. Returns true when the
// loop should terminate (the "quit" command).
func (u *UciHandler) handleReceivedCommand(cmd string) bool {
	cmd = strings.TrimSpace(cmd)
	if len(cmd) == 0 {
		return false
	}
	log.Debugf("received command: %s", cmd)
	u.uciLog.Infof("<< %s", cmd)
	tokens := regexWhiteSpace.Split(cmd, -1)
	switch tokens[0] {
	case "quit":
		u.engine.Stop()
		u.perft.Stop()
		return true
	case "uci":
		u.uciCommand()
	case "setoption":
		u.setOptionCommand(tokens)
	case "isready":
		u.send("readyok")
	case "ucinewgame":
		u.uciNewGameCommand()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.stopCommand()
	case "perft":
		u.perftCommand(tokens)
	case "noop":
	default:
		u.sendInfoString(out.Sprintf("unknown command: %s", cmd))
	}
	return false
}

func (u *UciHandler) uciCommand() {
	u.send("id name Kestrel")
	u.send("id author Frank Kopp, Germany")
	for _, o := range uciOptions.GetOptions() {
		u.send(o)
	}
	u.send("uciok")
}

// setOptionCommand reads "setoption name <name> [value <value>]", looks the
// option up and runs its handler with the new value.
func (u *UciHandler) setOptionCommand(tokens []string) {
	if len(tokens) < 3 || tokens[1] != "name" {
		u.sendInfoString("command 'setoption' is malformed")
		return
	}
	name := ""
	i := 2
	for i < len(tokens) && tokens[i] != "value" {
		name += tokens[i] + " "
		i++
	}
	name = strings.TrimSpace(name)
	value := ""
	if i+1 < len(tokens) && tokens[i] == "value" {
		value = tokens[i+1]
	}
	o, found := uciOptions[name]
	if !found {
		u.sendInfoString(out.Sprintf("command 'setoption': no such option %q", name))
		return
	}
	o.CurrentValue = value
	o.HandlerFunc(u, o)
}

func (u *UciHandler) uciNewGameCommand() {
	u.WaitWhileSearching()
	u.engine.NewGame()
}

// positionCommand loads a position ("startpos" or "fen ...") and plays the
// optional move list onto it. An unparseable FEN or an illegal move aborts
// the command with a message and leaves the remaining moves unprocessed.
func (u *UciHandler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		u.sendInfoString(out.Sprintf("command 'position' malformed: %s", tokens))
		return
	}
	fen := position.StartFen
	i := 1
	switch tokens[i] {
	case "startpos":
		i++
	case "fen":
		i++
		var fenb strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			fenb.WriteString(tokens[i])
			fenb.WriteString(" ")
			i++
		}
		fen = strings.TrimSpace(fenb.String())
		if len(fen) == 0 {
			u.sendInfoString(out.Sprintf("command 'position' malformed: %s", tokens))
			return
		}
	default:
		u.sendInfoString(out.Sprintf("command 'position' malformed: %s", tokens))
		return
	}

	p, err := position.NewPositionFromFen(fen)
	if err != nil {
		u.sendInfoString(out.Sprintf("command 'position': %s", err))
		return
	}

	if i < len(tokens) {
		if tokens[i] != "moves" {
			u.sendInfoString(out.Sprintf("command 'position' malformed moves: %s", tokens))
			return
		}
		i++
		for ; i < len(tokens); i++ {
			move := u.mg.MoveFromUci(p, tokens[i])
			if move.IsEmpty() {
				u.sendInfoString(out.Sprintf("command 'position': invalid or illegal move %q", tokens[i]))
				return
			}
			p.MakeMove(move)
		}
	}

	u.WaitWhileSearching()
	u.engine.SetPosition(p)
	log.Debugf("new position: %s", p.Fen())
}

// goCommand parses the search limits and starts the search in the
// background; the result is sent as "bestmove" when the search returns.
// "go perft D" runs a perft instead of a search.
func (u *UciHandler) goCommand(tokens []string) {
	if len(tokens) > 1 && tokens[1] == "perft" {
		u.perftCommand(tokens[1:])
		return
	}
	limits, ok := u.readSearchLimits(tokens)
	if !ok {
		return
	}
	if !u.searching.CAS(false, true) {
		u.sendInfoString("already searching")
		return
	}
	u.searchWg.Add(1)
	go func() {
		defer u.searchWg.Done()
		defer u.searching.Store(false)
		result := u.engine.Search(limits)
		u.sendResult(result)
	}()
}

func (u *UciHandler) stopCommand() {
	u.engine.Stop()
	u.perft.Stop()
	u.WaitWhileSearching()
}

func (u *UciHandler) perftCommand(tokens []string) {
	depth := 4
	if len(tokens) > 1 {
		d, err := strconv.Atoi(tokens[1])
		if err != nil {
			u.sendInfoString(out.Sprintf("can't perft on depth %q", tokens[1]))
			return
		}
		depth = d
	}
	fen := u.engine.Position().Fen()
	u.searchWg.Add(1)
	go func() {
		defer u.searchWg.Done()
		nodes, err := u.perft.Run(fen, depth)
		if err != nil {
			u.sendInfoString(out.Sprintf("perft failed: %s", err))
			return
		}
		u.sendInfoString(out.Sprintf("perft depth %d nodes %d", depth, nodes))
	}()
}

// readSearchLimits translates the tokens of a "go" command into Limits.
// ok=false means the command was malformed and an info string was sent.
func (u *UciHandler) readSearchLimits(tokens []string) (search.Limits, bool) {
	limits := search.NewLimits()
	millis := func(s string) (time.Duration, error) {
		n, err := strconv.ParseInt(s, 10, 64)
		return time.Duration(n) * time.Millisecond, err
	}
	i := 1
	for i < len(tokens) {
		var err error
		switch tokens[i] {
		case "infinite":
			limits.Infinite = true
			i++
		case "depth":
			i++
			if i >= len(tokens) {
				err = fmt.Errorf("missing value")
				break
			}
			limits.Depth, err = strconv.Atoi(tokens[i])
			i++
		case "nodes":
			i++
			if i >= len(tokens) {
				err = fmt.Errorf("missing value")
				break
			}
			var n int64
			n, err = strconv.ParseInt(tokens[i], 10, 64)
			limits.Nodes = uint64(n)
			i++
		case "movetime":
			i++
			if i >= len(tokens) {
				err = fmt.Errorf("missing value")
				break
			}
			limits.MoveTime, err = millis(tokens[i])
			i++
		case "wtime":
			i++
			if i >= len(tokens) {
				err = fmt.Errorf("missing value")
				break
			}
			limits.WhiteTime, err = millis(tokens[i])
			i++
		case "btime":
			i++
			if i >= len(tokens) {
				err = fmt.Errorf("missing value")
				break
			}
			limits.BlackTime, err = millis(tokens[i])
			i++
		case "winc":
			i++
			if i >= len(tokens) {
				err = fmt.Errorf("missing value")
				break
			}
			limits.WhiteInc, err = millis(tokens[i])
			i++
		case "binc":
			i++
			if i >= len(tokens) {
				err = fmt.Errorf("missing value")
				break
			}
			limits.BlackInc, err = millis(tokens[i])
			i++
		case "movestogo":
			i++
			if i >= len(tokens) {
				err = fmt.Errorf("missing value")
				break
			}
			limits.MovesToGo, err = strconv.Atoi(tokens[i])
			i++
		default:
			err = fmt.Errorf("invalid subcommand %q", tokens[i])
		}
		if err != nil {
			u.sendInfoString(out.Sprintf("command 'go' malformed: %s", err))
			return limits, false
		}
	}

	haveTimeControl := limits.MoveTime > 0 || limits.WhiteTime > 0 || limits.BlackTime > 0
	if !(limits.Infinite || limits.Depth > 0 || limits.Nodes > 0 || haveTimeControl) {
		u.sendInfoString(out.Sprintf("command 'go' has no effective limits: %s", tokens))
		return limits, false
	}
	if haveTimeControl && limits.MoveTime == 0 {
		us := u.engine.Position().SideToMove()
		if (us == White && limits.WhiteTime == 0) || (us == Black && limits.BlackTime == 0) {
			u.sendInfoString(out.Sprintf("command 'go' invalid: %s to move but its time is zero", us))
			return limits, false
		}
	}
	return limits, true
}

// sendIterationEndInfo emits the per-iteration "info" line required by the
// protocol, wired as the engine's OnIteration callback.
func (u *UciHandler) sendIterationEndInfo(r search.Result) {
	u.send(fmt.Sprintf("info depth %d score %s nodes %d nps %d hashfull %d time %d pv %s",
		r.Depth, scoreString(r.Score), r.Nodes, util.Nps(r.Nodes, r.Time),
		u.engine.Hashfull(), r.Time.Milliseconds(), pvString(r.PV)))
}

// sendResult emits "bestmove". A search that produced no result (no legal
// moves, or canceled before depth 1 completed) still answers: any legal
// move if one exists, the UCI null move "0000" otherwise.
func (u *UciHandler) sendResult(r search.Result) {
	best := r.BestMove
	if best.IsEmpty() {
		if moves := u.mg.GenerateLegal(u.engine.Position(), movegen.GenAll); len(moves) > 0 {
			best = moves[0]
		}
	}
	var sb strings.Builder
	sb.WriteString("bestmove ")
	sb.WriteString(best.String())
	if config.Settings.Search.UsePonder && !r.Ponder.IsEmpty() {
		sb.WriteString(" ponder ")
		sb.WriteString(r.Ponder.String())
	}
	u.send(sb.String())
}

// scoreString renders a search score the way the protocol wants it:
// "cp N" for a centipawn score, "mate N" for a forced mate (negative N if
// the engine is the one being mated).
func scoreString(v Value) string {
	if IsMateScore(v) {
		return fmt.Sprintf("mate %d", MatePlies(v))
	}
	return fmt.Sprintf("cp %d", v)
}

func pvString(pv []Move) string {
	if len(pv) == 0 {
		return MoveEmpty.String()
	}
	parts := make([]string, len(pv))
	for i, m := range pv {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

func (u *UciHandler) sendInfoString(s string) {
	log.Warning(s)
	u.send(out.Sprintf("info string %s", s))
}

func (u *UciHandler) send(s string) {
	u.uciLog.Infof(">> %s", s)
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
}
