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
	"sort"
	"strconv"
	"strings"

	"github.com/frankkopp/kestrel/internal/config"
	"github.com/frankkopp/kestrel/internal/transpositiontable"
)

// init defines the available uci options and stores them in the uciOptions
// map.
func init() {
	uciOptions = optionMap{
		"Hash": {
			NameID:       "Hash",
			HandlerFunc:  hashSize,
			OptionType:   Spin,
			DefaultValue: strconv.Itoa(transpositiontable.DefaultSizeMb),
			MinValue:     strconv.Itoa(transpositiontable.MinSizeMb),
			MaxValue:     strconv.Itoa(transpositiontable.MaxSizeMb),
		},
		"Clear Hash": {
			NameID:      "Clear Hash",
			HandlerFunc: clearHash,
			OptionType:  Button,
		},
	}
}

// GetOptions returns the "option name ..." declaration of every option, in
// stable name order, for the "uci" handshake.
func (m optionMap) GetOptions() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	options := make([]string, 0, len(m))
	for _, name := range names {
		options = append(options, m[name].String())
	}
	return options
}

// String renders the option declaration as required by the UCI protocol
// during the initialization handshake.
func (o *uciOption) String() string {
	var os strings.Builder
	os.WriteString("option name ")
	os.WriteString(o.NameID)
	os.WriteString(" type ")
	switch o.OptionType {
	case Check:
		os.WriteString("check default ")
		os.WriteString(o.DefaultValue)
	case Spin:
		os.WriteString("spin default ")
		os.WriteString(o.DefaultValue)
		os.WriteString(" min ")
		os.WriteString(o.MinValue)
		os.WriteString(" max ")
		os.WriteString(o.MaxValue)
	case Button:
		os.WriteString("button")
	case String:
		os.WriteString("string default ")
		os.WriteString(o.DefaultValue)
	}
	return os.String()
}

// uciOptionType enumerates the UCI option types.
type uciOptionType int

const (
	Check uciOptionType = iota
	Spin
	Button
	String
)

// optionHandler is called when "setoption" changes the option's value.
type optionHandler func(*UciHandler, *uciOption)

// uciOption describes one UCI option and how to apply a change to it.
type uciOption struct {
	NameID       string
	HandlerFunc  optionHandler
	OptionType   uciOptionType
	DefaultValue string
	MinValue     string
	MaxValue     string
	CurrentValue string
}

type optionMap map[string]*uciOption

// uciOptions stores all available uci options.
var uciOptions optionMap

// ////////////////////////////////////////////////////////////////
// Handlers for uci option changes
// ////////////////////////////////////////////////////////////////

func hashSize(u *UciHandler, o *uciOption) {
	sizeMb, err := strconv.Atoi(o.CurrentValue)
	if err != nil {
		u.sendInfoString(out.Sprintf("option Hash: invalid value %q", o.CurrentValue))
		return
	}
	u.WaitWhileSearching()
	config.Settings.Search.TTSizeMb = sizeMb
	u.engine.Resize(sizeMb)
	log.Debugf("set hash size to %d MB", sizeMb)
}

func clearHash(u *UciHandler, o *uciOption) {
	u.WaitWhileSearching()
	u.engine.ClearHash()
	log.Debug("cleared hash")
}
