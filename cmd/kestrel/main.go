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

// Kestrel is a UCI chess engine. It reads UCI commands from stdin and
// answers on stdout; start it from a chess GUI or drive it by hand.
package main

import (
	"flag"
	"runtime"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/kestrel/internal/config"
	"github.com/frankkopp/kestrel/internal/logging"
	"github.com/frankkopp/kestrel/internal/uci"
)

var out = message.NewPrinter(language.English)

const version = "1.0.0"

func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "", "standard log level\n(off|critical|error|warning|notice|info|debug)")
	searchLogLvl := flag.String("searchloglvl", "", "search log level\n(off|critical|error|warning|notice|info|debug)")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	// the config file path must be set before Setup reads it
	config.ConfFile = *configFile
	config.Setup()

	// command line log levels overwrite config file and defaults
	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	if lvl, found := config.LogLevels[*searchLogLvl]; found {
		config.SearchLogLevel = lvl
	}

	// packages cache their logger in a global var, so reset the standard
	// log once here to pick up the level that was just configured
	logging.GetLog()

	u := uci.NewUciHandler()
	u.Loop()
}

func printVersionInfo() {
	out.Printf("Kestrel %s\n", version)
	out.Printf("Environment:\n")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
}
