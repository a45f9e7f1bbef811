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

// Package logging is a thin helper around "github.com/op/go-logging" so
// every package can get a preconfigured Logger in one line.
package logging

import (
	stdlog "log"
	"os"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"

	"github.com/frankkopp/kestrel/internal/config"
)

var (
	standardLog *logging.Logger
	searchLog   *logging.Logger
	testLog     *logging.Logger
	uciLog      *logging.Logger
	uciLogFile  *os.File

	standardFormat = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`,
	)

	uciLogFilePath string
)

func init() {
	exe, _ := os.Executable()
	exeDir := filepath.Dir(exe)
	exeName := strings.TrimSuffix(filepath.Base(exe), ".exe")
	uciLogFilePath = filepath.Join(exeDir, "..", "logs", exeName+"_uci.log")

	standardLog = logging.MustGetLogger("standard")
	searchLog = logging.MustGetLogger("search")
	testLog = logging.MustGetLogger("test")
	uciLog = logging.MustGetLogger("uci")
}

// GetLog returns the standard logger, configured to write to stdout at
// config.LogLevel.
func GetLog() *logging.Logger {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(logging.NewLogBackend(os.Stdout, "", stdlog.Lmsgprefix), standardFormat))
	backend.SetLevel(logging.Level(config.LogLevel), "")
	standardLog.SetBackend(backend)
	return standardLog
}

// GetSearchLog returns the logger used inside the search, configured at
// config.SearchLogLevel.
func GetSearchLog() *logging.Logger {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(logging.NewLogBackend(os.Stdout, "", stdlog.Lmsgprefix), standardFormat))
	backend.SetLevel(logging.Level(config.SearchLogLevel), "")
	searchLog.SetBackend(backend)
	return searchLog
}

// GetTestLog returns the logger used by test files, configured at
// config.TestLogLevel.
func GetTestLog() *logging.Logger {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(logging.NewLogBackend(os.Stdout, "", stdlog.Lmsgprefix), standardFormat))
	backend.SetLevel(logging.Level(config.TestLogLevel), "")
	testLog.SetBackend(backend)
	return testLog
}

// GetUciLog returns a logger dedicated to UCI protocol traffic. It logs to
// <binary name>_uci.log in the "logs" directory beside the binary's own
// directory (../logs seen from the binary) when that file can be opened;
// only if that fails does
// it fall back to stdout (protocol replies themselves go to stdout
// separately, the log is just a mirror of the conversation).
func GetUciLog() *logging.Logger {
	uciFormat := logging.MustStringFormatter(`%{time:15:04:05.000} UCI %{message}`)

	var err error
	uciLogFile, err = os.OpenFile(uciLogFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		stdlog.Println("uci log file could not be opened:", err)
		stdoutBackend := logging.AddModuleLevel(logging.NewBackendFormatter(logging.NewLogBackend(os.Stdout, "", stdlog.Lmsgprefix), uciFormat))
		stdoutBackend.SetLevel(logging.DEBUG, "")
		uciLog.SetBackend(stdoutBackend)
		return uciLog
	}

	fileBackend := logging.AddModuleLevel(logging.NewBackendFormatter(logging.NewLogBackend(uciLogFile, "", stdlog.Lmsgprefix), uciFormat))
	fileBackend.SetLevel(logging.DEBUG, "")
	uciLog.SetBackend(fileBackend)
	return uciLog
}
