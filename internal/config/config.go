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

// Package config holds globally available configuration, read from a TOML
// file with defaults for anything the file doesn't set.
package config

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/frankkopp/kestrel/internal/util"
)

var (
	// ConfFile is the path to the config file, relative to the working directory.
	ConfFile = "./config.toml"

	// LogLevel is the general log level.
	LogLevel = 5

	// SearchLogLevel is the search log level.
	SearchLogLevel = 5

	// TestLogLevel is the log level used by tests.
	TestLogLevel = 5

	// Settings is the global configuration read in from file.
	Settings conf

	initialized = false
)

type conf struct {
	Log    logConfiguration
	Search searchConfiguration
	Eval   evalConfiguration
}

// Setup reads the config file (if present) and fills in Settings, falling
// back to the defaults set by each sub-config's init().
func Setup() {
	if initialized {
		return
	}

	path, err := util.ResolveFile(ConfFile)
	if err != nil {
		path = ConfFile
	}
	if _, err := toml.DecodeFile(path, &Settings); err != nil {
		log.Println("config file not found, using defaults:", err)
	}

	setupLogLvl()
	setupSearch()
	setupEval()
	initialized = true
}

// String renders the current configuration for diagnostics.
func (settings *conf) String() string {
	var sb strings.Builder
	sb.WriteString("Search Config:\n")
	writeFields(&sb, reflect.ValueOf(&settings.Search).Elem())
	sb.WriteString("\nEvaluation Config:\n")
	writeFields(&sb, reflect.ValueOf(&settings.Eval).Elem())
	return sb.String()
}

func writeFields(sb *strings.Builder, v reflect.Value) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		sb.WriteString(fmt.Sprintf("%-2d: %-22s %-6s = %v\n", i, t.Field(i).Name, f.Type(), f.Interface()))
	}
}
