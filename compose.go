// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Program compose compiles an X11-style Compose file and either dumps its
// trie or replays a sequence of keysym names through it.
//
// Usage: compose [--file FILE] [--locale LOCALE] [--format FORMAT] [ARG ...]
//
// With no --file, the system Compose file for LOCALE (or the environment's
// locale, or "C") is discovered the way libX11 does: $XCOMPOSEFILE, then
// $HOME/.XCompose, then the per-locale system file.
//
// FORMAT, which defaults to "dump", selects what to do with the compiled
// table: "dump" prints its trie; "feed" treats the remaining ARGs as keysym
// names and reports the status produced by feeding each one in turn.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/pborman/getopt"

	"github.com/xkbcompose/compose/pkg/compose"
	"github.com/xkbcompose/compose/pkg/indent"
	"github.com/xkbcompose/compose/pkg/locale"
)

// newStderrLogger returns the *log.Logger the loader's warning sink writes
// per-line parse diagnostics to: no timestamp prefix, just the message, one
// per line on standard error.
func newStderrLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

// Each format must register a formatter with register. The function f will
// be called once with the compiled table.
type formatter struct {
	name string
	f    func(io.Writer, *compose.Table)
	help string
}

var formatters = map[string]*formatter{}

func register(f *formatter) {
	formatters[f.name] = f
}

// args holds the non-flag command-line arguments remaining after getopt
// parses out the flags below; the "feed" formatter reads it as a list of
// keysym names.
var args []string

// exitIfError writes err to standard error and exits with status 1. It does
// nothing if err is nil.
func exitIfError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(1)
	}
}

var stop = os.Exit

func main() {
	var file, localeName, format string
	var help bool

	formats := make([]string, 0, len(formatters))
	for k := range formatters {
		formats = append(formats, k)
	}
	sort.Strings(formats)

	getopt.StringVarLong(&file, "file", 0, "Compose file to load; if unset, discover one for --locale", "FILE")
	getopt.StringVarLong(&localeName, "locale", 0, "locale to resolve %L and the system Compose file against (default: from the environment)", "LOCALE")
	getopt.StringVarLong(&format, "format", 0, "format to display: "+strings.Join(formats, ", "), "FORMAT")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("[ARG ...]")

	if err := getopt.Getopt(func(getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		for _, fn := range formats {
			fmt.Fprintf(indent.NewWriter(os.Stderr, "    "), "%s - %s\n", formatters[fn].name, formatters[fn].help)
		}
		stop(0)
	}

	if localeName == "" {
		localeName = locale.LocaleFromEnvironment()
	}
	if format == "" {
		format = "dump"
	}
	f, ok := formatters[format]
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: invalid format. Choices are %s\n", format, strings.Join(formats, ", "))
		stop(1)
	}

	args = getopt.Args()

	var table *compose.Table
	var err error
	logger := newStderrLogger()
	switch {
	case file != "":
		table, err = compose.NewFromFile(file, localeName, compose.FormatTextV1, compose.NoCompileFlags, logger)
	default:
		table, err = compose.NewFromLocale(localeName, compose.NoCompileFlags, logger)
	}
	exitIfError(err)

	f.f(os.Stdout, table)
}
