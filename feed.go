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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/xkbcompose/compose/pkg/compose"
	"github.com/xkbcompose/compose/pkg/keysym"
)

func init() {
	register(&formatter{
		name: "feed",
		f:    doFeed,
		help: "feed the remaining arguments, as keysym names, to a state machine and report the result of each",
	})
}

// doFeed drives one compose.State with the keysym named by each remaining
// command-line argument, printing the resulting status after every keysym
// and the composed text or replacement keysym once one completes a
// sequence.
func doFeed(w io.Writer, table *compose.Table) {
	st := compose.NewState(table)
	for _, name := range args {
		k, ok := keysym.FromName(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "%s: unknown keysym name\n", name)
			continue
		}
		status := st.Feed(k)
		fmt.Fprintf(w, "%s: %s", name, status)
		if status == compose.StatusComposed {
			var buf [64]byte
			n := st.UTF8(buf[:])
			if n > 0 && n <= len(buf) {
				fmt.Fprintf(w, " %q", buf[:n])
			}
			if ks, ok := st.OneSym(); ok {
				fmt.Fprintf(w, " %s", keysym.Name(ks))
			}
		}
		fmt.Fprintln(w)
	}
}
