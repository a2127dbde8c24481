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
	"io"

	"github.com/xkbcompose/compose/pkg/compose"
)

func init() {
	register(&formatter{
		name: "dump",
		f:    doDump,
		help: "display the compiled compose table as a tree",
	})
}

// doDump writes table's trie to w in the tree shape compose.Table.Dump
// produces: one line per keysym, indented by nesting depth, with leaves
// annotated by their composed string and/or replacement keysym.
func doDump(w io.Writer, table *compose.Table) {
	table.Dump(w)
}
