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

// Package indent provides helpers to prefix every line of a block of text,
// either all at once or as an io.Writer filter.
package indent

import "io"

// String returns in with prefix inserted at the start of every line. Lines
// are delimited by '\n'; the trailing newline, if any, is preserved without
// a following prefix (there is no line after it).
func String(prefix, in string) string {
	if in == "" {
		return ""
	}
	out := make([]byte, 0, len(in)+len(prefix))
	atLineStart := true
	for i := 0; i < len(in); i++ {
		c := in[i]
		if atLineStart {
			out = append(out, prefix...)
		}
		out = append(out, c)
		atLineStart = c == '\n'
	}
	return string(out)
}

// Bytes is String for byte slices.
func Bytes(prefix, in []byte) []byte {
	if len(in) == 0 {
		return nil
	}
	return []byte(String(string(prefix), string(in)))
}

// Writer is an io.Writer that inserts prefix at the start of every line
// written to it, including across multiple Write calls.
type Writer struct {
	w           io.Writer
	prefix      []byte
	atLineStart bool
}

// NewWriter returns a Writer that indents everything written to it with
// prefix before passing it on to w.
func NewWriter(w io.Writer, prefix string) *Writer {
	return &Writer{w: w, prefix: []byte(prefix), atLineStart: true}
}

// Write indents p and writes it to the underlying writer. The returned count
// is the number of bytes of p (not of the indented output) that were
// represented in what the underlying writer reported as written, so callers
// see an ordinary io.Writer short-write contract against their own input.
func (iw *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	out := make([]byte, 0, len(p)+len(iw.prefix))
	afterPos := make([]int, len(p))
	atLineStart := iw.atLineStart
	for i, c := range p {
		if atLineStart {
			out = append(out, iw.prefix...)
		}
		out = append(out, c)
		atLineStart = c == '\n'
		afterPos[i] = len(out)
	}
	iw.atLineStart = atLineStart

	n, err := iw.w.Write(out)
	if n > len(out) {
		n = len(out)
	}
	consumed := 0
	for _, pos := range afterPos {
		if pos > n {
			break
		}
		consumed++
	}
	return consumed, err
}
