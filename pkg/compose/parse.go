package compose

// This file implements the parser driver: it turns a token stream from a
// Lexer into trie insertions on a Table, handling file-level includes and
// error recovery. The shape (a loop over tokens pulled one at a time, with
// helper functions for the include, left-hand-side and right-hand-side
// parts of a line) follows pkg/yang/parse.go's yyLex-driven statement loop; the states
// themselves and the recovery discipline are grounded on spec.md §4.3.

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
)

// maxParseErrors is the number of errors a single file may accumulate before
// parsing of that file aborts early, per spec.md §4.3.
const maxParseErrors = 10

// maxIncludeDepth is the include nesting depth at which an include is
// rejected; depth 0 is the top-level file, so the deepest included file sits
// at depth 4.
const maxIncludeDepth = 5

var errIncludeDepthExceeded = fmt.Errorf("compose: include nesting too deep")

// parser holds the state threaded through one parseFile invocation and its
// recursive include children: the shared table being built, the warning
// sink, and the per-file error count that triggers the abort-after-10 rule.
type parser struct {
	table  *Table
	warn   *warner
	locale string
	errs   int
}

// warner adapts a *log.Logger-shaped callback to the warnf/errorf convention
// parse.go and lex.go share: every call is a Printf-style recoverable
// diagnostic, with a file/line prefix attached by the caller.
type warner struct {
	logf func(format string, args ...interface{})
}

func (w *warner) Printf(format string, args ...interface{}) {
	if w.logf != nil {
		w.logf(format, args...)
	}
}

// parseFile parses the Compose source in data (whose path is used only for
// diagnostics and relative-include resolution) into p.table. depth is the
// include nesting depth of this file, checked against maxIncludeDepth before
// any of its own includes may be followed.
func (p *parser) parseFile(path string, data []byte, depth int) error {
	s := NewScanner(data)
	var prod production

	warnAt := func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		p.warn.Printf("%s:%d:%d: %s", path, s.TokenLine(), s.TokenCol(), msg)
		p.errs++
	}

	l := NewLexer(s, p.locale, func(format string, args ...interface{}) {
		warnAt(format, args...)
	})

	for {
		if p.errs >= maxParseErrors {
			p.warn.Printf("%s: too many errors; abandoning file", path)
			return errAbortFile
		}

		t := l.Next()
		switch t.code {
		case tokEOF:
			return nil
		case tokEndOfLine:
			continue
		case tokInclude:
			if err := p.doInclude(l, path, depth, warnAt); err != nil {
				return err
			}
		case tokLHSKeysym:
			prod.reset()
			if err := p.parseLHS(l, &prod, t, warnAt); err != nil {
				return err
			}
		default:
			warnAt("unexpected token %s", t)
			l.SkipToEndOfLine()
		}
	}
}

// errAbortFile is a private sentinel meaning "too many errors in this file",
// distinguished from errIncludeDepthExceeded which must propagate to every
// ancestor instead of being swallowed at the point it's detected.
var errAbortFile = fmt.Errorf("compose: too many errors in file")

// parseLHS consumes the "<a> <b> ... :" sequence introducer, the first
// keysym of which (first) has already been lexed, then hands off to
// parseRHS.
func (p *parser) parseLHS(l *Lexer, prod *production, first token, warnAt func(string, ...interface{})) error {
	if !prod.pushLHS(first.ks) {
		warnAt("compose sequence too long; skipping line")
		l.SkipToEndOfLine()
		return p.checkAbort()
	}
	for {
		t := l.Next()
		switch t.code {
		case tokLHSKeysym:
			if !prod.pushLHS(t.ks) {
				warnAt("compose sequence too long; skipping line")
				l.SkipToEndOfLine()
				return p.checkAbort()
			}
		case tokColon:
			return p.parseRHS(l, prod, warnAt)
		default:
			warnAt("expected a keysym or ':', got %s", t)
			l.SkipToEndOfLine()
			return p.checkAbort()
		}
	}
}

// parseRHS consumes the right-hand side following ':' — a string, a bare
// keysym, or both — then the terminating end of line, and inserts the
// finished production into the table.
func (p *parser) parseRHS(l *Lexer, prod *production, warnAt func(string, ...interface{})) error {
	t := l.Next()
	switch t.code {
	case tokString:
		if t.text == "" {
			warnAt("empty string is invalid")
			l.SkipToEndOfLine()
			return p.checkAbort()
		}
		if len(t.text) > maxStringLen {
			warnAt("string too long (%d bytes, max %d); skipping line", len(t.text), maxStringLen)
			l.SkipToEndOfLine()
			return p.checkAbort()
		}
		prod.str = t.text
		prod.hasString = true
	case tokRHSKeysym:
		prod.ks = t.ks
		prod.hasKeysym = true
		return p.finishRHSKeysym(l, prod, warnAt)
	default:
		warnAt("expected a string or keysym after ':', got %s", t)
		l.SkipToEndOfLine()
		return p.checkAbort()
	}

	t = l.Next()
	if t.code == tokRHSKeysym {
		prod.ks = t.ks
		prod.hasKeysym = true
		return p.finishRHSKeysym(l, prod, warnAt)
	}
	return p.finishProduction(l, prod, t, warnAt)
}

// finishRHSKeysym consumes the token following an RHS keysym, which per
// spec.md §9 must be END_OF_LINE; anything else is generic-recovered rather
// than specially interpreted.
func (p *parser) finishRHSKeysym(l *Lexer, prod *production, warnAt func(string, ...interface{})) error {
	t := l.Next()
	return p.finishProduction(l, prod, t, warnAt)
}

// finishProduction expects terminator to be END_OF_LINE (or EOF) and, if so,
// inserts prod into the table; otherwise it is generic-recovered.
func (p *parser) finishProduction(l *Lexer, prod *production, terminator token, warnAt func(string, ...interface{})) error {
	switch terminator.code {
	case tokEndOfLine, tokEOF:
		p.table.insert(prod.lhsSlice(), prod.str, prod.hasString, prod.ks, prod.hasKeysym, func(format string, args ...interface{}) {
			warnAt(format, args...)
		})
		return nil
	default:
		warnAt("expected end of line, got %s", terminator)
		l.SkipToEndOfLine()
		return p.checkAbort()
	}
}

func (p *parser) checkAbort() error {
	if p.errs >= maxParseErrors {
		return errAbortFile
	}
	return nil
}

// doInclude handles one "include" directive: it lexes the quoted, %-expanded
// path, resolves it relative to the including file's directory when it is
// not absolute, and recursively parses it at depth+1. An error reading or
// parsing the child file is logged and treated as non-fatal to the parent,
// except errIncludeDepthExceeded, which is fatal and propagates unchanged
// through every ancestor call.
func (p *parser) doInclude(l *Lexer, parentPath string, depth int, warnAt func(string, ...interface{})) error {
	if depth+1 >= maxIncludeDepth {
		return errIncludeDepthExceeded
	}

	t := l.NextIncludeString()
	if t.code != tokIncludeString {
		warnAt("malformed include directive: %s", t)
		l.SkipToEndOfLine()
		return p.checkAbort()
	}

	end := l.Next()
	if end.code != tokEndOfLine && end.code != tokEOF {
		warnAt("expected end of line after include path, got %s", end)
		l.SkipToEndOfLine()
	}

	childPath := t.text
	if !filepath.IsAbs(childPath) {
		childPath = filepath.Join(filepath.Dir(parentPath), childPath)
	}

	data, err := ioutil.ReadFile(childPath)
	if err != nil {
		warnAt("cannot include %q: %v", childPath, err)
		return p.checkAbort()
	}

	child := &parser{table: p.table, warn: p.warn, locale: p.locale}
	if err := child.parseFile(childPath, data, depth+1); err != nil {
		if err == errIncludeDepthExceeded {
			return err
		}
		warnAt("error including %q: %v", childPath, err)
	}
	return p.checkAbort()
}
