package compose

// This file implements the lexical tokenization of a Compose source file.
// It follows the same shape as pkg/yang/lex.go's lexGround/lexQString/
// lexIdentifier trio, respecialized for the Compose grammar: keysym names in
// angle brackets, quoted strings with \xHH/\OOO escapes instead of YANG's
// \n/\t, and a bareword that is either the "include" keyword or an RHS
// keysym name. A second entry point, NextIncludeString, lexes the quoted
// path that follows INCLUDE, with %-expansion active in addition to the
// ordinary escapes.

import (
	"fmt"
	"unicode/utf8"

	"github.com/xkbcompose/compose/pkg/keysym"
	"github.com/xkbcompose/compose/pkg/locale"
)

// Lexer produces a stream of tokens from a Scanner.
type Lexer struct {
	s      *Scanner
	locale string
	warn   func(format string, args ...interface{})
}

// NewLexer returns a Lexer reading from s. locale is used to resolve %L
// expansions inside include strings. warn, if non-nil, is called for
// recoverable lexical warnings (unknown escape sequences) that do not by
// themselves abort the current token.
func NewLexer(s *Scanner, localeName string, warn func(string, ...interface{})) *Lexer {
	if warn == nil {
		warn = func(string, ...interface{}) {}
	}
	return &Lexer{s: s, locale: localeName, warn: warn}
}

func (l *Lexer) tok(code tokenCode, text string, ks keysym.Keysym) token {
	return token{code: code, text: text, ks: ks, line: l.s.TokenLine(), col: l.s.TokenCol()}
}

func (l *Lexer) errTok(msg string) token {
	return token{code: tokError, errMsg: msg, line: l.s.TokenLine(), col: l.s.TokenCol()}
}

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isAlnum(c byte) bool { return isAlpha(c) || (c >= '0' && c <= '9') }

// SkipToEndOfLine drops input up to, but not including, the next newline or
// end of file. It is the parser driver's generic error-recovery primitive:
// after an unexpected token, skip raw input (not tokens) to the end of the
// offending line and resume lexing fresh from there.
func (l *Lexer) SkipToEndOfLine() {
	for {
		c, ok := l.s.Peek()
		if !ok || c == '\n' {
			return
		}
		l.s.Next()
	}
}

func (l *Lexer) skipSpaceAndComments() {
	for {
		c, ok := l.s.Peek()
		if !ok {
			return
		}
		switch c {
		case ' ', '\t', '\r':
			l.s.Next()
		case '#':
			for {
				c2, ok2 := l.s.Peek()
				if !ok2 || c2 == '\n' {
					break
				}
				l.s.Next()
			}
		default:
			return
		}
	}
}

// Next returns the next token in ground mode: END_OF_LINE, END_OF_FILE,
// INCLUDE, LHS_KEYSYM, COLON, STRING, RHS_KEYSYM, or ERROR.
func (l *Lexer) Next() token {
	l.skipSpaceAndComments()
	l.s.MarkToken()
	c, ok := l.s.Peek()
	if !ok {
		return l.tok(tokEOF, "", keysym.NoSymbol)
	}
	switch {
	case c == '\n':
		l.s.Next()
		return l.tok(tokEndOfLine, "", keysym.NoSymbol)
	case c == ':':
		l.s.Next()
		return l.tok(tokColon, "", keysym.NoSymbol)
	case c == '"':
		l.s.Next()
		return l.lexString()
	case c == '<':
		l.s.Next()
		return l.lexName()
	case isAlpha(c) || c == '_':
		return l.lexBareword()
	default:
		l.s.Next()
		l.SkipToEndOfLine()
		return l.errTok(fmt.Sprintf("unexpected character %q", c))
	}
}

// lexName lexes "<keysym-name>"; the leading '<' has already been consumed.
func (l *Lexer) lexName() token {
	l.s.BufReset()
	for {
		c, ok := l.s.Peek()
		if !ok || c == '\n' {
			return l.errTok("unterminated keysym name")
		}
		if c == '>' {
			l.s.Next()
			break
		}
		l.s.Next()
		if !l.s.BufAppend(c) {
			return l.errTok("keysym name too long")
		}
	}
	name := l.s.BufString()
	k, ok := keysym.FromName(name)
	if !ok {
		return l.errTok(fmt.Sprintf("unknown keysym name %q", name))
	}
	return l.tok(tokLHSKeysym, name, k)
}

// lexBareword lexes an unquoted word: either the "include" keyword or an RHS
// keysym name.
func (l *Lexer) lexBareword() token {
	l.s.BufReset()
	for {
		c, ok := l.s.Peek()
		if !ok || !(isAlnum(c) || c == '_') {
			break
		}
		l.s.Next()
		if !l.s.BufAppend(c) {
			return l.errTok("identifier too long")
		}
	}
	word := l.s.BufString()
	if word == "include" {
		return l.tok(tokInclude, word, keysym.NoSymbol)
	}
	k, ok := keysym.FromName(word)
	if !ok {
		return l.errTok(fmt.Sprintf("unknown keysym name %q", word))
	}
	return l.tok(tokRHSKeysym, word, k)
}

// lexString lexes a quoted STRING token; the leading '"' has already been
// consumed.
func (l *Lexer) lexString() token {
	l.s.BufReset()
	for {
		c, ok := l.s.Peek()
		if !ok || c == '\n' {
			return l.errTok("unterminated string literal")
		}
		l.s.Next()
		switch c {
		case '"':
			return l.finishString()
		case '\\':
			if !l.lexEscape() {
				return l.errTok("string literal too long")
			}
		default:
			if !l.s.BufAppend(c) {
				return l.errTok("string literal too long")
			}
		}
	}
}

func (l *Lexer) finishString() token {
	s := l.s.BufString()
	if !utf8.ValidString(s) {
		return l.errTok("invalid UTF-8 in string literal")
	}
	return l.tok(tokString, s, keysym.NoSymbol)
}

// lexEscape lexes the character(s) after a backslash already consumed by the
// caller, appending the decoded byte(s) to the scratch buffer. It returns
// false only on scratch-buffer overflow; an unknown or malformed escape is
// handled by warning and dropping the backslash together with the character
// that follows it.
func (l *Lexer) lexEscape() bool {
	c, ok := l.s.Peek()
	if !ok {
		return true
	}
	switch {
	case c == '\\' || c == '"':
		l.s.Next()
		return l.s.BufAppend(c)
	case c == 'x' || c == 'X':
		l.s.Next()
		if v, ok := l.s.Hex(); ok {
			return l.s.BufAppend(v)
		}
		l.warn("malformed \\%c escape; dropping", c)
		return true
	case isOctDigit(c):
		v, _ := l.s.Oct()
		return l.s.BufAppend(v)
	default:
		l.s.Next()
		l.warn("unknown escape sequence \\%c; dropping", c)
		return true
	}
}

// NextIncludeString lexes the quoted path following an INCLUDE token, with
// %-expansion (%%, %H, %L, %S) active alongside the ordinary string escapes.
func (l *Lexer) NextIncludeString() token {
	l.skipSpaceAndComments()
	l.s.MarkToken()
	c, ok := l.s.Peek()
	if !ok {
		return l.tok(tokEOF, "", keysym.NoSymbol)
	}
	if c != '"' {
		l.SkipToEndOfLine()
		return l.errTok("expected a quoted include path")
	}
	l.s.Next()
	l.s.BufReset()
	for {
		c, ok := l.s.Peek()
		if !ok || c == '\n' {
			return l.errTok("unterminated include path")
		}
		l.s.Next()
		switch c {
		case '"':
			return l.finishIncludeString()
		case '%':
			if ok, msg := l.lexPercentExpansion(); !ok {
				return l.errTok(msg)
			}
		case '\\':
			if !l.lexEscape() {
				return l.errTok("include path too long")
			}
		default:
			if !l.s.BufAppend(c) {
				return l.errTok("include path too long")
			}
		}
	}
}

func (l *Lexer) finishIncludeString() token {
	s := l.s.BufString()
	if !utf8.ValidString(s) {
		return l.errTok("invalid UTF-8 in include path")
	}
	return l.tok(tokIncludeString, s, keysym.NoSymbol)
}

// lexPercentExpansion lexes one %-escape inside an include string; the '%'
// has already been consumed. It returns false with a diagnostic message if
// the escape is unknown or the expansion overflows the scratch buffer.
func (l *Lexer) lexPercentExpansion() (bool, string) {
	c, ok := l.s.Peek()
	if !ok {
		return false, "unterminated %-expansion"
	}
	switch c {
	case '%':
		l.s.Next()
		if !l.s.BufAppend('%') {
			return false, "include path too long"
		}
		return true, ""
	case 'H':
		l.s.Next()
		home, err := locale.Home()
		if err != nil {
			return false, err.Error()
		}
		if !l.s.BufAppendString(home) {
			return false, "include path too long"
		}
		return true, ""
	case 'L':
		l.s.Next()
		if !l.s.BufAppendString(locale.ComposeFilePath(l.locale)) {
			return false, "include path too long"
		}
		return true, ""
	case 'S':
		l.s.Next()
		if !l.s.BufAppendString(locale.XLocaleDir()) {
			return false, "include path too long"
		}
		return true, ""
	default:
		l.s.Next()
		return false, fmt.Sprintf("unknown %%-expansion %%%c", c)
	}
}
