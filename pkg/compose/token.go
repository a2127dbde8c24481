package compose

import (
	"fmt"

	"github.com/xkbcompose/compose/pkg/keysym"
)

// tokenCode names the lexical categories the lexer can produce. This mirrors
// pkg/yang/lex.go's code type, one variant per token kind the grammar needs
// to distinguish, plus an ERROR sentinel.
type tokenCode int

const (
	tokError tokenCode = iota
	tokEOF
	tokEndOfLine
	tokInclude
	tokIncludeString
	tokLHSKeysym
	tokColon
	tokString
	tokRHSKeysym
)

func (c tokenCode) String() string {
	switch c {
	case tokError:
		return "ERROR"
	case tokEOF:
		return "END_OF_FILE"
	case tokEndOfLine:
		return "END_OF_LINE"
	case tokInclude:
		return "INCLUDE"
	case tokIncludeString:
		return "INCLUDE_STRING"
	case tokLHSKeysym:
		return "LHS_KEYSYM"
	case tokColon:
		return "COLON"
	case tokString:
		return "STRING"
	case tokRHSKeysym:
		return "RHS_KEYSYM"
	default:
		return "?"
	}
}

// token is one lexical unit read from the input. Line and Col are 1's and
// 0's based respectively, matching Scanner's own convention.
type token struct {
	code   tokenCode
	text   string // token text: keysym name, decoded string, or include path
	ks     keysym.Keysym
	line   int
	col    int
	errMsg string // set only when code == tokError
}

func (t token) String() string {
	if t.errMsg != "" {
		return fmt.Sprintf("%d:%d: %s: %s", t.line, t.col, t.code, t.errMsg)
	}
	if t.text != "" {
		return fmt.Sprintf("%d:%d: %s %q", t.line, t.col, t.code, t.text)
	}
	return fmt.Sprintf("%d:%d: %s", t.line, t.col, t.code)
}
