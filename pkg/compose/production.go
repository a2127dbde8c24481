package compose

import "github.com/xkbcompose/compose/pkg/keysym"

// maxLHSLen is the maximum number of keysyms a single compose sequence may
// name on its left-hand side.
const maxLHSLen = 10

// maxStringLen is the maximum length, in bytes after escape decoding, of a
// right-hand-side string literal (the 256-byte production buffer of spec.md
// §3 minus its trailing NUL).
const maxStringLen = 255

// production holds one LHS/RHS pair while it is being parsed, before it is
// inserted into the trie. The fixed-capacity lhs array mirrors spec.md §3's
// transient production type.
type production struct {
	lhs    [maxLHSLen]keysym.Keysym
	lhsLen int

	str       string
	hasString bool

	ks        keysym.Keysym
	hasKeysym bool
}

func (p *production) reset() {
	*p = production{}
}

func (p *production) pushLHS(k keysym.Keysym) bool {
	if p.lhsLen >= maxLHSLen {
		return false
	}
	p.lhs[p.lhsLen] = k
	p.lhsLen++
	return true
}

func (p *production) lhsSlice() []keysym.Keysym {
	return p.lhs[:p.lhsLen]
}
