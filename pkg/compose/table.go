package compose

// This file implements the compact "child + sibling" trie described in
// spec.md §3-4.4/§4.5 and §9: a single flat array of nodes addressed by
// index rather than pointer, plus an interned, NUL-terminated UTF-8 blob.
// Growing the backing slice never invalidates a node reference taken as an
// index (only a cached struct value copied out of it would go stale), so the
// discipline spec.md §9 calls out — "re-fetch any node reference after any
// append" — is observed here by always reading through t.nodes[i] rather
// than holding on to a node value across an insertion.
//
// The insertion algorithm is grounded on the append-then-relink pattern
// pkg/yang/modules.go's Modules.add uses when it appends a new module into
// its backing map and validates the result, adapted to an index-addressed
// slice instead of a map.

import (
	"fmt"
	"io"

	"github.com/xkbcompose/compose/pkg/indent"
	"github.com/xkbcompose/compose/pkg/keysym"
)

// node is one trie cell: keysym to match, sibling and child indices (0 means
// absent), and leaf data (a UTF-8 blob offset and/or a replacement keysym).
type node struct {
	keysym    keysym.Keysym
	next      int
	successor int
	utf8      int
	ks        keysym.Keysym
}

// Table is the finished, read-only trie plus its interned UTF-8 blob. It is
// immutable once returned by a loader entry point and safe for concurrent
// readers; any number of State values may share one Table.
type Table struct {
	nodes []node
	blob  []byte
}

// newTable returns a table containing exactly the root node and the
// single-NUL blob, per spec.md §4.7's "a newly constructed table contains
// exactly one node (the root) and a one-byte UTF-8 blob".
func newTable() *Table {
	return &Table{
		nodes: []node{{keysym: keysym.NoSymbol}},
		blob:  []byte{0},
	}
}

// NodeCount returns the number of nodes in the table, including the root.
func (t *Table) NodeCount() int { return len(t.nodes) }

// Root is the index of the table's root node, the lookup entry point.
const Root = 0

func (t *Table) keysymAt(i int) keysym.Keysym   { return t.nodes[i].keysym }
func (t *Table) nextOf(i int) int               { return t.nodes[i].next }
func (t *Table) successorOf(i int) int          { return t.nodes[i].successor }
func (t *Table) utf8OffsetOf(i int) int         { return t.nodes[i].utf8 }
func (t *Table) replacementOf(i int) keysym.Keysym { return t.nodes[i].ks }

// stringAt returns the NUL-terminated string starting at offset in the UTF-8
// blob. Offset 0 always yields "".
func (t *Table) stringAt(offset int) string {
	end := offset
	for t.blob[end] != 0 {
		end++
	}
	return string(t.blob[offset:end])
}

// internString appends s plus a terminating NUL to the blob and returns the
// offset it starts at.
func (t *Table) internString(s string) int {
	offset := len(t.blob)
	t.blob = append(t.blob, s...)
	t.blob = append(t.blob, 0)
	return offset
}

func (t *Table) appendNode(k keysym.Keysym) int {
	t.nodes = append(t.nodes, node{keysym: k, ks: keysym.NoSymbol})
	return len(t.nodes) - 1
}

// findOrInsertChild searches the sibling chain rooted at parent's successor
// for a node matching k, in insertion order, appending and linking a fresh
// node if none is found.
func (t *Table) findOrInsertChild(parent int, k keysym.Keysym) int {
	head := t.nodes[parent].successor
	if head == 0 {
		idx := t.appendNode(k)
		t.nodes[parent].successor = idx
		return idx
	}
	cur := head
	for {
		if t.nodes[cur].keysym == k {
			return cur
		}
		if t.nodes[cur].next == 0 {
			idx := t.appendNode(k)
			t.nodes[cur].next = idx
			return idx
		}
		cur = t.nodes[cur].next
	}
}

// insert implements add_production (spec.md §4.4): walk/extend the trie for
// lhs, then assign the leaf's string and/or replacement keysym, applying the
// conflict rules for sequences that are prefixes of one another.
func (t *Table) insert(lhs []keysym.Keysym, str string, hasStr bool, ks keysym.Keysym, hasKs bool, warn func(string, ...interface{})) {
	cur := Root
	for i, k := range lhs {
		cur = t.findOrInsertChild(cur, k)
		if i == len(lhs)-1 {
			break
		}
		if t.nodes[cur].successor == 0 {
			if t.nodes[cur].utf8 != 0 || t.nodes[cur].ks != keysym.NoSymbol {
				warn("a sequence already exists which is a prefix of this sequence; overriding")
				t.nodes[cur].utf8 = 0
				t.nodes[cur].ks = keysym.NoSymbol
			}
			// The successor itself is created lazily by the next
			// findOrInsertChild call, whose parent is cur.
		}
	}

	switch {
	case t.nodes[cur].successor != 0:
		warn("the compose sequence is a prefix of another; skipping line")
	case t.nodes[cur].utf8 != 0 || t.nodes[cur].ks != keysym.NoSymbol:
		warn("the compose sequence already exists; skipping line")
	default:
		if hasStr {
			t.nodes[cur].utf8 = t.internString(str)
		}
		if hasKs {
			t.nodes[cur].ks = ks
		}
	}
}

// Dump writes a tree-shaped rendering of the trie to w, for debugging: each
// line names a keysym and, for leaves, the string and/or replacement keysym
// it composes to. This is a supplemented feature (SPEC_FULL.md), not part of
// the runtime surface proper.
func (t *Table) Dump(w io.Writer) {
	t.dumpChildren(w, Root)
}

func (t *Table) dumpChildren(w io.Writer, parent int) {
	for i := t.nodes[parent].successor; i != 0; i = t.nodes[i].next {
		t.dumpNode(w, i)
	}
}

func (t *Table) dumpNode(w io.Writer, i int) {
	n := t.nodes[i]
	name := keysym.Name(n.keysym)
	if name == "" {
		name = fmt.Sprintf("0x%x", uint32(n.keysym))
	}
	switch {
	case n.successor != 0:
		fmt.Fprintf(w, "<%s>\n", name)
		t.dumpChildren(indent.NewWriter(w, "  "), i)
	case n.utf8 != 0 && n.ks != keysym.NoSymbol:
		fmt.Fprintf(w, "<%s>: %q %s\n", name, t.stringAt(n.utf8), keysym.Name(n.ks))
	case n.utf8 != 0:
		fmt.Fprintf(w, "<%s>: %q\n", name, t.stringAt(n.utf8))
	case n.ks != keysym.NoSymbol:
		fmt.Fprintf(w, "<%s>: %s\n", name, keysym.Name(n.ks))
	default:
		fmt.Fprintf(w, "<%s>\n", name)
	}
}
