package compose

import (
	"strings"
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/xkbcompose/compose/pkg/keysym"
)

func noWarn(string, ...interface{}) {}

func seqLHS(ks ...keysym.Keysym) []keysym.Keysym { return ks }

func TestTableNewIsEmpty(t *testing.T) {
	table := newTable()
	if got, want := table.NodeCount(), 1; got != want {
		t.Fatalf("NodeCount() = %d, want %d", got, want)
	}
	if got := table.stringAt(0); got != "" {
		t.Fatalf("stringAt(0) = %q, want empty", got)
	}
}

func TestTableInsertAndLookup(t *testing.T) {
	table := newTable()
	table.insert(seqLHS(keysym.MultiKey, keysym.LowerA, keysym.LowerT), "@", true, keysym.At, true, noWarn)

	cur := Root
	for _, k := range seqLHS(keysym.MultiKey, keysym.LowerA, keysym.LowerT) {
		cur = table.findChild(cur, k)
		if cur == 0 {
			t.Fatalf("lookup failed to find keysym %v", k)
		}
	}
	if got := table.stringAt(table.utf8OffsetOf(cur)); got != "@" {
		t.Errorf("composed string = %q, want %q", got, "@")
	}
	if got := table.replacementOf(cur); got != keysym.At {
		t.Errorf("replacement keysym = %v, want %v", got, keysym.At)
	}
}

func TestTablePrefixConflictOverrides(t *testing.T) {
	table := newTable()
	// First insert a short sequence ending at <a>.
	table.insert(seqLHS(keysym.MultiKey, keysym.LowerA), "short", true, keysym.NoSymbol, false, noWarn)

	var warnings []string
	warn := func(format string, args ...interface{}) { warnings = append(warnings, format) }

	// Now insert a longer sequence that passes through the same node,
	// which must override the short sequence's leaf data.
	table.insert(seqLHS(keysym.MultiKey, keysym.LowerA, keysym.LowerT), "@", true, keysym.NoSymbol, false, warn)

	found := false
	for _, w := range warnings {
		if strings.Contains(w, "prefix") {
			found = true
		}
	}
	if !found {
		t.Errorf("got warnings %v, want one mentioning a prefix conflict", warnings)
	}

	cur := table.findChild(Root, keysym.MultiKey)
	cur = table.findChild(cur, keysym.LowerA)
	if table.utf8OffsetOf(cur) != 0 {
		t.Errorf("short sequence's leaf data was not cleared by the longer override")
	}
	cur = table.findChild(cur, keysym.LowerT)
	if got := table.stringAt(table.utf8OffsetOf(cur)); got != "@" {
		t.Errorf("got %q, want %q", got, "@")
	}
}

func TestTableSupersetConflictSkipped(t *testing.T) {
	table := newTable()
	table.insert(seqLHS(keysym.MultiKey, keysym.LowerA, keysym.LowerT), "@", true, keysym.NoSymbol, false, noWarn)

	var warnings []string
	warn := func(format string, args ...interface{}) { warnings = append(warnings, format) }
	// A shorter sequence that is a prefix of the one just inserted must be
	// rejected, not silently accepted.
	table.insert(seqLHS(keysym.MultiKey, keysym.LowerA), "short", true, keysym.NoSymbol, false, warn)

	found := false
	for _, w := range warnings {
		if strings.Contains(w, "prefix of another") {
			found = true
		}
	}
	if !found {
		t.Errorf("got warnings %v, want one saying the new sequence is a prefix of another", warnings)
	}
}

func TestTableDuplicateSkipped(t *testing.T) {
	table := newTable()
	table.insert(seqLHS(keysym.MultiKey, keysym.LowerA), "first", true, keysym.NoSymbol, false, noWarn)

	var warnings []string
	warn := func(format string, args ...interface{}) { warnings = append(warnings, format) }
	table.insert(seqLHS(keysym.MultiKey, keysym.LowerA), "second", true, keysym.NoSymbol, false, warn)

	cur := table.findChild(Root, keysym.MultiKey)
	cur = table.findChild(cur, keysym.LowerA)
	if got := table.stringAt(table.utf8OffsetOf(cur)); got != "first" {
		t.Errorf("got %q, want original %q to survive a duplicate insert", got, "first")
	}

	found := false
	for _, w := range warnings {
		if strings.Contains(w, "already exists") {
			found = true
		}
	}
	if !found {
		t.Errorf("got warnings %v, want one saying the sequence already exists", warnings)
	}
}

func TestTableDump(t *testing.T) {
	table := newTable()
	table.insert(seqLHS(keysym.MultiKey, keysym.LowerA, keysym.LowerT), "@", true, keysym.NoSymbol, false, noWarn)

	var buf strings.Builder
	table.Dump(&buf)
	out := buf.String()

	want := "<Multi_key>\n  <a>\n    <t>: \"@\"\n"
	if diff := pretty.Compare(want, out); diff != "" {
		t.Errorf("Dump() mismatch (-want +got):\n%s", diff)
	}
}
