package compose

import (
	"fmt"
	"strings"
	"testing"

	"github.com/openconfig/gnmi/errdiff"

	"github.com/xkbcompose/compose/pkg/keysym"
)

func parseSource(t *testing.T, src string) (*Table, []string) {
	t.Helper()
	var warnings []string
	p := &parser{
		table: newTable(),
		warn:  &warner{logf: func(format string, args ...interface{}) { warnings = append(warnings, fmt.Sprintf(format, args...)) }},
		locale: "C",
	}
	if err := p.parseFile("<test>", []byte(src), 0); err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	return p.table, warnings
}

func TestParseSimpleProduction(t *testing.T) {
	table, warnings := parseSource(t, `<Multi_key> <a> <t> : "@" at`+"\n")
	if len(warnings) != 0 {
		t.Fatalf("got warnings %v, want none", warnings)
	}
	cur := Root
	for _, k := range []keysym.Keysym{keysym.MultiKey, keysym.LowerA, keysym.LowerT} {
		cur = table.findChild(cur, k)
		if cur == 0 {
			t.Fatalf("sequence was not inserted into the table")
		}
	}
	if got := table.stringAt(table.utf8OffsetOf(cur)); got != "@" {
		t.Errorf("got %q, want %q", got, "@")
	}
	if got := table.replacementOf(cur); got != keysym.At {
		t.Errorf("got replacement %v, want %v", got, keysym.At)
	}
}

func TestParseCommentsAndBlankLines(t *testing.T) {
	_, warnings := parseSource(t, "# a file-level comment\n\n<Multi_key> <a> <t> : \"@\"\n")
	if len(warnings) != 0 {
		t.Fatalf("got warnings %v, want none", warnings)
	}
}

func TestParseRecoversFromUnexpectedToken(t *testing.T) {
	table, warnings := parseSource(t, "<a> <t> garbage extra : \"x\"\n<Multi_key> <a> : \"@\"\n")
	if len(warnings) == 0 {
		t.Fatalf("got no warnings, want at least one for the malformed first line")
	}
	cur := table.findChild(Root, keysym.MultiKey)
	if cur == 0 {
		t.Fatalf("recovery ate the following valid production")
	}
	cur = table.findChild(cur, keysym.LowerA)
	if cur == 0 || table.stringAt(table.utf8OffsetOf(cur)) != "@" {
		t.Fatalf("second line was not parsed correctly after recovering from the first")
	}
}

func TestParseTooManyErrorsAborts(t *testing.T) {
	var src strings.Builder
	for i := 0; i < maxParseErrors+2; i++ {
		src.WriteString("@@@ bad line\n")
	}
	p := &parser{table: newTable(), warn: &warner{}, locale: "C"}
	err := p.parseFile("<test>", []byte(src.String()), 0)
	if err != errAbortFile {
		t.Fatalf("parseFile = %v, want errAbortFile", err)
	}
	if diff := errdiff.Substring(err, "too many errors"); diff != "" {
		t.Fatalf("%s", diff)
	}
}

func TestParseLHSTooLong(t *testing.T) {
	var src strings.Builder
	for i := 0; i < maxLHSLen+1; i++ {
		src.WriteString("<a> ")
	}
	src.WriteString(`: "x"` + "\n")

	_, warnings := parseSource(t, src.String())
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "too long") {
			found = true
		}
	}
	if !found {
		t.Errorf("got warnings %v, want one about a too-long sequence", warnings)
	}
}

func TestParseEmptyStringRejected(t *testing.T) {
	table, warnings := parseSource(t, `<Multi_key> <a> : ""`+"\n")

	found := false
	for _, w := range warnings {
		if strings.Contains(w, "empty string") {
			found = true
		}
	}
	if !found {
		t.Errorf("got warnings %v, want one about an empty string", warnings)
	}

	cur := table.findChild(Root, keysym.MultiKey)
	if cur != 0 {
		cur = table.findChild(cur, keysym.LowerA)
	}
	if cur != 0 {
		t.Errorf("empty-string production was inserted into the table")
	}
}

func TestParseStringTooLongRejected(t *testing.T) {
	src := `<Multi_key> <a> : "` + strings.Repeat("x", maxStringLen+1) + `"` + "\n"
	table, warnings := parseSource(t, src)

	found := false
	for _, w := range warnings {
		if strings.Contains(w, "too long") {
			found = true
		}
	}
	if !found {
		t.Errorf("got warnings %v, want one about a too-long string", warnings)
	}

	cur := table.findChild(Root, keysym.MultiKey)
	if cur != 0 {
		cur = table.findChild(cur, keysym.LowerA)
	}
	if cur != 0 {
		t.Errorf("over-long-string production was inserted into the table")
	}
}
