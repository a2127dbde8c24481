package compose

import (
	"testing"

	"github.com/xkbcompose/compose/pkg/keysym"
)

// standardComposeSource is a small Compose file exercising every sequence
// the concrete scenarios below feed through, grounded directly on spec.md
// §8's "standard Compose file" scenarios.
const standardComposeSource = `
<dead_tilde> <space> : "~" asciitilde
<dead_tilde> <dead_tilde> : "~" asciitilde
<dead_acute> <dead_acute> : "´" acute
<Multi_key> <A> <T> : "@" at
<Multi_key> <apostrophe> <a> : "a-acute"
`

func standardTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewFromBuffer([]byte(standardComposeSource), "<standard>", "C", FormatTextV1, NoCompileFlags, nil)
	if err != nil {
		t.Fatalf("NewFromBuffer(standard): %v", err)
	}
	return table
}

// feedAll drives st through every keysym in ks, returning the Status
// reported after each one.
func feedAll(st *State, ks []keysym.Keysym) []Status {
	out := make([]Status, len(ks))
	for i, k := range ks {
		out[i] = st.Feed(k)
	}
	return out
}

func statusesEqual(a, b []Status) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Scenario 1: dead_tilde, space -> COMPOSING, COMPOSED; "~"; asciitilde.
func TestScenario1(t *testing.T) {
	st := NewState(standardTable(t))
	got := feedAll(st, []keysym.Keysym{keysym.DeadTilde, keysym.Space})
	want := []Status{StatusComposing, StatusComposed}
	if !statusesEqual(got, want) {
		t.Fatalf("statuses = %v, want %v", got, want)
	}
	var buf [8]byte
	if n := st.UTF8(buf[:]); string(buf[:n]) != "~" {
		t.Errorf("UTF8() = %q, want %q", buf[:n], "~")
	}
	if ks, ok := st.OneSym(); !ok || ks != keysym.AsciiTilde {
		t.Errorf("OneSym() = %v, %v, want %v, true", ks, ok, keysym.AsciiTilde)
	}
}

// Scenario 2: dead_tilde, space, dead_tilde, space cycles twice, each
// COMPOSED yielding "~".
func TestScenario2(t *testing.T) {
	st := NewState(standardTable(t))
	seq := []keysym.Keysym{keysym.DeadTilde, keysym.Space, keysym.DeadTilde, keysym.Space}
	got := feedAll(st, seq)
	want := []Status{StatusComposing, StatusComposed, StatusComposing, StatusComposed}
	if !statusesEqual(got, want) {
		t.Fatalf("statuses = %v, want %v", got, want)
	}
}

// Scenario 3: dead_tilde, dead_tilde -> COMPOSING, COMPOSED; "~"; asciitilde.
func TestScenario3(t *testing.T) {
	st := NewState(standardTable(t))
	got := feedAll(st, []keysym.Keysym{keysym.DeadTilde, keysym.DeadTilde})
	want := []Status{StatusComposing, StatusComposed}
	if !statusesEqual(got, want) {
		t.Fatalf("statuses = %v, want %v", got, want)
	}
	var buf [8]byte
	if n := st.UTF8(buf[:]); string(buf[:n]) != "~" {
		t.Errorf("UTF8() = %q, want %q", buf[:n], "~")
	}
}

// Scenario 4: dead_acute, dead_acute -> COMPOSING, COMPOSED; "´" (2 bytes);
// acute.
func TestScenario4(t *testing.T) {
	st := NewState(standardTable(t))
	got := feedAll(st, []keysym.Keysym{keysym.DeadAcute, keysym.DeadAcute})
	want := []Status{StatusComposing, StatusComposed}
	if !statusesEqual(got, want) {
		t.Fatalf("statuses = %v, want %v", got, want)
	}
	var buf [8]byte
	n := st.UTF8(buf[:])
	if n != 2 || string(buf[:n]) != "´" {
		t.Errorf("UTF8() = %q (%d bytes), want %q (2 bytes)", buf[:n], n, "´")
	}
	if ks, ok := st.OneSym(); !ok || ks != keysym.Acute {
		t.Errorf("OneSym() = %v, %v, want %v, true", ks, ok, keysym.Acute)
	}
}

// Scenario 5: Multi_key, Shift_L, A, Caps_Lock, T -> modifiers skipped, the
// effective sequence Multi_key, A, T composes "@"/at.
func TestScenario5(t *testing.T) {
	st := NewState(standardTable(t))
	seq := []keysym.Keysym{keysym.MultiKey, keysym.ShiftL, keysym.A, keysym.CapsLock, keysym.T}
	got := feedAll(st, seq)
	want := []Status{StatusComposing, StatusComposing, StatusComposing, StatusComposing, StatusComposed}
	if !statusesEqual(got, want) {
		t.Fatalf("statuses = %v, want %v", got, want)
	}
	var buf [8]byte
	if n := st.UTF8(buf[:]); string(buf[:n]) != "@" {
		t.Errorf("UTF8() = %q, want %q", buf[:n], "@")
	}
	if ks, ok := st.OneSym(); !ok || ks != keysym.At {
		t.Errorf("OneSym() = %v, %v, want %v, true", ks, ok, keysym.At)
	}
}

// Scenario 6: 7, a, b -> all NOTHING.
func TestScenario6(t *testing.T) {
	st := NewState(standardTable(t))
	got := feedAll(st, []keysym.Keysym{keysym.Seven, keysym.LowerA, keysym.LowerB})
	want := []Status{StatusNothing, StatusNothing, StatusNothing}
	if !statusesEqual(got, want) {
		t.Fatalf("statuses = %v, want %v", got, want)
	}
	var buf [8]byte
	if n := st.UTF8(buf[:]); n != 0 {
		t.Errorf("UTF8() = %d bytes, want 0", n)
	}
	if _, ok := st.OneSym(); ok {
		t.Errorf("OneSym() reported a result, want none")
	}
}

// Scenario 7: Multi_key, apostrophe, 7, 7 -> COMPOSING, COMPOSING,
// CANCELLED, NOTHING.
func TestScenario7(t *testing.T) {
	st := NewState(standardTable(t))
	seq := []keysym.Keysym{keysym.MultiKey, keysym.Apostrophe, keysym.Seven, keysym.Seven}
	got := feedAll(st, seq)
	want := []Status{StatusComposing, StatusComposing, StatusCancelled, StatusNothing}
	if !statusesEqual(got, want) {
		t.Fatalf("statuses = %v, want %v", got, want)
	}
}
