// Package keysym provides the keyboard-symbol primitives that the compose
// package treats as an external collaborator: naming, UTF-8 conversion, and
// modifier classification. It implements a practical subset of the X11
// keysym namespace, not the full table.
package keysym

import "unicode/utf8"

// Keysym is an opaque 32-bit identifier naming a keyboard symbol.
type Keysym uint32

// NoSymbol is the sentinel keysym; it never names a real key.
const NoSymbol Keysym = 0

// Below is a practical slice of the X11 keysymdef.h namespace: the Latin-1
// block (which is its own keysym range, values 0x20-0xff), a handful of
// "dead" prefix keys, modifiers, and the named keysyms spec.md's concrete
// scenarios exercise (Multi_key, dead_tilde, dead_acute, asciitilde, acute,
// at, digits, letters).
const (
	Space        Keysym = 0x020
	Apostrophe   Keysym = 0x027
	Zero         Keysym = 0x030
	Seven        Keysym = 0x037
	At           Keysym = 0x040
	A            Keysym = 0x041
	AsciiTilde   Keysym = 0x07e
	LowerA       Keysym = 0x061
	LowerB       Keysym = 0x062
	LowerT       Keysym = 0x074
	Acute        Keysym = 0x0b4
	T            Keysym = 0x054

	ShiftL    Keysym = 0xffe1
	ShiftR    Keysym = 0xffe2
	ControlL  Keysym = 0xffe3
	ControlR  Keysym = 0xffe4
	CapsLock  Keysym = 0xffe5
	ShiftLock Keysym = 0xffe6
	MetaL     Keysym = 0xffe7
	MetaR     Keysym = 0xffe8
	AltL      Keysym = 0xffe9
	AltR      Keysym = 0xffea
	SuperL    Keysym = 0xffeb
	SuperR    Keysym = 0xffec
	HyperL    Keysym = 0xffed
	HyperR    Keysym = 0xffee
	NumLock   Keysym = 0xff7f

	MultiKey  Keysym = 0xff20
	DeadTilde Keysym = 0xfe53
	DeadAcute Keysym = 0xfe51
)

// names holds the subset of keysym names this module can resolve, in both
// directions. Real implementations carry the full keysymdef.h table; this one
// carries enough of it to compile real-world Compose files for the sequences
// spec.md exercises, plus a few ASCII letters and digits; other names are
// unknown to FromName.
var names = map[string]Keysym{
	"space":        Space,
	"apostrophe":   Apostrophe,
	"0":            Zero,
	"7":            Seven,
	"at":           At,
	"A":            A,
	"T":            T,
	"a":            LowerA,
	"b":            LowerB,
	"t":            LowerT,
	"asciitilde":   AsciiTilde,
	"acute":        Acute,
	"Shift_L":      ShiftL,
	"Shift_R":      ShiftR,
	"Control_L":    ControlL,
	"Control_R":    ControlR,
	"Caps_Lock":    CapsLock,
	"Shift_Lock":   ShiftLock,
	"Meta_L":       MetaL,
	"Meta_R":       MetaR,
	"Alt_L":        AltL,
	"Alt_R":        AltR,
	"Super_L":      SuperL,
	"Super_R":      SuperR,
	"Hyper_L":      HyperL,
	"Hyper_R":      HyperR,
	"Num_Lock":     NumLock,
	"Multi_key":    MultiKey,
	"dead_tilde":   DeadTilde,
	"dead_acute":   DeadAcute,
	"NoSymbol":     NoSymbol,
}

var byValue map[Keysym]string

func init() {
	byValue = make(map[Keysym]string, len(names))
	for n, k := range names {
		if _, ok := byValue[k]; !ok {
			byValue[k] = n
		}
	}
}

// FromName resolves a keysym name (as it appears inside "<...>" on an LHS, or
// bare on an RHS) to its Keysym value. The second return is false if the name
// is unknown.
func FromName(name string) (Keysym, bool) {
	k, ok := names[name]
	return k, ok
}

// Name returns the canonical name for k, or "" if none is known.
func Name(k Keysym) string {
	return byValue[k]
}

// modifierSet lists the X11 keysyms treated as modifiers: held keys
// that never themselves start or extend a compose sequence.
var modifierSet = map[Keysym]bool{
	ShiftL: true, ShiftR: true, ControlL: true, ControlR: true,
	CapsLock: true, ShiftLock: true, MetaL: true, MetaR: true,
	AltL: true, AltR: true, SuperL: true, SuperR: true,
	HyperL: true, HyperR: true, NumLock: true,
}

// IsModifier reports whether k is a modifier keysym, one that Feed must
// silently ignore rather than use to advance or reset the compose state.
//
// Multi_key and the dead_* keys are deliberately not modifiers: they are
// ordinary (if special-purpose) keys that participate in sequences.
func IsModifier(k Keysym) bool {
	return modifierSet[k]
}

// ToUTF8 writes the UTF-8 encoding of the Unicode code point k folds to into
// buf, returning the number of bytes that would have been written (which may
// exceed len(buf); callers detect truncation by comparing the return value
// against len(buf), matching the C snprintf convention spec.md's get_utf8
// mirrors). If k does not fold to a code point, it writes nothing and returns
// 0.
func ToUTF8(k Keysym, buf []byte) int {
	r, ok := toRune(k)
	if !ok {
		return 0
	}
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	copy(buf, tmp[:n])
	return n
}

// toRune folds a keysym to the Unicode code point it denotes, per the
// standard X11 keysym-to-Unicode rule: keysyms below 0x100 are Latin-1 and
// map 1:1; keysyms in 0x01000100-0x0110ffff carry an explicit Unicode code
// point in their low 24 bits. Other named keysyms would need a table lookup,
// which this package does not carry, so they do not fold.
func toRune(k Keysym) (rune, bool) {
	switch {
	case k == NoSymbol:
		return 0, false
	case k < 0x100:
		return rune(k), true
	case k >= 0x01000100 && k <= 0x0110ffff:
		return rune(k & 0x00ffffff), true
	}
	return 0, false
}
