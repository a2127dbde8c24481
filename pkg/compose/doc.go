// Package compose compiles X11-style Compose files into a compact trie and
// drives that trie at runtime as a keysym-by-keysym state machine.
//
// Construction happens through the three NewFrom* functions: NewFromBuffer
// parses an in-memory Compose source, NewFromFile reads one from disk, and
// NewFromLocale discovers the right file to read the way libX11 does
// ($XCOMPOSEFILE, then $HOME/.XCompose, then the per-locale system file).
// All three return a *Table: an immutable, read-only trie any number of
// State values may share.
//
// A State is constructed over a Table with NewState and driven one keysym
// at a time with Feed, which reports whether that keysym advanced a
// sequence, completed one, cancelled one, or did nothing. UTF8 and OneSym
// retrieve the result of a COMPOSED status.
package compose
