package compose

// This file implements the runtime compose state machine: spec.md §4.6's
// Feed/Status/UTF8/OneSym surface. It is the zero-allocation steady-state
// counterpart to the construction-time parser above; Feed never allocates
// and never fails, matching the teacher's own split between construction
// errors (returned) and steady-state operation (infallible) that
// pkg/yang/entry.go draws between Entry-building and Entry-querying methods.

import "github.com/xkbcompose/compose/pkg/keysym"

// Status describes the outcome of the most recent Feed call.
type Status int

const (
	// StatusNothing means the keysym did not extend any sequence; the state
	// machine has reset to the root and the keysym should be processed
	// normally by the caller.
	StatusNothing Status = iota
	// StatusComposing means the keysym extended a sequence that is not yet
	// complete; the caller should suppress the keysym and wait for more
	// input.
	StatusComposing
	// StatusComposed means the keysym completed a sequence; UTF8 and OneSym
	// now report the result, and the caller should suppress the keysym.
	StatusComposed
	// StatusCancelled means the keysym broke off an in-progress sequence
	// without completing it; the caller should suppress the keysym, and the
	// state machine has reset to the root.
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusNothing:
		return "nothing"
	case StatusComposing:
		return "composing"
	case StatusComposed:
		return "composed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "?"
	}
}

// State is one compose sequence in progress against a Table. The zero value
// is not valid; use NewState. A State holds no allocations of its own beyond
// its initial construction and is not safe for concurrent use, though many
// States may share one read-only Table concurrently.
type State struct {
	table *Table

	context     int
	prevContext int
	status      Status
	flags       StateFlags
}

// NewState returns a State positioned at table's root, ready to Feed.
func NewState(table *Table) *State {
	return NewStateWithFlags(table, NoStateFlags)
}

// NewStateWithFlags is NewState with an explicit StateFlags value, for
// callers that want Flags to report something other than NoStateFlags once
// non-zero flags are defined. flags is not validated here; use
// ValidateStateFlags first if rejecting unknown flags matters to the
// caller.
func NewStateWithFlags(table *Table, flags StateFlags) *State {
	return &State{table: table, context: Root, prevContext: Root, flags: flags}
}

// Table returns the Table this State composes against.
func (st *State) Table() *Table { return st.table }

// Flags returns the StateFlags this State was constructed with.
func (st *State) Flags() StateFlags { return st.flags }

// Reset returns the state machine to its initial, root position, as if newly
// constructed. It does not change which Table the state composes against.
func (st *State) Reset() {
	st.context = Root
	st.prevContext = Root
	st.status = StatusNothing
}

// Status returns the outcome of the most recently fed keysym.
func (st *State) Status() Status { return st.status }

// Feed advances the state machine by one keysym and returns the resulting
// Status (also retrievable afterward via Status). Feed never fails: an
// unrecognized keysym simply cancels or resets the sequence in progress.
//
// Modifier keysyms (Shift_L, Caps_Lock, and similar) are swallowed
// entirely — the state machine is left exactly as it was and its unchanged
// status is returned — per spec.md §9's deliberately preserved behavior.
// Multi_key and the dead_* keys are not modifiers and participate normally.
func (st *State) Feed(k keysym.Keysym) Status {
	if keysym.IsModifier(k) {
		return st.status
	}

	// A terminal status from the previous Feed means context is sitting on a
	// finished leaf (COMPOSED) or was just unwound (CANCELLED); either way
	// the next keysym starts a fresh walk from the root, per libxkbcommon's
	// xkb_compose_state_feed reset-on-COMPOSED/CANCELLED behavior.
	if st.status == StatusComposed || st.status == StatusCancelled {
		st.context = Root
		st.prevContext = Root
	}

	child := st.table.findChild(st.context, k)
	if child == 0 {
		wasComposing := st.context != Root
		st.prevContext = st.context
		st.context = Root
		if wasComposing {
			st.status = StatusCancelled
		} else {
			st.status = StatusNothing
		}
		return st.status
	}

	st.prevContext = st.context
	st.context = child

	if st.table.successorOf(child) != 0 {
		st.status = StatusComposing
		return st.status
	}

	st.status = StatusComposed
	return st.status
}

// UTF8 writes the composed result's UTF-8 text into buf and returns the
// number of bytes that would have been written, which may exceed len(buf);
// callers detect truncation the same way as keysym.ToUTF8. It is only
// meaningful immediately after a Feed call that returned StatusComposed; at
// any other time it returns 0.
func (st *State) UTF8(buf []byte) int {
	if st.status != StatusComposed {
		return 0
	}
	offset := st.table.utf8OffsetOf(st.context)
	if offset == 0 {
		return 0
	}
	s := st.table.stringAt(offset)
	n := copy(buf, s)
	if len(buf) < len(s) {
		return len(s)
	}
	return n
}

// OneSym returns the replacement keysym for the just-composed sequence, and
// whether one was defined. Like UTF8, it is only meaningful immediately
// after a Feed call that returned StatusComposed.
func (st *State) OneSym() (keysym.Keysym, bool) {
	if st.status != StatusComposed {
		return keysym.NoSymbol, false
	}
	ks := st.table.replacementOf(st.context)
	if ks == keysym.NoSymbol {
		return keysym.NoSymbol, false
	}
	return ks, true
}

// findChild searches the sibling chain of parent's children for one matching
// k, returning 0 if there is none.
func (t *Table) findChild(parent int, k keysym.Keysym) int {
	for i := t.nodes[parent].successor; i != 0; i = t.nodes[i].next {
		if t.nodes[i].keysym == k {
			return i
		}
	}
	return 0
}
