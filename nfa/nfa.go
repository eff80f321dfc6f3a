// Package nfa implements a byte-oriented epsilon-NFA regex engine with
// capture groups and backreferences.
//
// Patterns are compiled by a recursive-descent parser into a flat arena of
// states addressed by StateID, and executed by a PikeVM that walks all live
// paths in lockstep over the input, carrying per-path capture state so
// backreferences can be resolved during the walk.
package nfa

import (
	"fmt"
	"math/bits"
)

// StateID uniquely identifies an NFA state.
// It is an index into the NFA's flat state arena.
type StateID uint32

// InvalidState marks an unwired edge. Edges still pointing at InvalidState
// during construction are the fragment's dangling edges; none survive into
// a compiled NFA.
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies the type of NFA state and determines which transitions
// and payload fields are valid.
type StateKind uint8

const (
	// KindMatch is the accepting state. A path parked here has matched.
	KindMatch StateKind = iota

	// KindLiteral consumes exactly one byte equal to the state's byte.
	KindLiteral

	// KindAny consumes any single byte.
	KindAny

	// KindDigit consumes an ASCII digit 0-9.
	KindDigit

	// KindWord consumes an ASCII alphanumeric byte or '_'.
	KindWord

	// KindClass consumes a byte contained in the state's byte set.
	KindClass

	// KindNegClass consumes a byte not contained in the state's byte set.
	KindNegClass

	// KindAnchorStart is the zero-width start-of-input assertion.
	KindAnchorStart

	// KindAnchorEnd is the zero-width end-of-input assertion.
	KindAnchorEnd

	// KindSplit is an epsilon transition to two successor states.
	// Capture-group boundary markers are split-kind states with only the
	// primary edge wired and a capture annotation set.
	KindSplit

	// KindBackref consumes the bytes previously captured by a group,
	// one byte per simulation step.
	KindBackref
)

// String returns a human-readable representation of the StateKind.
func (k StateKind) String() string {
	switch k {
	case KindMatch:
		return "Match"
	case KindLiteral:
		return "Literal"
	case KindAny:
		return "Any"
	case KindDigit:
		return "Digit"
	case KindWord:
		return "Word"
	case KindClass:
		return "Class"
	case KindNegClass:
		return "NegClass"
	case KindAnchorStart:
		return "AnchorStart"
	case KindAnchorEnd:
		return "AnchorEnd"
	case KindSplit:
		return "Split"
	case KindBackref:
		return "Backref"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// ByteSet is a fixed 256-bit set of byte values, used by character classes.
type ByteSet [4]uint64

// Add inserts b into the set.
func (s *ByteSet) Add(b byte) {
	s[b>>6] |= 1 << (b & 63)
}

// Contains reports whether b is in the set.
func (s *ByteSet) Contains(b byte) bool {
	return s[b>>6]&(1<<(b&63)) != 0
}

// Len returns the number of bytes in the set.
func (s *ByteSet) Len() int {
	return bits.OnesCount64(s[0]) + bits.OnesCount64(s[1]) +
		bits.OnesCount64(s[2]) + bits.OnesCount64(s[3])
}

// State is a single NFA state. The kind determines which fields are valid.
type State struct {
	id   StateID
	kind StateKind

	// For KindLiteral: the byte to consume.
	b byte

	// For KindClass / KindNegClass: the literal byte set.
	set ByteSet

	// out is the primary successor. alt is the alternative successor and is
	// only wired on KindSplit states.
	out, alt StateID

	// For KindBackref: the referenced capture group.
	group uint32

	// Capture-group boundary annotations. Zero means no annotation; a
	// non-zero value is the group id whose capture opens/closes when the
	// epsilon closure walks through this state.
	capOpen, capClose uint32
}

// ID returns the state's identifier.
func (s *State) ID() StateID { return s.id }

// Kind returns the state's type.
func (s *State) Kind() StateKind { return s.kind }

// Byte returns the literal byte for KindLiteral states.
func (s *State) Byte() byte { return s.b }

// Set returns the byte set for KindClass / KindNegClass states.
func (s *State) Set() *ByteSet { return &s.set }

// Out returns the primary successor state.
func (s *State) Out() StateID { return s.out }

// Alt returns the alternative successor for KindSplit states,
// or InvalidState when the state has no alternative edge.
func (s *State) Alt() StateID { return s.alt }

// Group returns the referenced capture group for KindBackref states.
func (s *State) Group() uint32 { return s.group }

// CaptureOpen returns the group whose capture begins at this state,
// or 0 when the state carries no open annotation.
func (s *State) CaptureOpen() uint32 { return s.capOpen }

// CaptureClose returns the group whose capture ends at this state,
// or 0 when the state carries no close annotation.
func (s *State) CaptureClose() uint32 { return s.capClose }

// NFA is a compiled pattern: a flat arena of states plus the entry point.
// It is immutable after compilation and safe to share across goroutines.
type NFA struct {
	states   []State
	start    StateID
	captures int
	pattern  string
}

// Pattern returns the source pattern the NFA was compiled from.
func (n *NFA) Pattern() string { return n.pattern }

// Start returns the entry state.
func (n *NFA) Start() StateID { return n.start }

// States returns the number of states in the arena.
func (n *NFA) States() int { return len(n.states) }

// State returns the state with the given id.
func (n *NFA) State(id StateID) *State { return &n.states[id] }

// NumCaptures returns the number of capture groups in the pattern.
// Group ids are exactly 1..NumCaptures.
func (n *NFA) NumCaptures() int { return n.captures }

// AnchoredAtStart reports whether the pattern begins with '^'. Anchored
// patterns are only ever attempted at offset 0, which the host can use to
// reason about scanning cost.
func (n *NFA) AnchoredAtStart() bool {
	return n.states[n.start].kind == KindAnchorStart
}
