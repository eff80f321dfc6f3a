package nfa

import (
	"github.com/coregx/linegrep/internal/conv"
)

// edge addresses one outgoing edge slot of a state: the primary out edge,
// or the alternative edge of a split state.
type edge struct {
	state StateID
	alt   bool
}

// Fragment is a sub-graph under construction: an entry state plus the ordered
// list of edge slots not yet wired to a successor. Fragments only exist
// during compilation; every dangling edge is resolved before Build.
type Fragment struct {
	start    StateID
	dangling []edge
}

// Builder constructs an NFA incrementally. States live in a flat arena and
// refer to each other by index, so quantifier cycles are plain index
// references and need no ownership bookkeeping.
type Builder struct {
	states []State
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{states: make([]State, 0, 16)}
}

func (b *Builder) add(s State) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	s.id = id
	b.states = append(b.states, s)
	return id
}

// AddMatch adds the accepting state.
func (b *Builder) AddMatch() StateID {
	return b.add(State{kind: KindMatch, out: InvalidState, alt: InvalidState})
}

// AddLiteral adds a state consuming the single byte c.
func (b *Builder) AddLiteral(c byte) StateID {
	return b.add(State{kind: KindLiteral, b: c, out: InvalidState, alt: InvalidState})
}

// AddAny adds a state consuming any byte.
func (b *Builder) AddAny() StateID {
	return b.add(State{kind: KindAny, out: InvalidState, alt: InvalidState})
}

// AddDigit adds a state consuming an ASCII digit.
func (b *Builder) AddDigit() StateID {
	return b.add(State{kind: KindDigit, out: InvalidState, alt: InvalidState})
}

// AddWord adds a state consuming an ASCII word byte.
func (b *Builder) AddWord() StateID {
	return b.add(State{kind: KindWord, out: InvalidState, alt: InvalidState})
}

// AddClass adds a character-class state. The set holds literal bytes only;
// negated reports bytes outside the set.
func (b *Builder) AddClass(set ByteSet, negated bool) StateID {
	kind := KindClass
	if negated {
		kind = KindNegClass
	}
	return b.add(State{kind: kind, set: set, out: InvalidState, alt: InvalidState})
}

// AddAnchorStart adds the zero-width start-of-input assertion.
func (b *Builder) AddAnchorStart() StateID {
	return b.add(State{kind: KindAnchorStart, out: InvalidState, alt: InvalidState})
}

// AddAnchorEnd adds the zero-width end-of-input assertion.
func (b *Builder) AddAnchorEnd() StateID {
	return b.add(State{kind: KindAnchorEnd, out: InvalidState, alt: InvalidState})
}

// AddSplit adds an epsilon state with two successors. Either successor may be
// InvalidState to leave that edge dangling. The out edge is the preferred
// branch: the closure follows it first, which is what makes quantifier loops
// greedy.
func (b *Builder) AddSplit(out, alt StateID) StateID {
	return b.add(State{kind: KindSplit, out: out, alt: alt})
}

// AddCaptureOpen adds the epsilon marker that begins capturing group id.
func (b *Builder) AddCaptureOpen(id uint32) StateID {
	return b.add(State{kind: KindSplit, capOpen: id, out: InvalidState, alt: InvalidState})
}

// AddCaptureClose adds the epsilon marker that stops capturing group id.
func (b *Builder) AddCaptureClose(id uint32) StateID {
	return b.add(State{kind: KindSplit, capClose: id, out: InvalidState, alt: InvalidState})
}

// AddBackref adds a state that re-matches the text captured by group.
func (b *Builder) AddBackref(group uint32) StateID {
	return b.add(State{kind: KindBackref, group: group, out: InvalidState, alt: InvalidState})
}

// Patch wires a single dangling edge to the given target.
func (b *Builder) Patch(e edge, to StateID) {
	if e.alt {
		b.states[e.state].alt = to
	} else {
		b.states[e.state].out = to
	}
}

// PatchAll wires every dangling edge in the list to the given target.
func (b *Builder) PatchAll(edges []edge, to StateID) {
	for _, e := range edges {
		b.Patch(e, to)
	}
}

// SetOut wires the primary edge of a state directly.
func (b *Builder) SetOut(id, to StateID) {
	b.states[id].out = to
}

// Build finalizes the arena into an immutable NFA. The caller must have
// resolved every dangling edge first; Build verifies this.
func (b *Builder) Build(start StateID, captures int, pattern string) (*NFA, error) {
	for i := range b.states {
		s := &b.states[i]
		if s.kind == KindMatch {
			continue
		}
		if s.out == InvalidState {
			return nil, &BuildError{Message: "dangling out edge", StateID: s.id}
		}
		if s.kind == KindSplit && s.alt == InvalidState && s.capOpen == 0 && s.capClose == 0 {
			return nil, &BuildError{Message: "dangling alt edge", StateID: s.id}
		}
	}
	return &NFA{
		states:   b.states,
		start:    start,
		captures: captures,
		pattern:  pattern,
	}, nil
}
