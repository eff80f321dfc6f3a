package nfa

import (
	"encoding/binary"

	"github.com/coregx/linegrep/internal/sparse"
)

// PikeVM executes a compiled NFA over one input line at a time. It maintains
// the set of live paths and advances all of them in lockstep, one byte per
// step, so matching is O(paths * len(line)) with no backtracking.
//
// Each path carries its own capture state: the bytes captured per group, the
// set of groups currently capturing, and per-backreference progress. Paths
// that diverge never observe each other's capture mutations.
//
// The PikeVM itself is immutable after creation and safe to share across
// goroutines; every SearchLine call owns its per-search state.
type PikeVM struct {
	nfa   *NFA
	stats *Stats
}

// NewPikeVM creates a PikeVM for the given NFA.
func NewPikeVM(n *NFA) *PikeVM {
	return &PikeVM{nfa: n}
}

// SetStats attaches a counter sink. Pass nil to disable collection.
func (p *PikeVM) SetStats(s *Stats) {
	p.stats = s
}

// NFA returns the automaton this VM executes.
func (p *PikeVM) NFA() *NFA {
	return p.nfa
}

// Match is the result of searching one line: whether a match was found and,
// if so, the byte span [Start, End) of the match on the line.
type Match struct {
	Found bool
	Start int
	End   int
}

// capset is one path's capture state. text is indexed by group id (slot 0
// unused); a group that never captured holds the empty string. Captured text
// is stored as string so diverged paths can share it immutably; mutation
// always goes through clone.
type capset struct {
	text []string
	open []bool
	br   []int
}

func newCapset(groups int) capset {
	if groups == 0 {
		return capset{}
	}
	return capset{
		text: make([]string, groups+1),
		open: make([]bool, groups+1),
		br:   make([]int, groups+1),
	}
}

func (c capset) clone() capset {
	if len(c.text) == 0 {
		return c
	}
	d := capset{
		text: make([]string, len(c.text)),
		open: make([]bool, len(c.open)),
		br:   make([]int, len(c.br)),
	}
	copy(d.text, c.text)
	copy(d.open, c.open)
	copy(d.br, c.br)
	return d
}

func (c capset) anyOpen() bool {
	for _, o := range c.open {
		if o {
			return true
		}
	}
	return false
}

// thread is one live path: the state it is parked on plus its capture state.
type thread struct {
	state StateID
	caps  capset
}

// threadKey serializes the path identity used for deduplication: two paths
// with the same state, captured text, open set and backreference progress
// are interchangeable and only one is kept per step.
func threadKey(id StateID, caps capset) string {
	buf := make([]byte, 4, 4+16*len(caps.text))
	binary.LittleEndian.PutUint32(buf, uint32(id))
	for g := 1; g < len(caps.text); g++ {
		buf = binary.AppendUvarint(buf, uint64(len(caps.text[g])))
		buf = append(buf, caps.text[g]...)
		if caps.open[g] {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		buf = binary.AppendUvarint(buf, uint64(caps.br[g]))
	}
	return string(buf)
}

// run is the per-search state: the two swapped thread lists, the per-closure
// visited set, the per-list dedup set, and the match bookkeeping.
type run struct {
	vm      *PikeVM
	current []thread
	next    []thread
	visited *sparse.SparseSet
	seen    map[string]struct{}

	matchStart int
	matched    bool
	matchEnd   int
}

// SearchLine reports whether the pattern matches anywhere on the line and,
// when it does, the span of the first match discovered by the lockstep walk.
// Lines are expected without their terminating newline.
func (p *PikeVM) SearchLine(line []byte) Match {
	n := p.nfa
	r := &run{
		vm:      p,
		visited: sparse.NewSparseSet(uint32(n.States())),
		seen:    make(map[string]struct{}),
	}

	anchored := n.AnchoredAtStart()
	entry := n.Start()
	if anchored {
		// The anchor is honored by never restarting at a later offset.
		entry = n.State(entry).Out()
	}

	if p.stats != nil {
		p.stats.RecordLine()
	}

	r.seed(entry)

	for i := 0; i <= len(line); i++ {
		if p.stats != nil {
			p.stats.observeActive(len(r.current))
		}

		if i == len(line) {
			r.finish(i)
			break
		}

		if !r.matched && !anchored && len(r.current) == 0 {
			// Previous attempt is dead; start a fresh one here.
			r.matchStart = i
			r.seed(entry)
		}

		r.step(line[i], i)

		if len(r.current) == 0 {
			if r.matched || anchored {
				break
			}
			// The attempt died on this byte. Retry with an attempt starting
			// at this offset so scanning advances without skipping a byte.
			r.matchStart = i
			r.seed(entry)
			r.step(line[i], i)
			if len(r.current) == 0 && r.matched {
				break
			}
		}
	}

	if r.matched {
		return Match{Found: true, Start: r.matchStart, End: r.matchEnd}
	}
	return Match{}
}

// seed replaces the current list with the epsilon closure of the entry state
// and a fresh capture state.
func (r *run) seed(entry StateID) {
	r.current = r.current[:0]
	clear(r.seen)
	r.closureInto(&r.current, entry, newCapset(r.vm.nfa.NumCaptures()))
}

// step advances every live path over byte b. Paths are processed in priority
// order; the first path found parked on the accepting state records the match
// and cuts all lower-priority paths, while higher-priority paths already
// advanced keep running and may extend the match on a later step.
// i is the number of bytes consumed before this step.
func (r *run) step(b byte, i int) {
	if r.vm.stats != nil {
		r.vm.stats.addStep(len(r.current))
	}

	r.next = r.next[:0]
	clear(r.seen)

loop:
	for _, t := range r.current {
		s := r.vm.nfa.State(t.state)

		var ok bool
		switch s.kind {
		case KindMatch:
			// Record the match and cut the remaining, lower-priority paths.
			// Paths already advanced into next outrank this one and keep
			// running; if one reaches the accepting state on a later step it
			// extends the recorded match.
			r.matched = true
			r.matchEnd = i
			break loop
		case KindLiteral:
			ok = s.b == b
		case KindAny:
			ok = true
		case KindDigit:
			ok = b >= '0' && b <= '9'
		case KindWord:
			ok = isWordByte(b)
		case KindClass:
			ok = s.set.Contains(b)
		case KindNegClass:
			ok = !s.set.Contains(b)
		case KindBackref:
			r.stepBackref(t, s, b)
			continue
		default:
			// Anchors parked mid-pattern never consume; the path dies.
			continue
		}
		if !ok {
			continue
		}

		caps := t.caps
		if caps.anyOpen() {
			caps = caps.clone()
			for g := 1; g < len(caps.open); g++ {
				if caps.open[g] {
					caps.text[g] += string(b)
				}
			}
		}
		r.closureInto(&r.next, s.out, caps)
	}

	r.current, r.next = r.next, r.current
}

// stepBackref advances a path parked on a backreference state. The path dies
// when the referenced group is still capturing, captured nothing, or the next
// expected byte differs. Bytes re-matched by the backreference feed every
// open group except the referenced one.
func (r *run) stepBackref(t thread, s *State, b byte) {
	k := int(s.group)
	if k >= len(t.caps.text) {
		return
	}
	if t.caps.open[k] {
		return
	}
	txt := t.caps.text[k]
	if txt == "" {
		return
	}
	if txt[t.caps.br[k]] != b {
		return
	}

	caps := t.caps.clone()
	for g := 1; g < len(caps.open); g++ {
		if caps.open[g] && g != k {
			caps.text[g] += string(b)
		}
	}
	caps.br[k]++
	if caps.br[k] == len(txt) {
		caps.br[k] = 0
		r.closureInto(&r.next, s.out, caps)
	} else {
		r.appendThread(&r.next, t.state, caps)
	}
}

// finish handles end of input: paths parked on the end-of-input assertion
// advance through it, all others carry over unchanged, and the resulting
// list is scanned for the accepting state. i is len(line).
func (r *run) finish(i int) {
	r.next = r.next[:0]
	clear(r.seen)

	for _, t := range r.current {
		s := r.vm.nfa.State(t.state)
		if s.kind == KindAnchorEnd {
			r.closureInto(&r.next, s.out, t.caps)
		} else {
			r.appendThread(&r.next, t.state, t.caps)
		}
	}

	for _, t := range r.next {
		if r.vm.nfa.State(t.state).kind == KindMatch {
			r.matched = true
			r.matchEnd = i
			break
		}
	}
}

// closureInto adds the epsilon closure of id to the list: split states are
// expanded through both branches (preferred branch first), capture markers
// are walked through transparently while updating the path's capture state,
// and every other state is parked on the list. The visited set bounds each
// expansion so quantifier cycles cannot loop.
func (r *run) closureInto(list *[]thread, id StateID, caps capset) {
	r.visited.Clear()
	r.addThread(list, id, caps)
}

func (r *run) addThread(list *[]thread, id StateID, caps capset) {
	if id == InvalidState || r.visited.Contains(uint32(id)) {
		return
	}
	r.visited.Insert(uint32(id))

	s := r.vm.nfa.State(id)
	if g := s.capOpen; g != 0 && int(g) < len(caps.text) {
		caps = caps.clone()
		caps.text[g] = ""
		caps.open[g] = true
	}
	if g := s.capClose; g != 0 && int(g) < len(caps.open) {
		caps = caps.clone()
		caps.open[g] = false
	}

	if s.kind == KindSplit {
		r.addThread(list, s.out, caps)
		r.addThread(list, s.alt, caps)
		return
	}

	r.appendThread(list, id, caps)
}

// appendThread parks a path on the list unless an identical path is already
// there.
func (r *run) appendThread(list *[]thread, id StateID, caps capset) {
	key := threadKey(id, caps)
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	*list = append(*list, thread{state: id, caps: caps})
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
