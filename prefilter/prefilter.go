// Package prefilter builds cheap candidate filters from literals extracted
// out of a pattern. A prefilter answers "could this line possibly match?";
// a negative answer skips the NFA entirely, which is where most grep time
// goes on miss-heavy inputs.
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/linegrep/literal"
)

// Prefilter rejects lines that cannot contain a match.
type Prefilter interface {
	// IsCandidate reports whether the line may contain a match and must be
	// handed to the full engine. False negatives are not allowed; false
	// positives are.
	IsCandidate(line []byte) bool
}

// Single searches for one mandatory literal with bytes.Index.
type Single struct {
	needle []byte
}

// NewSingle creates a single-literal prefilter.
func NewSingle(needle []byte) *Single {
	return &Single{needle: needle}
}

// Needle returns the literal this prefilter searches for.
func (s *Single) Needle() []byte { return s.needle }

// IsCandidate implements Prefilter.
func (s *Single) IsCandidate(line []byte) bool {
	return bytes.Contains(line, s.needle)
}

// Find returns the span of the first occurrence of the literal.
func (s *Single) Find(line []byte) (start, end int, ok bool) {
	i := bytes.Index(line, s.needle)
	if i < 0 {
		return 0, 0, false
	}
	return i, i + len(s.needle), true
}

// Multi gates lines on a set of literals using an Aho-Corasick automaton,
// so alternations like cat|dog|mouse cost one pass over the line instead of
// one search per branch.
type Multi struct {
	auto *ahocorasick.Automaton
}

// IsCandidate implements Prefilter.
func (m *Multi) IsCandidate(line []byte) bool {
	return m.auto.IsMatch(line)
}

// FromSeq builds the appropriate prefilter for an extracted literal
// sequence: bytes.Index for a single literal, Aho-Corasick for several.
// Returns nil when the sequence is empty or the automaton cannot be built.
func FromSeq(seq *literal.Seq) Prefilter {
	if seq == nil || seq.Len() == 0 {
		return nil
	}
	lits := seq.Literals()
	if len(lits) == 1 {
		return NewSingle(lits[0])
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &Multi{auto: auto}
}
