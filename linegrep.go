// Package linegrep provides a line-oriented pattern matcher: a byte-level
// regex engine with capture groups and backreferences, built for the
// one-line-at-a-time searching a grep does.
//
// A pattern is compiled once into an immutable NFA and reused across lines:
//
//	re, err := linegrep.Compile(`(cat|dog)s?`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m := re.SearchLine([]byte("two dogs here"))
//	if m.Found {
//	    fmt.Println(m.Start, m.End) // 4 8
//	}
//
// Supported syntax: literals, '.', '^', '$', bracket expressions with
// literal contents (no ranges), '\d', '\w', escaped literals, capturing
// groups, alternation, the quantifiers '*', '+', '?', and backreferences
// \1..\9. The engine treats input as bytes throughout.
//
// Compile also extracts mandatory literals from the pattern and wires a
// prefilter in front of the NFA: lines that cannot contain a match are
// rejected by a substring or Aho-Corasick scan without simulating anything.
package linegrep

import (
	"github.com/coregx/linegrep/literal"
	"github.com/coregx/linegrep/nfa"
	"github.com/coregx/linegrep/prefilter"
)

// Match is the result of searching one line. When Found, [Start, End) is
// the byte span of the match on the line.
type Match = nfa.Match

// Regex is a compiled pattern. It is immutable and safe for concurrent use;
// each SearchLine call owns its own simulation state.
type Regex struct {
	pattern string
	nfa     *nfa.NFA
	vm      *nfa.PikeVM
	pre     prefilter.Prefilter
	// exact is set when the whole pattern is one literal: the prefilter's
	// answer is the match and the VM never runs.
	exact *prefilter.Single
	stats *nfa.Stats
}

// Compile parses a pattern into a Regex. Malformed patterns return a
// *nfa.ParseError; use errors.Is against the nfa error kinds to classify.
func Compile(pattern string) (*Regex, error) {
	n, err := nfa.Compile(pattern)
	if err != nil {
		return nil, err
	}

	re := &Regex{
		pattern: pattern,
		nfa:     n,
		vm:      nfa.NewPikeVM(n),
	}

	if seq := literal.Extract(pattern); seq != nil {
		re.pre = prefilter.FromSeq(seq)
		if seq.Complete() && seq.Len() == 1 {
			if s, ok := re.pre.(*prefilter.Single); ok {
				re.exact = s
			}
		}
	}

	return re, nil
}

// MustCompile is Compile, panicking on error. Intended for patterns known
// good at build time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(`linegrep: Compile(` + pattern + `): ` + err.Error())
	}
	return re
}

// SearchLine reports whether the pattern matches anywhere on the line and
// the span of the first match discovered. The line must not include its
// terminating newline. Results are deterministic and independent of prior
// calls.
func (re *Regex) SearchLine(line []byte) Match {
	if re.exact != nil {
		if re.stats != nil {
			re.stats.RecordLine()
		}
		if s, e, ok := re.exact.Find(line); ok {
			return Match{Found: true, Start: s, End: e}
		}
		return Match{}
	}

	if re.pre != nil && !re.pre.IsCandidate(line) {
		if re.stats != nil {
			re.stats.RecordLine()
		}
		return Match{}
	}

	return re.vm.SearchLine(line)
}

// SearchLineString is SearchLine for string input.
func (re *Regex) SearchLineString(line string) Match {
	return re.SearchLine([]byte(line))
}

// String returns the source pattern.
func (re *Regex) String() string {
	return re.pattern
}

// AnchoredAtStart reports whether the pattern begins with '^'. Anchored
// patterns match at offset 0 or not at all, which hosts can use to reason
// about scanning cost.
func (re *Regex) AnchoredAtStart() bool {
	return re.nfa.AnchoredAtStart()
}

// NumCaptures returns the number of capture groups in the pattern.
func (re *Regex) NumCaptures() int {
	return re.nfa.NumCaptures()
}

// SetStats attaches a counter sink shared with the engine. Pass nil to
// disable collection.
func (re *Regex) SetStats(s *nfa.Stats) {
	re.stats = s
	re.vm.SetStats(s)
}
