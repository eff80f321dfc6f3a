// Package literal extracts literal byte sequences from a pattern's surface
// syntax for prefilter use. Extraction never guesses: a returned literal is
// one the pattern cannot match without, so a line that lacks every literal
// can be rejected before the NFA runs.
package literal

// Extraction limits. Patterns past these bounds simply get no prefilter.
const (
	maxLiterals   = 64
	maxLiteralLen = 64
)

// Seq is a set of literals extracted from one pattern. When Complete is
// true the pattern is exactly an alternation of these literals and they
// fully decide matching; otherwise they are a necessary-but-not-sufficient
// candidate filter.
type Seq struct {
	lits     [][]byte
	complete bool
}

// Literals returns the extracted literal byte strings.
func (s *Seq) Literals() [][]byte { return s.lits }

// Len returns the number of extracted literals.
func (s *Seq) Len() int { return len(s.lits) }

// Complete reports whether the literals fully describe the pattern.
func (s *Seq) Complete() bool { return s.complete }

// Extract analyzes the pattern surface and returns the best available
// literal sequence, or nil when the pattern yields no usable literals.
func Extract(pattern string) *Seq {
	if s := extractAlternation(pattern); s != nil {
		return s
	}
	if lit := extractPrefix(pattern); len(lit) > 0 {
		return &Seq{lits: [][]byte{lit}}
	}
	return nil
}

// extractAlternation recognizes patterns that are nothing but literal bytes
// separated by top-level '|': the whole pattern reduces to a multi-literal
// search. Any metacharacter, escape class, or backreference disqualifies.
func extractAlternation(pattern string) *Seq {
	if len(pattern) == 0 {
		return nil
	}

	var branches [][]byte
	var cur []byte
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '|':
			if len(cur) == 0 {
				return nil // empty branch matches everything
			}
			branches = append(branches, cur)
			cur = nil
		case '\\':
			i++
			if i >= len(pattern) {
				return nil
			}
			e := pattern[i]
			if e == 'd' || e == 'w' || (e >= '1' && e <= '9') {
				return nil
			}
			if e == '0' {
				e = 0
			}
			cur = append(cur, e)
		case '.', '^', '$', '*', '+', '?', '(', ')', '[', ']':
			return nil
		default:
			cur = append(cur, c)
		}
		if len(cur) > maxLiteralLen || len(branches) > maxLiterals {
			return nil
		}
	}
	if len(cur) == 0 {
		return nil
	}
	branches = append(branches, cur)
	return &Seq{lits: branches, complete: true}
}

// extractPrefix collects the mandatory literal run at the start of the
// pattern. A byte followed by '*' or '?' is optional and ends the run; a
// byte followed by '+' is kept and ends the run. The run is discarded when
// a later top-level alternation would make it optional after all.
func extractPrefix(pattern string) []byte {
	i := 0
	if i < len(pattern) && pattern[i] == '^' {
		i++
	}

	var lit []byte
scan:
	for i < len(pattern) && len(lit) < maxLiteralLen {
		var b byte
		var next int
		switch c := pattern[i]; c {
		case '.', '^', '$', '*', '+', '?', '(', ')', '[', ']', '|':
			break scan
		case '\\':
			if i+1 >= len(pattern) {
				return nil // malformed; Compile reports it
			}
			e := pattern[i+1]
			if e == 'd' || e == 'w' || (e >= '1' && e <= '9') {
				break scan
			}
			if e == '0' {
				e = 0
			}
			b, next = e, i+2
		default:
			b, next = c, i+1
		}

		if next < len(pattern) {
			switch pattern[next] {
			case '*', '?':
				break scan
			case '+':
				lit = append(lit, b)
				i = next
				break scan
			}
		}
		lit = append(lit, b)
		i = next
	}

	if hasTopLevelAlt(pattern[i:]) {
		return nil
	}
	return lit
}

// hasTopLevelAlt reports whether the pattern tail contains a '|' outside any
// group or bracket expression.
func hasTopLevelAlt(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			i++
			if i < len(s) && s[i] == '^' {
				i++
			}
			for i < len(s) && s[i] != ']' {
				i++
			}
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '|':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}
