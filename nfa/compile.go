package nfa

// The parser is a recursive-descent precedence climber that tokenizes the
// pattern on the fly and emits NFA states directly, Thompson-style: each
// primary becomes a small fragment with dangling out edges, and the driver
// glues fragments together for concatenation and alternation. ')' and ']'
// act as terminators with precedence below every operator.
//
// Precedence, low to high: alternation (0), concatenation (1). Quantifiers
// bind to the immediately preceding primary inside parsePrimary.

type parser struct {
	b        *Builder
	pattern  string
	pos      int
	captures int
}

// Compile parses a pattern and builds its NFA. The returned graph is
// immutable; compilation keeps all its state in the parser, so concurrent
// compiles are independent.
func Compile(pattern string) (*NFA, error) {
	p := &parser{b: NewBuilder(), pattern: pattern}

	if len(pattern) == 0 {
		start := p.b.AddMatch()
		return p.b.Build(start, 0, pattern)
	}

	frag, err := p.parsePrimary()
	if err != nil {
		return nil, p.wrap(err)
	}
	frag, err = p.parseExpr(frag, 0)
	if err != nil {
		return nil, p.wrap(err)
	}

	if p.pos < len(pattern) {
		switch pattern[p.pos] {
		case ')':
			return nil, p.wrap(ErrUnmatchedRightParen)
		case ']':
			return nil, p.wrap(ErrUnmatchedRightBracket)
		default:
			return nil, p.wrap(ErrTrailingInput)
		}
	}

	accept := p.b.AddMatch()
	p.b.PatchAll(frag.dangling, accept)
	return p.b.Build(frag.start, p.captures, pattern)
}

func (p *parser) wrap(err error) error {
	return &ParseError{Pattern: p.pattern, Pos: p.pos, Err: err}
}

// prec returns operator precedence for the lookahead byte. Closing
// delimiters get negative precedence so they stop the climb.
func prec(c byte) int {
	switch c {
	case '|':
		return 0
	case ')', ']':
		return -1
	default:
		return 1 // implicit concatenation
	}
}

// parseExpr combines lhs with operators at or above minPrec.
func (p *parser) parseExpr(lhs Fragment, minPrec int) (Fragment, error) {
	for p.pos < len(p.pattern) && prec(p.pattern[p.pos]) >= minPrec {
		op := p.pattern[p.pos]
		if op == '|' {
			p.pos++
		}

		rhs, err := p.parsePrimary()
		if err != nil {
			return Fragment{}, err
		}

		// Fold tighter-binding operators into the right-hand side first,
		// so "ab|cd" groups as "(ab)|(cd)".
		for p.pos < len(p.pattern) && prec(p.pattern[p.pos]) > prec(op) {
			rhs, err = p.parseExpr(rhs, prec(op)+1)
			if err != nil {
				return Fragment{}, err
			}
		}

		if op == '|' {
			s := p.b.AddSplit(lhs.start, rhs.start)
			lhs = Fragment{
				start:    s,
				dangling: append(lhs.dangling, rhs.dangling...),
			}
		} else {
			p.b.PatchAll(lhs.dangling, rhs.start)
			lhs.dangling = rhs.dangling
		}
	}
	return lhs, nil
}

// parsePrimary parses one primary expression ('.', anchors, an escape, a
// bracket expression, a group, or a literal byte) plus an optional postfix
// quantifier.
func (p *parser) parsePrimary() (Fragment, error) {
	if p.pos >= len(p.pattern) {
		return Fragment{}, ErrUnexpectedEnd
	}

	c := p.pattern[p.pos]
	p.pos++

	var frag Fragment
	switch c {
	case '.':
		id := p.b.AddAny()
		frag = Fragment{start: id, dangling: []edge{{state: id}}}

	case '^':
		id := p.b.AddAnchorStart()
		frag = Fragment{start: id, dangling: []edge{{state: id}}}

	case '$':
		id := p.b.AddAnchorEnd()
		frag = Fragment{start: id, dangling: []edge{{state: id}}}

	case '\\':
		if p.pos >= len(p.pattern) {
			return Fragment{}, ErrDanglingEscape
		}
		e := p.pattern[p.pos]
		p.pos++
		var id StateID
		switch {
		case e == 'd':
			id = p.b.AddDigit()
		case e == 'w':
			id = p.b.AddWord()
		case e >= '1' && e <= '9':
			id = p.b.AddBackref(uint32(e - '0'))
		default:
			// Any other escaped byte matches itself; \0 is a literal NUL.
			if e == '0' {
				e = 0
			}
			id = p.b.AddLiteral(e)
		}
		frag = Fragment{start: id, dangling: []edge{{state: id}}}

	case '[':
		negated := false
		if p.pos < len(p.pattern) && p.pattern[p.pos] == '^' {
			negated = true
			p.pos++
		}
		var set ByteSet
		for p.pos < len(p.pattern) && p.pattern[p.pos] != ']' {
			set.Add(p.pattern[p.pos])
			p.pos++
		}
		if p.pos >= len(p.pattern) {
			return Fragment{}, ErrUnclosedClass
		}
		p.pos++ // consume ']'
		id := p.b.AddClass(set, negated)
		frag = Fragment{start: id, dangling: []edge{{state: id}}}

	case '(':
		var err error
		frag, err = p.parseGroup()
		if err != nil {
			return Fragment{}, err
		}

	case '*', '+', '?':
		// A quantifier with no preceding primary.
		p.pos--
		return Fragment{}, ErrTrailingInput

	case ')':
		p.pos--
		return Fragment{}, ErrUnmatchedRightParen

	case ']':
		p.pos--
		return Fragment{}, ErrUnmatchedRightBracket

	case '|':
		// An alternation branch with no expression.
		p.pos--
		return Fragment{}, ErrUnexpectedEnd

	default:
		id := p.b.AddLiteral(c)
		frag = Fragment{start: id, dangling: []edge{{state: id}}}
	}

	return p.parseQuantifier(frag), nil
}

// parseGroup parses a capturing group after its '(' has been consumed. The
// group id is assigned when '(' is seen, so an outer group always gets a
// smaller id than any group nested inside it.
func (p *parser) parseGroup() (Fragment, error) {
	p.captures++
	group := uint32(p.captures)

	open := p.b.AddCaptureOpen(group)

	inner, err := p.parsePrimary()
	if err != nil {
		return Fragment{}, err
	}
	inner, err = p.parseExpr(inner, 0)
	if err != nil {
		return Fragment{}, err
	}

	if p.pos >= len(p.pattern) {
		return Fragment{}, ErrUnexpectedEnd
	}
	if p.pattern[p.pos] != ')' {
		// The only byte parseExpr stops on besides ')' is ']'.
		return Fragment{}, ErrUnmatchedRightBracket
	}
	p.pos++ // consume ')'

	closeMark := p.b.AddCaptureClose(group)
	p.b.SetOut(open, inner.start)
	p.b.PatchAll(inner.dangling, closeMark)

	return Fragment{start: open, dangling: []edge{{state: closeMark}}}, nil
}

// parseQuantifier applies a postfix '*', '+' or '?' to the fragment, if
// present. The loop branch is wired on the split's out edge so the closure
// prefers continuing the loop: quantifiers are greedy.
func (p *parser) parseQuantifier(frag Fragment) Fragment {
	if p.pos >= len(p.pattern) {
		return frag
	}

	switch p.pattern[p.pos] {
	case '*':
		s := p.b.AddSplit(frag.start, InvalidState)
		p.b.PatchAll(frag.dangling, s)
		frag = Fragment{start: s, dangling: []edge{{state: s, alt: true}}}
		p.pos++
	case '+':
		s := p.b.AddSplit(frag.start, InvalidState)
		p.b.PatchAll(frag.dangling, s)
		frag.dangling = []edge{{state: s, alt: true}}
		p.pos++
	case '?':
		s := p.b.AddSplit(frag.start, InvalidState)
		frag.start = s
		frag.dangling = append(frag.dangling, edge{state: s, alt: true})
		p.pos++
	}

	return frag
}
