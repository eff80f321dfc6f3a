package nfa

import (
	"errors"
	"testing"
)

// TestCompile_Valid checks that well-formed patterns compile into a closed
// graph with the expected shape.
func TestCompile_Valid(t *testing.T) {
	tests := []struct {
		pattern  string
		captures int
		anchored bool
	}{
		{"", 0, false},
		{"a", 0, false},
		{"hello world", 0, false},
		{"a.c", 0, false},
		{`\d+`, 0, false},
		{`\w*`, 0, false},
		{"^abc$", 0, true},
		{"[abc]", 0, false},
		{"[^abc]", 0, false},
		{"[]", 0, false},
		{"(a)", 1, false},
		{"(a)(b)", 2, false},
		{"((a)(b))", 3, false},
		{"(cat|dog)s?", 1, false},
		{`([abc])\1`, 1, false},
		{`(\w+) \1`, 1, false},
		{"a|b|c", 0, false},
		{"(a+)+", 1, false},
		{`\$\.\\`, 0, false},
		{`\0`, 0, false},
		{"^", 0, true},
		{"$", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", tt.pattern, err)
			}
			if n.States() == 0 {
				t.Error("NFA has no states")
			}
			if got := n.NumCaptures(); got != tt.captures {
				t.Errorf("NumCaptures() = %d, want %d", got, tt.captures)
			}
			if got := n.AnchoredAtStart(); got != tt.anchored {
				t.Errorf("AnchoredAtStart() = %v, want %v", got, tt.anchored)
			}
		})
	}
}

// TestCompile_Errors checks that each parse error kind is produced by a
// malformed pattern and classified via errors.Is.
func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		pattern string
		want    error
	}{
		{"(", ErrUnexpectedEnd},
		{"(ab", ErrUnexpectedEnd},
		{"a|", ErrUnexpectedEnd},
		{"|a", ErrUnexpectedEnd},
		{`\`, ErrDanglingEscape},
		{`ab\`, ErrDanglingEscape},
		{"[abc", ErrUnclosedClass},
		{"[^", ErrUnclosedClass},
		{"ab)", ErrUnmatchedRightParen},
		{")", ErrUnmatchedRightParen},
		{"ab]", ErrUnmatchedRightBracket},
		{"]", ErrUnmatchedRightBracket},
		{"(a]b)", ErrUnmatchedRightBracket},
		{"*a", ErrTrailingInput},
		{"a**", ErrTrailingInput},
		{"+", ErrTrailingInput},
		{"a|?b", ErrTrailingInput},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Compile(tt.pattern)
			if err == nil {
				t.Fatalf("Compile(%q) succeeded, want error %v", tt.pattern, tt.want)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Compile(%q) error = %v, want kind %v", tt.pattern, err, tt.want)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error is not a *ParseError: %v", err)
			}
			if pe.Pattern != tt.pattern {
				t.Errorf("ParseError.Pattern = %q, want %q", pe.Pattern, tt.pattern)
			}
		})
	}
}

// TestCompile_CaptureOrder checks that an outer group gets a smaller id than
// the groups nested inside it: the entry marker of "((a)(b))" must open
// group 1.
func TestCompile_CaptureOrder(t *testing.T) {
	n, err := Compile("((a)(b))")
	if err != nil {
		t.Fatal(err)
	}
	if got := n.NumCaptures(); got != 3 {
		t.Fatalf("NumCaptures() = %d, want 3", got)
	}
	entry := n.State(n.Start())
	if got := entry.CaptureOpen(); got != 1 {
		t.Errorf("entry CaptureOpen() = %d, want 1", got)
	}
}

// TestCompile_EmptyPattern checks that the empty pattern compiles to a bare
// accepting state.
func TestCompile_EmptyPattern(t *testing.T) {
	n, err := Compile("")
	if err != nil {
		t.Fatal(err)
	}
	if n.States() != 1 {
		t.Errorf("States() = %d, want 1", n.States())
	}
	if n.State(n.Start()).Kind() != KindMatch {
		t.Errorf("start kind = %v, want Match", n.State(n.Start()).Kind())
	}
}

// TestCompile_Pure checks that compilation has no state leaking between
// invocations: compiling the same pattern twice yields structurally
// equivalent graphs.
func TestCompile_Pure(t *testing.T) {
	for _, pattern := range []string{"(a|b)+c", `(\w+)\1`, "^x[yz]$"} {
		a, err := Compile(pattern)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Compile(pattern)
		if err != nil {
			t.Fatal(err)
		}
		if a.States() != b.States() {
			t.Errorf("%q: state counts differ: %d vs %d", pattern, a.States(), b.States())
		}
		if a.NumCaptures() != b.NumCaptures() {
			t.Errorf("%q: capture counts differ", pattern)
		}
		if a.Start() != b.Start() {
			t.Errorf("%q: start states differ", pattern)
		}
	}
}

// TestCompile_GraphClosed checks that no dangling edges survive compilation.
func TestCompile_GraphClosed(t *testing.T) {
	for _, pattern := range []string{"a*", "(a|b)*c+d?", "((x)y)+", `\d|\w`} {
		n, err := Compile(pattern)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < n.States(); i++ {
			s := n.State(StateID(i))
			if s.Kind() == KindMatch {
				continue
			}
			if s.Out() == InvalidState {
				t.Errorf("%q: state %d has a dangling out edge", pattern, i)
			}
		}
	}
}
