package nfa

import (
	"errors"
	"fmt"
)

// Parse error kinds. Compile wraps these in a *ParseError; use errors.Is to
// test for a specific kind.
var (
	// ErrUnexpectedEnd indicates the pattern ended where a primary
	// expression or a group's closing ')' was required, or that an
	// alternation branch is empty.
	ErrUnexpectedEnd = errors.New("unexpected end of pattern")

	// ErrDanglingEscape indicates the pattern ended immediately after '\'.
	ErrDanglingEscape = errors.New("dangling escape at end of pattern")

	// ErrUnclosedClass indicates a bracket expression with no closing ']'.
	ErrUnclosedClass = errors.New("unclosed bracket expression")

	// ErrUnmatchedRightParen indicates a ')' with no opening '('.
	ErrUnmatchedRightParen = errors.New("unmatched ')'")

	// ErrUnmatchedRightBracket indicates a ']' with no opening '['.
	ErrUnmatchedRightBracket = errors.New("unmatched ']'")

	// ErrTrailingInput indicates residual input after the top-level
	// expression. Compile reports it for a quantifier with no preceding
	// primary to apply to, such as "*a" or "a**".
	ErrTrailingInput = errors.New("trailing input after expression")
)

// ParseError reports a pattern that failed to compile, with the byte offset
// at which parsing stopped.
type ParseError struct {
	Pattern string
	Pos     int
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v at offset %d", e.Pattern, e.Err, e.Pos)
}

// Unwrap returns the underlying error kind.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// BuildError reports an inconsistency detected while finalizing the state
// arena. It indicates a compiler bug, not a bad pattern.
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
}
