// Package diceerr defines the structured error returned by every stage of
// dice expression evaluation.
package diceerr

import (
	"errors"
	"fmt"
)

// Kind classifies an evaluation error.
type Kind int

const (
	// KindSyntax covers malformed input: unbalanced brackets, unknown
	// modifiers, misplaced operators.
	KindSyntax Kind = iota + 1
	// KindSemantic covers well-formed input that cannot be evaluated, such as
	// a zero-sided die or a modifier applied to a plain number.
	KindSemantic
	// KindLimit is returned when the die-count limit is exceeded.
	KindLimit
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindSemantic:
		return "semantic"
	case KindLimit:
		return "limit"
	default:
		return "unknown"
	}
}

// Error is a dice evaluation error.
type Error struct {
	Kind Kind
	Pos  int // byte offset into the standardized input, -1 if unknown
	Msg  string
	Max  int // configured maximum, set for KindLimit
}

func (e *Error) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s error at position %d: %s", e.Kind, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Msg)
}

// Syntaxf returns a KindSyntax error at pos.
func Syntaxf(pos int, format string, args ...any) *Error {
	return &Error{Kind: KindSyntax, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Semanticf returns a KindSemantic error without a position.
func Semanticf(format string, args ...any) *Error {
	return &Error{Kind: KindSemantic, Pos: -1, Msg: fmt.Sprintf(format, args...)}
}

// Limit returns the error reported when more than max dice are rolled.
func Limit(max int) *Error {
	return &Error{Kind: KindLimit, Pos: -1, Max: max, Msg: fmt.Sprintf("exceeded the maximum of %d dice", max)}
}

// IsKind reports whether err wraps an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
