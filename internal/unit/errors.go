package unit

import (
	"errors"
	"fmt"
)

// Domain errors for unit operations.
var (
	// ErrNotConvertible indicates a conversion between physically
	// incompatible units with no matching equivalency.
	ErrNotConvertible = errors.New("unit: units are not convertible")

	// ErrUnknownUnit indicates a syntactically valid name missing from
	// the registry.
	ErrUnknownUnit = errors.New("unit: not a valid unit")

	// ErrSyntax indicates a malformed unit string.
	ErrSyntax = errors.New("unit: syntax error")

	// ErrDuplicate indicates a name or alias registered twice.
	ErrDuplicate = errors.New("unit: duplicate unit registration")
)

// ParseError reports a failure to parse a unit string, with the column
// of the offending token.
type ParseError struct {
	Expr    string
	Col     int
	Token   string
	Wrapped error
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("at col %d, %q is not a valid unit in %q", e.Col, e.Token, e.Expr)
	}
	return fmt.Sprintf("syntax error at col %d in unit %q", e.Col, e.Expr)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

// ConversionError reports both unit string forms of a failed conversion.
// The forms are rendered without their scale, which is not meaningful
// when only the dimensions disagree.
type ConversionError struct {
	From Unit
	To   Unit
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("unit %q is not convertible to %q",
		toStringOpts(e.From, false), toStringOpts(e.To, false))
}

func (e *ConversionError) Unwrap() error {
	return ErrNotConvertible
}
