package entities

import (
	"errors"
	"fmt"
)

// ParseErrorKind classifies deck parse failures
type ParseErrorKind int

const (
	MalformedFrontMatter ParseErrorKind = iota + 1
	UnterminatedCodeBlock
	UnrecognizedBlockMarker
	InvalidEncoding
)

var (
	ErrMalformedFrontMatter    = errors.New("malformed front-matter")
	ErrUnterminatedCodeBlock   = errors.New("unterminated code block")
	ErrUnrecognizedBlockMarker = errors.New("unrecognized block marker")
	ErrInvalidEncoding         = errors.New("invalid encoding")
)

// String returns the kind name
func (k ParseErrorKind) String() string {
	switch k {
	case MalformedFrontMatter:
		return "MalformedFrontMatter"
	case UnterminatedCodeBlock:
		return "UnterminatedCodeBlock"
	case UnrecognizedBlockMarker:
		return "UnrecognizedBlockMarker"
	case InvalidEncoding:
		return "InvalidEncoding"
	default:
		return "Unknown"
	}
}

func (k ParseErrorKind) sentinel() error {
	switch k {
	case MalformedFrontMatter:
		return ErrMalformedFrontMatter
	case UnterminatedCodeBlock:
		return ErrUnterminatedCodeBlock
	case UnrecognizedBlockMarker:
		return ErrUnrecognizedBlockMarker
	case InvalidEncoding:
		return ErrInvalidEncoding
	default:
		return nil
	}
}

// ParseError is the structured failure returned by the deck parser.
// It matches its kind's sentinel with errors.Is.
type ParseError struct {
	Kind ParseErrorKind
	// Line is the 1-based source line of the offending construct
	Line int
	// Construct is the offending source text or a short description of it
	Construct string
	// Err is the underlying cause, if any
	Err error
}

// NewParseError creates a parse error
func NewParseError(kind ParseErrorKind, line int, construct string, err error) *ParseError {
	return &ParseError{
		Kind:      kind,
		Line:      line,
		Construct: construct,
		Err:       err,
	}
}

// Error implements the error interface
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("line %d: %s", e.Line, e.Kind.sentinel())
	if e.Construct != "" {
		msg += fmt.Sprintf(" %q", e.Construct)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause
func (e *ParseError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// AsParseError extracts a *ParseError from an error chain
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
