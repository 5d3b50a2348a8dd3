package sonparser

import (
	"errors"
	"fmt"
)

var (
	ErrValidation               = errors.New("value failed validation")
	ErrReadDocument             = errors.New("failed to read document")
	ErrDecodeDocument           = errors.New("failed to decode document")
	ErrUnsupportedFormat        = errors.New("no decoder registered for this document format")
	ErrDecoderAlreadyRegistered = errors.New("a decoder with this name is already registered")
	ErrDecoderNotFound          = errors.New("specified decoder not found")
)

// ParseError is a validation failure surfaced as a Go error. It matches
// ErrValidation with errors.Is.
type ParseError struct {
	// Message is the message of the failed root, or the message passed to
	// Outcome.Except.
	Message string
	Node    *ErrorNode
}

func newParseError(node *ErrorNode) *ParseError {
	return &ParseError{Message: node.Message, Node: node}
}

// Error implements the error interface
func (pe *ParseError) Error() string {
	return fmt.Sprintf("failed to parse: %s", pe.Message)
}

// Is reports whether target is ErrValidation.
func (pe *ParseError) Is(target error) bool {
	return target == ErrValidation
}
