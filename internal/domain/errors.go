package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrMissingLanguage        = errors.New("missing language attribute")
	ErrDanglingCrossReference = errors.New("dangling cross-reference")
	ErrDuplicateID            = errors.New("duplicate id")
	ErrMalformedEntry         = errors.New("malformed entry")
	ErrNotFound               = errors.New("not found")
	ErrValidation             = errors.New("validation error")
)

// ExtractError ties an extraction failure to the document and markup node
// where it was detected. Unwrap returns the sentinel.
type ExtractError struct {
	Doc  string
	Node string
	Msg  string
	Err  error
}

func (e *ExtractError) Error() string {
	var loc string
	switch {
	case e.Doc != "" && e.Node != "":
		loc = e.Doc + "#" + e.Node
	case e.Doc != "":
		loc = e.Doc
	default:
		loc = e.Node
	}

	msg := e.Err.Error()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if loc == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", loc, msg)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// NewExtractError creates an ExtractError for the given node.
func NewExtractError(err error, node, msg string) *ExtractError {
	return &ExtractError{Node: node, Msg: msg, Err: err}
}

// WithDoc attaches the document name to err if it is an ExtractError
// without one. Other errors are wrapped with the name as a prefix.
func WithDoc(err error, doc string) error {
	if err == nil {
		return nil
	}
	var xe *ExtractError
	if errors.As(err, &xe) && xe.Doc == "" {
		cp := *xe
		cp.Doc = doc
		return &cp
	}
	return fmt.Errorf("%s: %w", doc, err)
}

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
