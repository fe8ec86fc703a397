// Package apperr defines the error taxonomy shared by the domain services and
// the HTTP boundary.
package apperr

import (
	"errors"
	"strings"
)

// Kind classifies an error for the boundary that reports it.
type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindReference:
		return "reference"
	}

	return "internal"
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func NotFound(msg string) *Error  { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error  { return &Error{Kind: KindConflict, Message: msg} }
func Reference(msg string) *Error { return &Error{Kind: KindReference, Message: msg} }

// Validation builds a validation error from the given field errors.
func Validation(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "Validation error", Fields: fields}
}

// Invalid is a validation error with a message but no itemized fields.
func Invalid(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// KindOf reports the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

// Fields accumulates field errors while validating a value.
type Fields []FieldError

// Add records a problem with the named field.
func (f *Fields) Add(field, message string) {
	*f = append(*f, FieldError{Field: field, Message: message})
}

// Prefix returns the accumulated errors with every field name prefixed,
// e.g. for itemizing errors of batch rows.
func (f Fields) Prefix(prefix string) Fields {
	out := make(Fields, len(f))
	for i, fe := range f {
		out[i] = FieldError{Field: prefix + fe.Field, Message: fe.Message}
	}

	return out
}

// Err returns nil when no field error was recorded, otherwise a validation error.
func (f Fields) Err() error {
	if len(f) == 0 {
		return nil
	}

	return Validation(f...)
}
