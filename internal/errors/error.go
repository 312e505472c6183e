package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryRouting  Category = "routing"
	CategoryI18n     Category = "i18n"
	CategoryExplorer Category = "explorer"
	CategoryCLI      Category = "cli"
	CategoryServer   Category = "server"
)

// PortalError is a structured error with a registered code, detail and suggestion.
type PortalError struct {
	// Code is a unique error identifier (e.g., "E200").
	Code string

	// Category is the error type (config, routing, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of this occurrence.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *PortalError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *PortalError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a PortalError with the same code.
func (e *PortalError) Is(target error) bool {
	t, ok := target.(*PortalError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithDetail adds a detailed explanation to the error.
func (e *PortalError) WithDetail(d string) *PortalError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detail to the error.
func (e *PortalError) WithDetailf(format string, args ...any) *PortalError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *PortalError) WithSuggestion(s string) *PortalError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *PortalError) Wrap(err error) *PortalError {
	e.Wrapped = err
	return e
}

// New creates a PortalError from a registered error code.
func New(code string) *PortalError {
	template, ok := registry[code]
	if !ok {
		return &PortalError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &PortalError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new PortalError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *PortalError {
	return &PortalError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a PortalError.
// An error that already is (or wraps) a PortalError is returned as that PortalError.
func FromError(err error, code string) *PortalError {
	if err == nil {
		return nil
	}
	var pe *PortalError
	if stderrors.As(err, &pe) {
		return pe
	}
	return New(code).Wrap(err)
}

// CodeOf returns the code of the first PortalError in err's chain, or "".
func CodeOf(err error) string {
	var pe *PortalError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
