package domain

import (
	"errors"
	"fmt"
)

// Kind classifies every error the catalog returns to callers.
type Kind string

const (
	KindValidationFailed   Kind = "validation_failed"
	KindInvalidFile        Kind = "invalid_file"
	KindTooLarge           Kind = "too_large"
	KindUnauthenticated    Kind = "unauthenticated"
	KindNotFound           Kind = "not_found"
	KindBackendUnavailable Kind = "backend_unavailable"
	KindPersistenceFailed  Kind = "persistence_failed"
	KindUnparsableURL      Kind = "unparsable_url"
)

// Error is a classified catalog error. Message is shown to callers verbatim.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches kind sentinels, so errors.Is(err, ErrNotFound) holds for any
// not-found error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Message != "" || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrValidationFailed   = &Error{Kind: KindValidationFailed}
	ErrInvalidFile        = &Error{Kind: KindInvalidFile}
	ErrTooLarge           = &Error{Kind: KindTooLarge}
	ErrUnauthenticated    = &Error{Kind: KindUnauthenticated}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrBackendUnavailable = &Error{Kind: KindBackendUnavailable}
	ErrPersistenceFailed  = &Error{Kind: KindPersistenceFailed}
	ErrUnparsableURL      = &Error{Kind: KindUnparsableURL}
)

// Messages surfaced to the storefront.
const (
	MsgProductNotFound    = "Product not found"
	MsgProductIDRequired  = "Product ID is required"
	MsgAuthRequired       = "Authentication required. Please log in with your admin account."
	MsgInvalidFile        = "Invalid file provided"
	MsgFileTooLarge       = "File size too large. Maximum 10MB allowed."
	MsgInvalidFileType    = "Invalid file type. Please upload an image file."
	MsgUnparsableImageURL = "Could not parse image path from URL"
	MsgNegativePrice      = "price must be greater than or equal to 0"
)

// NewError creates a classified error with a caller-facing message.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Errorf is NewError with formatting.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind, keeping its message. Errors that already
// carry a kind are returned unchanged.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}

// NotFound returns the product-not-found error.
func NotFound() *Error {
	return NewError(KindNotFound, MsgProductNotFound)
}

// KindOf reports the kind of err, or "" when err is not classified.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
