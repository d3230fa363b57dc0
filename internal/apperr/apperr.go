// Package apperr defines the closed error taxonomy shared by the catalog
// repositories and the HTTP boundary.
//
// Every error a repository returns is an *AppError of one of three kinds.
// The boundary maps the kind to an HTTP status and a short error code tag
// that clients can switch on without parsing messages.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError.
type Kind int

const (
	// KindValidation means a required identifier or payload was missing.
	// It is always detected before any store call.
	KindValidation Kind = iota + 1
	// KindStore means the underlying document store failed.
	KindStore
	// KindNotFound means a lookup matched nothing where a document was expected.
	KindNotFound
)

// Boundary error codes.
const (
	CodeBadRequest = "BREQ"
	CodeDatabase   = "DBE"
	CodeNotFound   = "NOTF"
)

// AppError carries a kind, a client-safe message and an optional cause.
// The cause is for server-side logging only.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is / errors.As to reach the store error.
func (e *AppError) Unwrap() error { return e.Cause }

// Validation creates a KindValidation error.
func Validation(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

// Store wraps a driver failure. A nil cause returns nil so call sites can
// wrap unconditionally.
func Store(cause error) error {
	if cause == nil {
		return nil
	}
	var ae *AppError
	if errors.As(cause, &ae) {
		return ae
	}
	return &AppError{Kind: KindStore, Message: "store operation failed", Cause: cause}
}

// NotFound creates a KindNotFound error for the named resource.
func NotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

// KindOf returns the kind of err, treating unknown errors as store failures.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStore
}

// Is reports whether err is an AppError of kind k.
func Is(err error, k Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == k
}

// HTTPStatus maps an error to its boundary status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Code maps an error to its boundary error code tag.
func Code(err error) string {
	switch KindOf(err) {
	case KindValidation:
		return CodeBadRequest
	case KindNotFound:
		return CodeNotFound
	default:
		return CodeDatabase
	}
}

// PublicMessage is the message safe to send to clients.
func PublicMessage(err error) string {
	switch KindOf(err) {
	case KindValidation:
		var ae *AppError
		if errors.As(err, &ae) {
			return ae.Message
		}
		return "Bad Request"
	case KindNotFound:
		return "Not Found"
	default:
		return "Internal Server Error"
	}
}
