// Package errors holds the domain error taxonomy shared by services and
// the HTTP edge. Services return coded errors; handlers translate codes
// to transport status codes and stay out of business logic.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure.
type Code int

const (
	// CodeInternal covers infrastructure failures (DB, network). It is
	// the zero value so wrapped plain errors map to it.
	CodeInternal Code = iota
	// CodeNotFound - referenced entity does not exist, or the caller
	// lacks visibility. Visibility failures deliberately collapse into
	// not-found so unauthorized callers cannot probe for existence.
	CodeNotFound
	// CodeBadRequest - structurally valid request violating a business
	// rule (invalid window, unavailable item, repeated approval, bad
	// page, comment gate).
	CodeBadRequest
	// CodeForbidden - ownership mismatch on operations that do not
	// collapse it into not-found (item updates).
	CodeForbidden
	// CodeConflict - uniqueness violation (duplicate user email).
	CodeConflict
	// CodeUnsupported - the state listing filter matched neither ALL,
	// a temporal category, nor a status. Kept distinct from bad-request
	// so the edge can shape its payload separately.
	CodeUnsupported
)

// Error is a coded domain error.
type Error struct {
	Code Code
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// NotFound builds a not-found error.
func NotFound(format string, args ...any) error {
	return &Error{Code: CodeNotFound, Msg: fmt.Sprintf(format, args...)}
}

// BadRequest builds a business-rule violation error.
func BadRequest(format string, args ...any) error {
	return &Error{Code: CodeBadRequest, Msg: fmt.Sprintf(format, args...)}
}

// Forbidden builds an ownership-mismatch error.
func Forbidden(format string, args ...any) error {
	return &Error{Code: CodeForbidden, Msg: fmt.Sprintf(format, args...)}
}

// Conflict builds a uniqueness-violation error.
func Conflict(format string, args ...any) error {
	return &Error{Code: CodeConflict, Msg: fmt.Sprintf(format, args...)}
}

// Unsupported builds an unsupported-filter error.
func Unsupported(format string, args ...any) error {
	return &Error{Code: CodeUnsupported, Msg: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the domain code from err, unwrapping as needed.
// Plain errors report CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsNotFound reports whether err carries CodeNotFound.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// IsBadRequest reports whether err carries CodeBadRequest.
func IsBadRequest(err error) bool { return CodeOf(err) == CodeBadRequest }

// IsUnsupported reports whether err carries CodeUnsupported.
func IsUnsupported(err error) bool { return CodeOf(err) == CodeUnsupported }
