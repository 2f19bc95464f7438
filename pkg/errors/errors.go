// Package errors defines the coded errors shared by the generators, the
// render pipeline, the CLI and the HTTP server.
//
// Every failure a caller may want to branch on carries a [Code]. Codes with
// the INVALID_ prefix describe bad input and map to exit status 2 in the CLI
// and 400 in the server. Errors created with the same code match each other
// under the standard library's errors.Is, so packages export sentinels:
//
//	var ErrInvalidColorFormat = errors.New(errors.ErrCodeInvalidColorFormat, "invalid color")
//
//	if errors.Is(err, errors.ErrCodeExportFailed) {
//		// keep the text artifacts, report the raster failure
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidColorFormat Code = "INVALID_COLOR_FORMAT"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidKind        Code = "INVALID_KIND"
	ErrCodeInvalidParams      Code = "INVALID_PARAMS"
	ErrCodeInvalidToken       Code = "INVALID_TOKEN"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeExportFailed Code = "EXPORT_FAILED" // rasterizer or browser failure
	ErrCodeUnsupported  Code = "UNSUPPORTED"   // kind lacks the requested capability
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

// IsInvalid reports whether c is one of the INVALID_* input codes.
func (c Code) IsInvalid() bool {
	return strings.HasPrefix(string(c), "INVALID_")
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap is like New but records cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix, or err.Error()
// for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
