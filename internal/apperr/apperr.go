// Package apperr defines the error taxonomy surfaced at the request
// boundary: validation and not-found errors become structured JSON
// responses, storage write errors fail the request, storage delete
// errors on cleanup paths are logged and swallowed by their callers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindInternal covers programmer errors (unresolvable path/role,
	// misconfigured field mapping) and anything unclassified.
	KindInternal Kind = iota
	// KindValidation covers bad mimetypes, oversized files, missing
	// required files and malformed language tags.
	KindValidation
	// KindNotFound covers records missing on get/update/delete.
	KindNotFound
	// KindStorage covers backend write failures on the happy path.
	KindStorage
	// KindUnauthorized covers bad credentials and invalid tokens.
	KindUnauthorized
	// KindForbidden covers authenticated requests lacking access level.
	KindForbidden
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Unauthorizedf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnauthorized, Msg: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Msg: msg, Err: err}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf classifies an arbitrary error, defaulting to internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
