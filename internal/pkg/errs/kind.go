package errs

import "errors"

type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindBadRequest   Kind = "BAD_REQUEST"
	KindForbidden    Kind = "FORBIDDEN"
	KindConflict     Kind = "CONFLICT"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindInternal     Kind = "INTERNAL"
)

const internalMessage = "internal server error"

// Error is a failure that is safe to show to the caller.
// The handler maps Kind to a status code and never parses msg.
type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Kind() Kind    { return e.kind }

func NotFound(msg string) error     { return &Error{kind: KindNotFound, msg: msg} }
func BadRequest(msg string) error   { return &Error{kind: KindBadRequest, msg: msg} }
func Forbidden(msg string) error    { return &Error{kind: KindForbidden, msg: msg} }
func Conflict(msg string) error     { return &Error{kind: KindConflict, msg: msg} }
func Unauthorized(msg string) error { return &Error{kind: KindUnauthorized, msg: msg} }

// KindOf returns KindInternal for anything that is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	return internalMessage
}
