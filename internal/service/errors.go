package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so transports can pick a response code.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindNotFound
	KindConflict
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind and message so wrapped copies still compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

var (
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Message: "Not authenticated"}

	// ErrBoardNotFound covers both a missing board and one the actor may not
	// access; callers never learn which.
	ErrBoardNotFound = &Error{Kind: KindNotFound, Message: "Board not found"}
	ErrTaskNotFound  = &Error{Kind: KindNotFound, Message: "Task not found"}
	ErrUserNotFound  = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrAlreadyShared = &Error{Kind: KindConflict, Message: "Board already shared with this user"}
)

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func internalError(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err; anything that is not a service error is internal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// MessageOf returns a client-safe message. Internal details are never exposed.
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) && se.Kind != KindInternal {
		return se.Message
	}
	return "Internal server error"
}
