package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures crossing into the capture pipeline.
type ErrorKind uint8

const (
	// KindSystem covers device manager and input subsystem failures.
	KindSystem ErrorKind = iota + 1
	// KindDatabase covers store open and transaction failures.
	KindDatabase
	// KindPermission covers missing authorization group membership.
	KindPermission
	// KindEnvironment covers missing configuration such as HOME.
	KindEnvironment
)

func (k ErrorKind) String() string {
	switch k {
	case KindSystem:
		return "system"
	case KindDatabase:
		return "database"
	case KindPermission:
		return "permission"
	case KindEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Err holds the underlying cause, if any.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, &Error{Kind: KindDatabase}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

func newError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// SystemError reports a device manager or input subsystem failure.
func SystemError(err error, format string, args ...any) error {
	return newError(KindSystem, err, format, args...)
}

// DatabaseError reports a store failure.
func DatabaseError(err error, format string, args ...any) error {
	return newError(KindDatabase, err, format, args...)
}

// PermissionError reports missing group membership.
func PermissionError(err error, format string, args ...any) error {
	return newError(KindPermission, err, format, args...)
}

// EnvironmentError reports missing or invalid configuration.
func EnvironmentError(err error, format string, args ...any) error {
	return newError(KindEnvironment, err, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
