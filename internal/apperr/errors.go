// Package apperr defines the error kinds shared by the store client.
//
// Every failure that reaches the interactive layer is one of these kinds, so the
// caller can decide whether to reprompt (validation), report a diagnostic and
// return to the menu (backend, consistency), or refuse (denied, auth).
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindAuth
	KindDenied
	KindBackend
	KindConsistency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindAuth:
		return "authentication"
	case KindDenied:
		return "authorization denied"
	case KindBackend:
		return "backend"
	case KindConsistency:
		return "consistency"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Op names the operation that failed and is meant
// for logs; Msg is the user-facing diagnostic.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

// Sentinels for errors.Is comparisons against a kind.
var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrAuth        = &Error{Kind: KindAuth}
	ErrDenied      = &Error{Kind: KindDenied}
	ErrBackend     = &Error{Kind: KindBackend}
	ErrConsistency = &Error{Kind: KindConsistency}
)

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String() + " error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches a bare sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the kind of the outermost classified error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Validation(op, format string, args ...any) error {
	return &Error{Kind: KindValidation, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(op, format string, args ...any) error {
	return &Error{Kind: KindNotFound, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func Auth(op, format string, args ...any) error {
	return &Error{Kind: KindAuth, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func Denied(op, format string, args ...any) error {
	return &Error{Kind: KindDenied, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Backend wraps a driver or connectivity failure, keeping its diagnostic text.
func Backend(op, msg string, err error) error {
	return &Error{Kind: KindBackend, Op: op, Msg: msg, Err: err}
}

// Consistency reports that a multi-statement unit failed part way and was rolled back.
func Consistency(op, msg string, err error) error {
	return &Error{Kind: KindConsistency, Op: op, Msg: msg, Err: err}
}
