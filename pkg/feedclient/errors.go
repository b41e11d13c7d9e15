package feedclient

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindValidation covers local checks and 400 responses.
	KindValidation Kind = iota + 1
	KindNotFound
	// KindTransport covers network failures, undecodable bodies and every
	// other non-2xx status.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is the only error type returned by Client and Feed.
type Error struct {
	Kind    Kind
	Status  int // 0 when no response was received
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s error (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func transportError(message string, err error) *Error {
	return &Error{Kind: KindTransport, Message: message, Err: err}
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}
