package decode

import (
	"errors"
	"fmt"
)

type Reason int

const (
	FieldMissing Reason = iota + 1
	FieldTypeMismatch
	MalformedPayload
)

func (r Reason) String() string {
	switch r {
	case FieldMissing:
		return "field missing"
	case FieldTypeMismatch:
		return "field type mismatch"
	case MalformedPayload:
		return "malformed payload"
	default:
		return "unknown decode failure"
	}
}

// Error describes why a payload could not be turned into a record.
// Index is the position of the failing element when decoding an array, -1 otherwise.
type Error struct {
	Reason Reason
	Field  string
	Index  int
	Err    error
}

func (e *Error) Error() string {
	msg := e.Reason.String()
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Index >= 0 {
		msg += fmt.Sprintf(" (element %d)", e.Index)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Missing(field string) *Error {
	return &Error{Reason: FieldMissing, Field: field, Index: -1}
}

func Mismatch(field string, err error) *Error {
	return &Error{Reason: FieldTypeMismatch, Field: field, Index: -1, Err: err}
}

func Malformed(err error) *Error {
	return &Error{Reason: MalformedPayload, Index: -1, Err: err}
}

// IsReason reports whether err carries a decode failure of the given reason.
func IsReason(err error, reason Reason) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Reason == reason
	}

	return false
}
