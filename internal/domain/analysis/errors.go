package analysis

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindExtraction      Kind = "extraction"
	KindNotTrained      Kind = "not_trained"
	KindFeatureMismatch Kind = "feature_mismatch"
	KindInternal        Kind = "internal"
)

// Error is a failed analysis tagged with its kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := "unknown error"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Retryable reports whether resubmitting a different file may succeed.
func (e *Error) Retryable() bool {
	return e != nil && e.Kind == KindExtraction
}

func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}
