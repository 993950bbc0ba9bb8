package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAuthDisabled       = errors.New("token auth is not configured")
	ErrArchiveDisabled    = errors.New("analysis archive is not configured")
	ErrRecordNotFound     = errors.New("record not found")
)

// Kind tags a pipeline error for callers and clients.
type Kind string

const (
	KindValidation  Kind = "validation_error"
	KindUnknownKey  Kind = "unknown_key"
	KindComputation Kind = "computation_error"
)

// Error is a pipeline error. Message is safe to show to end users.
type Error struct {
	Kind    Kind
	Stage   Stage
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at %s: %s: %v", e.Kind, e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Stage, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports bad input; it is always raised before tokenization.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Stage: StageReceived, Message: fmt.Sprintf(format, args...)}
}

// UnknownKey reports a lookup of a skill, scenario or other catalog key that
// does not exist.
func UnknownKey(format string, args ...any) *Error {
	return &Error{Kind: KindUnknownKey, Stage: StageReceived, Message: fmt.Sprintf(format, args...)}
}

// Computation reports a failure inside the pipeline at the given stage.
func Computation(stage Stage, err error) *Error {
	return &Error{Kind: KindComputation, Stage: stage, Message: "分析失败", Err: err}
}

// KindOf returns the kind of a pipeline error. Errors that are not pipeline
// errors count as computation errors; nil has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindComputation
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
