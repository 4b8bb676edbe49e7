// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
)

// ErrorCode defines supported error codes used across the sorter tree
// Values are stable for log compatibility; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic is for recovered panics
	ErrorCodePanic

	// ErrorCodeUsage is for command-line misuse
	ErrorCodeUsage

	// ErrorCodeInput is for unreadable or malformed input streams
	ErrorCodeInput

	// ErrorCodeOutput is for failures writing the sorted stream
	ErrorCodeOutput

	// ErrorCodeResource is for allocation, pipe, or spawn failures
	ErrorCodeResource

	// ErrorCodeCoordination is for a worker terminating unsuccessfully or
	// a wait that never resolves to a valid status
	ErrorCodeCoordination

	// ErrorCodeProtocol is for violated internal invariants; a defect,
	// never a recoverable condition
	ErrorCodeProtocol

	// ErrorCodeValidation is for invalid runtime options
	ErrorCodeValidation
)

// Exit status values for the process; the contract only requires zero on
// success and non-zero on failure, usage gets the conventional 2
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitStatusCode turns an ErrorCode into a process exit status
func ExitStatusCode(c ErrorCode) int {
	if c == ErrorCodeUsage {
		return ExitUsage
	}
	return ExitFailure
}

// ExitCode returns the exit status for any error, 0 for nil
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	return ExitStatusCode(CodeOf(err))
}

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing
// op is an optional operation tag; orig is the wrapped cause
type Error struct {
	orig error
	msg  string
	code ErrorCode
	op   string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Mutators (copy-on-write)

// WithOp attaches an operation label to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf wraps only when err != nil (helper for 1-liners)
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// Sugar

// Usagef returns a command-line usage error
func Usagef(format string, a ...any) error { return Newf(ErrorCodeUsage, format, a...) }

// Inputf returns an input-stream error
func Inputf(format string, a ...any) error { return Newf(ErrorCodeInput, format, a...) }

// Outputf returns an output-stream error
func Outputf(format string, a ...any) error { return Newf(ErrorCodeOutput, format, a...) }

// Resourcef returns a resource error
func Resourcef(format string, a ...any) error { return Newf(ErrorCodeResource, format, a...) }

// Coordinationf returns a worker-coordination error
func Coordinationf(format string, a ...any) error { return Newf(ErrorCodeCoordination, format, a...) }

// Protocolf returns a protocol-violation error
func Protocolf(format string, a ...any) error { return Newf(ErrorCodeProtocol, format, a...) }

// Validationf returns an options-validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// PanicErrf returns a panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Internalf returns a generic internal error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }
