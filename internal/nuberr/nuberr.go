// Package nuberr defines nub's single user-facing error type. Per spec §7,
// only user-input errors (bad shape, bad range, missing file, unreadable
// input, --profile without a path) ever reach the CLI's top-level handler;
// every other error kind (parse, invalid-regex, encoding, config) is
// recovered locally within the package that produced it and never surfaces
// here.
package nuberr

import "fmt"

// Error is a typed error carrying the process exit code it should produce.
// It implements error and supports errors.As/errors.Is via Unwrap.
type Error struct {
	Code    int
	Message string
	Err     error
}

// Error returns the formatted message, including the wrapped error if any.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error, enabling errors.Is/errors.As traversal.
func (e *Error) Unwrap() error {
	return e.Err
}

// UserInput wraps a user-input error (spec §7) with exit code 1.
func UserInput(msg string, err error) *Error {
	return &Error{Code: 1, Message: msg, Err: err}
}

// ExitCode extracts the process exit code from err: 0 for nil, the carried
// Code for an *Error, 1 for any other non-nil error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return 1
}
