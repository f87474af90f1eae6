// Package exitreason describes how a process reached its terminal state.
//
// A process that returns normally finishes with [Normal]; one whose logic
// returned or panicked with an error fails with an [Exception] reason.
// The remaining sentinels cover runtime conditions: [NoProc] for
// operations on dead or unknown addresses, [Timeout] for expired waits
// and receives, and [Killed] for processes torn down with Kill.
package exitreason

import (
	"errors"
	"fmt"
)

const (
	normal    = "normal"
	exception = "error"
	noProc    = "noproc"
	timeout   = "timeout"
	killed    = "killed"
	testExit  = "test_exit"
)

// Opaque reason type. Use the constructors and sentinels in this package
// to create instances and the Is* helpers (or [errors.Is]) to test them.
//
// For convenience it implements the [error] and [fmt.Stringer] interfaces.
type S struct {
	short     string
	err       error
	exception error
}

func (s *S) Error() string {
	if s.short == exception {
		return fmt.Sprintf("EXIT{error: %v}", s.exception)
	}
	return fmt.Sprintf("EXIT{%s}", s.short)
}

func (s *S) String() string {
	return s.Error()
}

// ExceptionDetail returns the underlying error of an Exception reason,
// or nil for every other kind.
func (s *S) ExceptionDetail() error {
	return s.exception
}

func (s *S) Unwrap() error {
	return s.err
}

// private sentinel that Exception reasons wrap
var exceptionErr = &S{short: exception}

// Sentinel reasons
var (
	// A normal process exit.
	Normal = &S{short: normal}
	// The address does not identify a live process.
	NoProc = &S{short: noProc}
	// Returned when a wait or receive exceeds its specified timeout.
	Timeout = &S{short: timeout}
	// The process was torn down with Kill before its logic returned.
	Killed = &S{short: killed}
	// Used by test helpers to stop their receivers.
	TestExit = &S{short: testExit}
)

// IsExitReason tests whether e is or wraps a *S. If not, returns nil.
func IsExitReason(e error) (err *S) {
	if errors.As(e, &err) {
		return err
	}
	return nil
}

// IsNormal tests if e is a Normal exit.
func IsNormal(e error) bool {
	return errors.Is(e, Normal)
}

// Exception wraps an error raised by process logic, either returned from
// it or recovered from a panic.
func Exception(reason error) error {
	return &S{exception: reason, err: exceptionErr, short: exception}
}

// IsException tests if e is an Exception reason.
func IsException(e error) bool {
	return errors.Is(e, exceptionErr)
}

// To converts e to a *S, or nil if it isn't one.
func To(e error) *S {
	return IsExitReason(e)
}

// Wrap takes any error and, if it is not already a *S, wraps it as an
// [Exception].
func Wrap(e error) error {
	if er := IsExitReason(e); er != nil {
		return er
	}
	return Exception(e)
}
