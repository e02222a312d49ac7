package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. Every failing run maps to exactly
// one kind, and each kind has its own process exit code.
type Kind int

const (
	KindUnknown Kind = iota
	KindNoStagedChanges
	KindDiffTooLarge
	KindAuthenticationFailed
	KindNetworkError
	KindServiceError
	KindEmptyResponse
	KindInvalidFormat
	KindCommitFailed
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNoStagedChanges:
		return "NoStagedChanges"
	case KindDiffTooLarge:
		return "DiffTooLarge"
	case KindAuthenticationFailed:
		return "AuthenticationFailed"
	case KindNetworkError:
		return "NetworkError"
	case KindServiceError:
		return "ServiceError"
	case KindEmptyResponse:
		return "EmptyResponse"
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindCommitFailed:
		return "CommitFailed"
	default:
		return "Unknown"
	}
}

// ExitCode returns the process exit code for the kind
func (k Kind) ExitCode() int {
	switch k {
	case KindNoStagedChanges:
		return 10
	case KindDiffTooLarge:
		return 11
	case KindAuthenticationFailed:
		return 12
	case KindNetworkError:
		return 13
	case KindServiceError:
		return 14
	case KindEmptyResponse:
		return 15
	case KindInvalidFormat:
		return 16
	case KindCommitFailed:
		return 17
	default:
		return 1
	}
}

// Error is an error carrying a failure kind. It supports errors.Is/As
// so callers can match on the kind while still unwrapping the cause.
type Error struct {
	kind  Kind
	cause error
}

// New creates an Error with the given kind and message
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, cause: errors.New(msg)}
}

// Newf creates an Error with the given kind and formatted message.
// Format arguments may include a wrapped error via %w.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, cause: fmt.Errorf(format, args...)}
}

// Wrap attaches a kind to an existing error
func Wrap(kind Kind, err error) *Error {
	return &Error{kind: kind, cause: err}
}

// Kind returns the failure kind
func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Error() string {
	return e.cause.Error()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf returns the failure kind of err, or KindUnknown if err carries
// no kind anywhere in its chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// ExitCode returns the process exit code for err (0 for nil)
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).ExitCode()
}
