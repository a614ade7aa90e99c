package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error so callers can react without matching on message
// text. Every error the core surfaces carries exactly one kind.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound - referenced student, grade or enrollment row does not exist
	KindNotFound
	// KindDuplicate - a uniqueness constraint would be violated
	KindDuplicate
	// KindCapacityExceeded - seat assignment attempted against a full grade
	KindCapacityExceeded
	// KindOccupied - grade deletion attempted while seats are taken
	KindOccupied
	// KindContention - a conflicting concurrent transaction; the caller should retry
	KindContention
	// KindValidation - malformed input
	KindValidation
	// KindUnauthorized - missing or rejected credentials
	KindUnauthorized
)

// String returns a stable label for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	case KindCapacityExceeded:
		return "capacity_exceeded"
	case KindOccupied:
		return "occupied"
	case KindContention:
		return "contention"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Common errors
var (
	ErrStudentNotFound    = &Error{Kind: KindNotFound, Message: "student not found"}
	ErrGradeNotFound      = &Error{Kind: KindNotFound, Message: "grade not found"}
	ErrEnrollmentNotFound = &Error{Kind: KindNotFound, Message: "enrollment not found for school year"}
	ErrGuardianNotFound   = &Error{Kind: KindNotFound, Message: "guardian not found"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Message: "user not found"}

	ErrGradeAlreadyExists = &Error{Kind: KindDuplicate, Message: "grade with this name, level, section and shift already exists"}
	ErrStudentEnrolled    = &Error{Kind: KindDuplicate, Message: "student already has an enrollment for this school year"}

	ErrGradeFull     = &Error{Kind: KindCapacityExceeded, Message: "grade has no free seats"}
	ErrGradeOccupied = &Error{Kind: KindOccupied, Message: "grade still has enrolled students"}

	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "invalid credentials"}
	ErrTokenInvalid       = &Error{Kind: KindUnauthorized, Message: "invalid token"}
	ErrTokenExpired       = &Error{Kind: KindUnauthorized, Message: "token expired"}
	ErrPermissionDenied   = &Error{Kind: KindUnauthorized, Message: "permission denied"}
)

// Error is the typed result every operation in the core surfaces. The kind is
// the contract; the message is for logs and API payloads.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match apperrors by kind and message, so the sentinel vars
// above keep working as targets after wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Message == "" || t.Message == e.Message)
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain, KindUnknown if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
