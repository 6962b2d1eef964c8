/*
Package shared holds the building blocks every subdomain uses: the Money
value object, the aggregate and event contracts, the specification value
type, the repository and unit-of-work contracts, and the domain error
model.

Error design:
  - sentinel errors classify failures for errors.Is checks
  - DomainError carries the business context (entity, field, message)
    and captures the call stack at creation, formatted lazily
  - domain errors never carry transport concepts such as HTTP codes
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrNotFound classifies lookups of entities that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict classifies uniqueness and concurrent-modification failures.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput classifies malformed input detected before any
	// entity state changes.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvariant classifies legal-looking commands that break a domain
	// rule at mutation time (illegal transition, insufficient stock, ...).
	ErrInvariant = errors.New("invariant violation")
)

// DomainError is a structured error carrying business context and the
// stack of its creation point.
type DomainError struct {
	// Err is the underlying sentinel, exposed through Unwrap.
	Err error

	// Entity names the aggregate the error relates to ("order", "product").
	Entity string

	// Field optionally names the offending field for validation errors.
	Field string

	// Message is the human-readable description surfaced to callers.
	Message string

	stack []uintptr
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Unwrap() error { return e.Err }

// Stack formats the captured frames, one string per frame.
func (e *DomainError) Stack() []string { return FormatStack(e.stack) }

// Stacker is implemented by errors that captured their creation stack.
// The API layer uses it to log the error origin.
type Stacker interface {
	Stack() []string
}

// CaptureStack records the current call stack. skip is the number of
// frames to drop (usually 3: Callers, CaptureStack, the constructor).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders captured frames, filtering runtime internals and
// keeping at most 10 frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewDomainError creates a structured error wrapping the given sentinel,
// capturing the stack at the caller of the subdomain constructor.
func NewDomainError(sentinel error, entity, field, message string) *DomainError {
	return &DomainError{
		Err:     sentinel,
		Entity:  entity,
		Field:   field,
		Message: message,
		stack:   CaptureStack(4),
	}
}

// NewNotFoundError creates a not-found error for the named entity.
func NewNotFoundError(entity, message string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a conflict error (duplicate email, ...).
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a malformed-input error.
func NewValidationError(entity, field, message string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewInvariantError creates an invariant-violation error.
func NewInvariantError(entity, message string) error {
	return &DomainError{
		Err:     ErrInvariant,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}
