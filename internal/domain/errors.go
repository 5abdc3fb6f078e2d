package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so callers can react without string matching.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindConflict            Kind = "conflict"
	KindInvalidState        Kind = "invalid_state"
	KindInvalidInput        Kind = "invalid_input"
	KindAccessDenied        Kind = "access_denied"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
)

// Sentinels usable with errors.Is. Every *Error matches the sentinel of its kind.
var (
	ErrNotFound            = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict            = &Error{Kind: KindConflict, Message: "conflict"}
	ErrInvalidState        = &Error{Kind: KindInvalidState, Message: "invalid state"}
	ErrInvalidInput        = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrAccessDenied        = &Error{Kind: KindAccessDenied, Message: "access denied"}
	ErrUpstreamUnavailable = &Error{Kind: KindUpstreamUnavailable, Message: "upstream unavailable"}
)

// Error is the error type returned by domain and application code.
type Error struct {
	Kind    Kind
	Message string

	// Role is set on access-denied errors for diagnostics.
	Role string
	// From and To are set on invalid-state errors.
	From string
	To   string

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is a domain error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewConflictError reports a conflicting write (overlap, stale version, vetoed room).
func NewConflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NewInvalidStateError reports an illegal status transition.
func NewInvalidStateError(from, to string) *Error {
	return &Error{
		Kind:    KindInvalidState,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
		From:    from,
		To:      to,
	}
}

// NewValidationError reports bad caller input.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// NewAccessDeniedError reports an authorization veto for the given role and operation.
func NewAccessDeniedError(role, operation string) *Error {
	if role == "" {
		role = "anonymous"
	}
	return &Error{
		Kind:    KindAccessDenied,
		Message: fmt.Sprintf("role %s is not allowed to %s", role, operation),
		Role:    role,
	}
}

// NewUpstreamError reports an unreachable or timed-out collaborator.
func NewUpstreamError(service string, cause error) *Error {
	return &Error{
		Kind:    KindUpstreamUnavailable,
		Message: fmt.Sprintf("%s unavailable", service),
		cause:   cause,
	}
}

// KindOf returns the kind of the first domain error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
