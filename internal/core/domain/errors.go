// Package domain defines the core domain models for hublink.
package domain

import "fmt"

// DomainError represents a business domain error with a structured error code.
// Codes have the form HL-<GROUP>-<NNNN>; the last four digits follow the
// HTTP status the transport layer maps the error to.
type DomainError struct {
	Code    string // Error code (e.g., "HL-LINK-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// ============================================================================
// Link Token Errors (LINK)
// ============================================================================

var (
	// ErrLinkTokenInvalid indicates the token is unknown, already used or swept.
	ErrLinkTokenInvalid = NewDomainError("HL-LINK-4040", "invalid link token")

	// ErrLinkTokenExpired indicates the token was found past its deadline.
	// The entry is removed when this is reported.
	ErrLinkTokenExpired = NewDomainError("HL-LINK-4100", "link token expired")
)

// ============================================================================
// Account Errors (ACCT)
// ============================================================================

var (
	// ErrAccountNotFound indicates no linked account exists for the identity.
	ErrAccountNotFound = NewDomainError("HL-ACCT-4040", "linked account not found")
)

// ============================================================================
// Authentication Errors (AUTH)
// ============================================================================

var (
	// ErrAPIKeyMissing indicates no API key was provided.
	ErrAPIKeyMissing = NewDomainError("HL-AUTH-4010", "api key not provided")

	// ErrAPIKeyInvalid indicates the API key does not match.
	ErrAPIKeyInvalid = NewDomainError("HL-AUTH-4011", "invalid api key")

	// ErrHubUserMissing indicates the login proxy did not identify the hub user.
	ErrHubUserMissing = NewDomainError("HL-AUTH-4012", "hub user not authenticated")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternalServer indicates an internal server error.
	ErrInternalServer = NewDomainError("HL-SYS-5000", "internal server error")

	// ErrServiceUnavailable indicates the service is temporarily unavailable.
	ErrServiceUnavailable = NewDomainError("HL-SYS-5030", "service unavailable")

	// ErrBadRequest indicates a malformed request.
	ErrBadRequest = NewDomainError("HL-SYS-4000", "bad request")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("HL-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("HL-ARG-1002", "missing required argument")
)
