package domain

import (
	"errors"   // Error classification
	"net/http" // HTTP status codes
)

// Error is a request-scoped failure with a machine-readable code
type Error struct {
	Code    string // Machine-readable error code
	Status  int    // HTTP status the transport renders
	Message string // Human readable message
}

func (e *Error) Error() string {
	return e.Message
}

// Authentication
var (
	ErrMalformedCredential = &Error{Code: "MALFORMED_CREDENTIAL", Status: http.StatusUnauthorized, Message: "Missing or malformed Authorization header"}
	ErrInvalidCredential   = &Error{Code: "INVALID_CREDENTIAL", Status: http.StatusUnauthorized, Message: "Invalid or expired token"}
	ErrBadLogin            = &Error{Code: "INVALID_CREDENTIAL", Status: http.StatusUnauthorized, Message: "Invalid email or password"}
)

// Authorization
var (
	ErrForbidden = &Error{Code: "FORBIDDEN", Status: http.StatusForbidden, Message: "Access to this resource is forbidden"}
)

// Validation
var (
	ErrInvalidRequest    = &Error{Code: "INVALID_REQUEST", Status: http.StatusBadRequest, Message: "Invalid request"}
	ErrInvalidAmount     = &Error{Code: "INVALID_AMOUNT", Status: http.StatusBadRequest, Message: "Amount must be a positive integer"}
	ErrInvalidQuantity   = &Error{Code: "INVALID_QUANTITY", Status: http.StatusBadRequest, Message: "Quantity must be a positive integer"}
	ErrEmptyReturnReason = &Error{Code: "EMPTY_RETURN_REASON", Status: http.StatusBadRequest, Message: "Return reason is required"}
	ErrInvalidInquiry    = &Error{Code: "INVALID_REQUEST", Status: http.StatusBadRequest, Message: "Unknown inquiry type"}
	ErrEmailNotVerified  = &Error{Code: "EMAIL_NOT_VERIFIED", Status: http.StatusBadRequest, Message: "Email address has not been verified"}
	ErrInvalidEmailCode  = &Error{Code: "INVALID_EMAIL_CODE", Status: http.StatusBadRequest, Message: "Verification code is invalid or expired"}
	ErrDuplicateEmail    = &Error{Code: "DUPLICATE_EMAIL", Status: http.StatusConflict, Message: "Email is already registered"}
	ErrWrongPassword     = &Error{Code: "WRONG_PASSWORD", Status: http.StatusBadRequest, Message: "Current password does not match"}
	ErrWeakPassword      = &Error{Code: "INVALID_REQUEST", Status: http.StatusBadRequest, Message: "Password must be 8-20 letters, digits or symbols"}
	ErrTooManyRequests   = &Error{Code: "TOO_MANY_REQUESTS", Status: http.StatusTooManyRequests, Message: "Too many requests, try again later"}
)

// State
var (
	ErrInvalidStateTransition = &Error{Code: "INVALID_STATE_TRANSITION", Status: http.StatusConflict, Message: "Order item cannot move to the requested state"}
	ErrInsufficientBalance    = &Error{Code: "INSUFFICIENT_BALANCE", Status: http.StatusConflict, Message: "Insufficient mileage balance"}
)

// Not found
var (
	ErrNotFound = &Error{Code: "NOT_FOUND", Status: http.StatusNotFound, Message: "Resource not found"}
)

// ErrInternal is what infrastructure failures are rendered as
var ErrInternal = &Error{Code: "INTERNAL", Status: http.StatusInternalServerError, Message: "Internal server error"}

// AsError extracts the domain error from err, or reports false for infrastructure failures
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
