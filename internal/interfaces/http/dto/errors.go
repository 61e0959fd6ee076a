package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used for invalid input data
	ErrCodeValidation = "ERR_VALIDATION"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidTransition is used when an operation is invalid for the current status
	ErrCodeInvalidTransition = "ERR_INVALID_TRANSITION"
	// ErrCodeInvalidTarget is used when a requested bed is occupied or is the current bed
	ErrCodeInvalidTarget = "ERR_INVALID_TARGET"
	// ErrCodeCodeExpired is used when a resolution code has expired
	ErrCodeCodeExpired = "ERR_CODE_EXPIRED"
	// ErrCodeInvalidCode is used when a submitted resolution code does not match
	ErrCodeInvalidCode = "ERR_INVALID_CODE"
	// ErrCodeTooManyAttempts is used when the verification attempt limit is exhausted
	ErrCodeTooManyAttempts = "ERR_TOO_MANY_ATTEMPTS"
	// ErrCodeReassignmentFailed is used when an approval was rolled back because
	// the bed reassignment could not be completed
	ErrCodeReassignmentFailed = "ERR_REASSIGNMENT_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidTransition:  http.StatusUnprocessableEntity,
	ErrCodeInvalidTarget:      http.StatusUnprocessableEntity,
	ErrCodeCodeExpired:        http.StatusUnprocessableEntity,
	ErrCodeInvalidCode:        http.StatusUnprocessableEntity,
	ErrCodeTooManyAttempts:    http.StatusTooManyRequests,
	ErrCodeReassignmentFailed: http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to wire-level codes
var DomainErrorCodeMapping = map[string]string{
	"VALIDATION_ERROR":     ErrCodeValidation,
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INVALID_TRANSITION":   ErrCodeInvalidTransition,
	"INVALID_TARGET":       ErrCodeInvalidTarget,
	"CODE_EXPIRED":         ErrCodeCodeExpired,
	"INVALID_CODE":         ErrCodeInvalidCode,
	"TOO_MANY_ATTEMPTS":    ErrCodeTooManyAttempts,
	"REASSIGNMENT_FAILED":  ErrCodeReassignmentFailed,
	"INTERNAL_ERROR":       ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the wire format.
// If the code is already in the wire format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
