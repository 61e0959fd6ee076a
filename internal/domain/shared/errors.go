package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrValidation          = NewDomainError("VALIDATION_ERROR", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidTransition   = NewDomainError("INVALID_TRANSITION", "Operation not allowed in current state")
	ErrCodeExpired         = NewDomainError("CODE_EXPIRED", "Resolution code has expired")
	ErrTooManyAttempts     = NewDomainError("TOO_MANY_ATTEMPTS", "Too many failed verification attempts")
	ErrInvalidTarget       = NewDomainError("INVALID_TARGET", "Requested target is invalid or occupied")
	ErrReassignmentFailed  = NewDomainError("REASSIGNMENT_FAILED", "Accommodation reassignment failed")
)
