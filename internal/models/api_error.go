package models

import "fmt"

// ErrorCode is a string type for consistent error codes.
type ErrorCode string

// Predefined error codes for common API errors.
const (
	// Generic
	ErrorCodeInternalServerError ErrorCode = "internal_server_error"
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeNotFound            ErrorCode = "not_found"
	ErrorCodeForbidden           ErrorCode = "forbidden"
	ErrorCodeUnauthorized        ErrorCode = "unauthorized"

	// Authentication & Authorization
	ErrorCodeInvalidToken       ErrorCode = "invalid_token"
	ErrorCodeTokenExpired       ErrorCode = "token_expired"
	ErrorCodeTokenMalformed     ErrorCode = "token_malformed"
	ErrorCodeInvalidCredentials ErrorCode = "invalid_credentials"

	// Validation
	ErrorCodeValidationFailed  ErrorCode = "validation_failed"
	ErrorCodeMissingParameter  ErrorCode = "missing_parameter"
	ErrorCodeInvalidFormat     ErrorCode = "invalid_format"
	ErrorCodeAttributionFailed ErrorCode = "attribution_failed"

	// Resource specific
	ErrorCodeDuplicateResource ErrorCode = "duplicate_resource"

	// Persistence
	ErrorCodeStoreError ErrorCode = "store_error"
)

type APIError struct {
	Code       ErrorCode `json:"code"`              // Use the ErrorCode type
	Message    string    `json:"message"`           // Human-readable error message
	Details    any       `json:"details,omitempty"` // Optional: additional details
	StatusCode int       `json:"-"`                 // HTTP status code
}

// Error makes APIError implement the error interface.
func (e APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewAPIError is a constructor for APIError.
func NewAPIError(code ErrorCode, message string, details any, statusCode int) APIError {
	return APIError{
		Code:       code,
		Message:    message,
		Details:    details,
		StatusCode: statusCode,
	}
}
