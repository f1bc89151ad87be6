package models

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	ErrBadRequest     = "BAD_REQUEST"
	ErrUnauthorized   = "UNAUTHORIZED"
	ErrForbidden      = "FORBIDDEN"
	ErrNotFound       = "NOT_FOUND"
	ErrConflict       = "CONFLICT"
	ErrTooManyRequest = "TOO_MANY_REQUESTS"
	ErrInternalServer = "INTERNAL_SERVER_ERROR"

	// Product-specific errors
	ErrProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrProductInvalidData = "PRODUCT_INVALID_DATA"

	// Auth errors
	ErrInvalidCredentials = "INVALID_CREDENTIALS"
	ErrInvalidToken       = "INVALID_TOKEN"
	ErrUserExists         = "USER_ALREADY_EXISTS"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
