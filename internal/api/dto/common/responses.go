package common

// ErrorResponse is the body of every failed relay response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	CooldownMode string `json:"cooldown_mode"`
}

// Define type for error codes to enforce consistency
type ErrorCode string

// Standard error codes, used for logs and metrics labels
const (
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests  ErrorCode = "TOO_MANY_REQUESTS"
	ErrCodeDownstream       ErrorCode = "DOWNSTREAM_ERROR"
	ErrCodeInternalServer   ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrCodeUnavailable      ErrorCode = "SERVICE_UNAVAILABLE"
)

// Client-facing messages
const (
	MsgMethodNotAllowed = "Method not allowed"
	MsgMissingFields    = "Missing fields"
	MsgCooldown         = "You can only submit a message once every 6 hours"
	MsgRateLimited      = "Rate limit exceeded. Please try again later."
	MsgInternal         = "Internal server error"
)

// NewErrorResponse creates a new error response body
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
