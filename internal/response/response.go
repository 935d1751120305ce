package response

// SuccessResponse is the generic success envelope.
type SuccessResponse struct {
	Message string `json:"message" example:"operation completed"`
}

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	// Machine-readable error code
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Human-readable message
	// example: start time must be before end time
	Message string `json:"message"`

	// Optional extra detail
	Details string `json:"details,omitempty"`
}

// TokenResponse carries an issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Common error codes.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeAuthorization     = "AUTHORIZATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeDB                = "DB_ERROR"
	CodeInvalidCreds      = "INVALID_CREDENTIALS"
)
