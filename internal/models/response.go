package models

// Error codes returned in ErrorResponse.Code.
const (
	ErrCodeBadRequest         = 40000
	ErrCodeValidation         = 40001
	ErrCodeNoActiveSession    = 40002
	ErrCodeInvalidVerifyToken = 40003
	ErrCodeWrongCredentials   = 40101
	ErrCodeTokenInvalid       = 40102
	ErrCodeTokenExpired       = 40103
	ErrCodeForbidden          = 40300
	ErrCodeEmailNotVerified   = 40301
	ErrCodeNotFound           = 40400
	ErrCodeUserNotFound       = 40401
	ErrCodeDuplicateEmail     = 40901
	ErrCodeRateLimited        = 42900
	ErrCodeInternal           = 50000
	ErrCodeGeneratorFailed    = 50201
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MessageResponse is returned by endpoints that only acknowledge an action.
type MessageResponse struct {
	Message string `json:"message"`
}
