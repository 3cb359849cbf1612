package models

import "errors"

// Application-wide standard errors
var (
	ErrNotFound = errors.New("resource not found")

	// User & Authentication Errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email address is not verified")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and contain upper case, lower case and special characters")
	ErrForbidden          = errors.New("forbidden")

	// Token Errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenNotFound  = errors.New("token not found in storage")

	// ErrVerificationLinkInvalid covers bad, expired and wrong-purpose confirmation tokens.
	ErrVerificationLinkInvalid = errors.New("verification link is invalid or has expired")

	// Mood log Errors
	ErrInvalidLogDate = errors.New("date must be formatted as YYYY-MM-DD")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidInput   = errors.New("invalid input data")
)
