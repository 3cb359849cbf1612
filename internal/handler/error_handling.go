package handler

import (
	"context"
	"errors"
	"net/http"

	"mood-server/internal/ai"
	"mood-server/internal/models"
	"mood-server/internal/questionnaire"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, questionnaire.ErrNoActiveSession):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeNoActiveSession, Message: questionnaire.ErrNoActiveSession.Error()}
	case errors.Is(err, ai.ErrGeneratorUnavailable), errors.Is(err, ai.ErrGenerationTimeout):
		zap.L().Error("Text generator failed", zap.Error(err))
		statusCode = http.StatusBadGateway
		errResp = models.ErrorResponse{Code: models.ErrCodeGeneratorFailed, Message: "Text generator is unavailable, please try again later"}
	case errors.Is(err, models.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeWrongCredentials, Message: "Invalid email or password"}
	case errors.Is(err, models.ErrEmailNotVerified):
		statusCode = http.StatusForbidden
		errResp = models.ErrorResponse{Code: models.ErrCodeEmailNotVerified, Message: "Please verify your email address first"}
	case errors.Is(err, models.ErrEmailAlreadyExists):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeDuplicateEmail, Message: "Email already exists"}
	case errors.Is(err, models.ErrUserNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.ErrCodeUserNotFound, Message: "User not found"}
	case errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.ErrCodeNotFound, Message: "Resource not found"}
	case errors.Is(err, models.ErrVerificationLinkInvalid):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeInvalidVerifyToken, Message: err.Error()}
	case errors.Is(err, models.ErrInvalidEmail),
		errors.Is(err, models.ErrWeakPassword),
		errors.Is(err, models.ErrInvalidLogDate):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeValidation, Message: err.Error()}
	case errors.Is(err, models.ErrBadRequest), errors.Is(err, models.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: err.Error()}
	case errors.Is(err, models.ErrTokenInvalid), errors.Is(err, models.ErrTokenMalformed), errors.Is(err, models.ErrTokenNotFound):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Message: "Token is invalid or malformed"}
	case errors.Is(err, models.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeTokenExpired, Message: "Token has expired"}
	case errors.Is(err, models.ErrForbidden):
		statusCode = http.StatusForbidden
		errResp = models.ErrorResponse{Code: models.ErrCodeForbidden, Message: "Forbidden"}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		zap.L().Warn("Request cancelled before completion", zap.Error(err))
		statusCode = http.StatusServiceUnavailable
		errResp = models.ErrorResponse{Code: models.ErrCodeInternal, Message: "Request was cancelled"}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Code: models.ErrCodeInternal, Message: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: message})
}
