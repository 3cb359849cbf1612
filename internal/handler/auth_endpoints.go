package handler

import (
	"net/http"

	"mood-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	registrationsTotal.Inc()
	c.JSON(http.StatusCreated, registerResponse{
		Message: "Registration successful, please check your email to verify your account",
		ID:      user.ID.String(),
		Email:   user.Email,
		Name:    user.Name,
	})
}

func (h *Handler) verifyEmail(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		handleServiceError(c, models.ErrVerificationLinkInvalid)
		return
	}
	if err := h.authService.VerifyEmail(c.Request.Context(), token); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Email verified, you can now log in"})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		loginsTotal.WithLabelValues("user", "failure").Inc()
		handleServiceError(c, err)
		return
	}

	loginsTotal.WithLabelValues("user", "success").Inc()
	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	refreshesTotal.Inc()
	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) logout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req logoutRequest
	// the body is optional; a missing refresh token only skips its revocation
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request data: "+err.Error())
			return
		}
	}

	accessUUID := c.GetString(ctxKeyAccessUUID)
	if err := h.authService.Logout(c.Request.Context(), userID, accessUUID, req.RefreshToken); err != nil {
		zap.L().Error("Logout failed", zap.Stringer("userID", userID), zap.Error(err))
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Successfully logged out"})
}

func (h *Handler) getMe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, meResponse{
		ID:         user.ID.String(),
		Email:      user.Email,
		Name:       user.Name,
		IsVerified: user.IsVerified,
		IsFilled:   user.IsFilled,
		Roles:      user.Roles,
	})
}
