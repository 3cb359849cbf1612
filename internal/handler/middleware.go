package handler

import (
	"net/http"
	"strings"

	"mood-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ctxKeyUserID     = "user_id"
	ctxKeyAccessUUID = "access_uuid"
	ctxKeyRoles      = "roles"
)

// AuthMiddleware requires a valid bearer access token and stores its
// claims in the gin context.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			zap.L().Warn("Authorization header missing")
			tokenVerificationsTotal.WithLabelValues("access", "failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			zap.L().Warn("Invalid Authorization header format")
			tokenVerificationsTotal.WithLabelValues("access", "failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		claims, err := h.authService.VerifyAccessToken(c.Request.Context(), parts[1])
		if err != nil {
			zap.L().Warn("Access token verification failed", zap.Error(err))
			tokenVerificationsTotal.WithLabelValues("access", "failure").Inc()
			handleServiceError(c, err)
			return
		}

		tokenVerificationsTotal.WithLabelValues("access", "success").Inc()
		c.Set(ctxKeyUserID, claims.UserID)
		c.Set(ctxKeyAccessUUID, claims.ID)
		c.Set(ctxKeyRoles, claims.Roles)
		c.Next()
	}
}

// RequireAdminRoleMiddleware must run after AuthMiddleware.
func (h *Handler) RequireAdminRoleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := c.GetStringSlice(ctxKeyRoles)
		if !models.HasRole(roles, models.RoleAdmin) {
			zap.L().Warn("Admin route accessed without admin role", zap.Strings("roles", roles))
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Code:    models.ErrCodeForbidden,
				Message: "Admin privileges required",
			})
			return
		}
		c.Next()
	}
}

func getUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// mustUserID aborts with 401 when the context carries no user.
func mustUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := getUserID(c)
	if !ok {
		zap.L().Error("User ID missing from context on an authenticated route", zap.String("path", c.FullPath()))
		handleServiceError(c, models.ErrTokenInvalid)
	}
	return id, ok
}
