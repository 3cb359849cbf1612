package handler

import (
	"net/http"

	"mood-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) adminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	tokens, err := h.authService.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		loginsTotal.WithLabelValues("admin", "failure").Inc()
		handleServiceError(c, err)
		return
	}

	loginsTotal.WithLabelValues("admin", "success").Inc()
	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := adminUserListResponse{Users: make([]adminUserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, adminUserResponse{
			ID:         u.ID.String(),
			Email:      u.Email,
			Name:       u.Name,
			IsVerified: u.IsVerified,
			IsFilled:   u.IsFilled,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		badRequest(c, "Invalid user ID format")
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	zap.L().Info("User deleted by admin", zap.Stringer("userID", userID))
	c.JSON(http.StatusOK, models.MessageResponse{Message: "User deleted"})
}

func (h *Handler) listAllMoodLogs(c *gin.Context) {
	entries, err := h.adminService.ListMoodLogs(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := adminMoodLogListResponse{Logs: make([]adminMoodLogResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Logs = append(resp.Logs, adminMoodLogResponse{
			ID:       e.ID,
			UserName: e.UserName,
			Date:     e.Date,
			Mood:     e.Mood,
			Diary:    e.Diary,
		})
	}
	c.JSON(http.StatusOK, resp)
}
