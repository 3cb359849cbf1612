package handler

import (
	"mood-server/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler serves the public HTTP API.
type Handler struct {
	authService          service.AuthService
	userService          service.UserService
	adminService         service.AdminService
	questionnaireService service.QuestionnaireService
}

func NewHandler(
	authService service.AuthService,
	userService service.UserService,
	adminService service.AdminService,
	questionnaireService service.QuestionnaireService,
) *Handler {
	return &Handler{
		authService:          authService,
		userService:          userService,
		adminService:         adminService,
		questionnaireService: questionnaireService,
	}
}

// RegisterRoutes mounts every route on router. authRateLimit guards the
// unauthenticated credential endpoints; pass nil to disable it.
func (h *Handler) RegisterRoutes(router *gin.Engine, authRateLimit gin.HandlerFunc) {
	limited := []gin.HandlerFunc{}
	if authRateLimit != nil {
		limited = append(limited, authRateLimit)
	}

	authGroup := router.Group("/auth", limited...)
	{
		authGroup.POST("/register", h.register)
		authGroup.GET("/verify/:token", h.verifyEmail)
		authGroup.POST("/login", h.login)
		authGroup.POST("/refresh", h.refresh)
		authGroup.POST("/logout", h.AuthMiddleware(), h.logout)
	}

	api := router.Group("/api", h.AuthMiddleware())
	{
		api.GET("/me", h.getMe)
	}

	users := router.Group("/users", h.AuthMiddleware())
	{
		users.GET("/check_is_filled", h.checkIsFilled)
		users.POST("/set_is_filled", h.setIsFilled)
		users.POST("/log", h.upsertMoodLog)
		users.GET("/log", h.listMoodLogs)
		users.GET("/profile", h.getProfile)
		users.PUT("/profile", h.saveProfile)
	}

	q := router.Group("/questionnaire", h.AuthMiddleware())
	{
		q.POST("/start", h.startQuestionnaire)
		q.POST("/next", h.nextQuestion)
		q.GET("/summary", h.summarizeQuestionnaire)
	}

	router.POST("/admin/login", append(limited, h.adminLogin)...)
	admin := router.Group("/admin", h.AuthMiddleware(), h.RequireAdminRoleMiddleware())
	{
		admin.GET("/users", h.listUsers)
		admin.DELETE("/users/:user_id", h.deleteUser)
		admin.GET("/mood-logs", h.listAllMoodLogs)
	}
}
