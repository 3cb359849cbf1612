package handler

import (
	"net/http"

	"mood-server/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) checkIsFilled(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	filled, err := h.userService.IsFilled(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, isFilledResponse{IsFilled: filled})
}

func (h *Handler) setIsFilled(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.userService.SetFilled(c.Request.Context(), userID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Questionnaire marked as filled"})
}

func (h *Handler) upsertMoodLog(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req moodLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	entry, err := h.userService.UpsertMoodLog(c.Request.Context(), userID, req.Date, req.Mood, req.Diary)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	moodLogWritesTotal.Inc()
	c.JSON(http.StatusOK, toMoodLogResponse(*entry))
}

func (h *Handler) listMoodLogs(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	logs, err := h.userService.ListMoodLogs(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := moodLogListResponse{Logs: make([]moodLogResponse, 0, len(logs))}
	for _, l := range logs {
		resp.Logs = append(resp.Logs, toMoodLogResponse(l))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getProfile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse{Activity: profile.Activity, IsFilled: profile.IsFilled})
}

func (h *Handler) saveProfile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	profile, err := h.userService.SaveProfile(c.Request.Context(), userID, req.Activity)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse{Activity: profile.Activity, IsFilled: profile.IsFilled})
}

func toMoodLogResponse(l models.MoodLog) moodLogResponse {
	return moodLogResponse{
		Date:  l.LogDate.Format(models.LogDateLayout),
		Mood:  l.Mood,
		Diary: l.Diary,
	}
}
