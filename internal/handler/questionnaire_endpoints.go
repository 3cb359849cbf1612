package handler

import (
	"net/http"

	"mood-server/internal/questionnaire"

	"github.com/gin-gonic/gin"
)

func (h *Handler) startQuestionnaire(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	res, err := h.questionnaireService.Start(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuestionResponse(res))
}

func (h *Handler) nextQuestion(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	res, err := h.questionnaireService.Next(c.Request.Context(), userID, req.Answer)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuestionResponse(res))
}

func (h *Handler) summarizeQuestionnaire(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	recommendation, err := h.questionnaireService.Summarize(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryResponse{Recommendation: recommendation})
}

func toQuestionResponse(res questionnaire.Result) questionResponse {
	return questionResponse{Question: res.Text, Exhausted: res.Exhausted}
}
