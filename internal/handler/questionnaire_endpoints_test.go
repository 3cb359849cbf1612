package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"mood-server/internal/ai"
	"mood-server/internal/models"
	"mood-server/internal/questionnaire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestQuestionnaireFlow(t *testing.T) {
	f := newFixture(t)
	first := "問題：你今天的心情如何？\n選項一：很好\n選項二：普通"
	second := "問題：你最近睡得好嗎？\n選項一：很好\n選項二：還可以"

	f.questionnaire.On("Start", mock.Anything, testUserID).Return(questionnaire.Result{Text: first}, nil).Once()
	f.questionnaire.On("Next", mock.Anything, testUserID, "很好").Return(questionnaire.Result{Text: second}, nil).Once()
	f.questionnaire.On("Summarize", mock.Anything, testUserID).Return("建議你多到戶外散步。", nil).Once()

	w := f.do(t, http.MethodPost, "/questionnaire/start", userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first, decode[map[string]any](t, w)["question"])

	w = f.do(t, http.MethodPost, "/questionnaire/next", userToken, map[string]string{"answer": "很好"})
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]any](t, w)
	assert.Equal(t, second, resp["question"])
	assert.NotContains(t, resp, "exhausted")

	w = f.do(t, http.MethodGet, "/questionnaire/summary", userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recommendation":"建議你多到戶外散步。"}`, w.Body.String())
}

func TestQuestionnaireExhausted(t *testing.T) {
	f := newFixture(t)
	f.questionnaire.On("Next", mock.Anything, testUserID, "").
		Return(questionnaire.Result{Text: questionnaire.ExhaustedMessage, Exhausted: true}, nil).Once()

	w := f.do(t, http.MethodPost, "/questionnaire/next", userToken, map[string]string{})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]any](t, w)
	assert.Equal(t, questionnaire.ExhaustedMessage, resp["question"])
	assert.Equal(t, true, resp["exhausted"])
}

func TestQuestionnaireErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   int
	}{
		{"not started", questionnaire.ErrNoActiveSession, http.StatusBadRequest, models.ErrCodeNoActiveSession},
		{"generator down", fmt.Errorf("follow-up generation failed: %w", ai.ErrGeneratorUnavailable), http.StatusBadGateway, models.ErrCodeGeneratorFailed},
		{"generator timeout", ai.ErrGenerationTimeout, http.StatusBadGateway, models.ErrCodeGeneratorFailed},
		{"client gone", context.Canceled, http.StatusServiceUnavailable, models.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.questionnaire.On("Next", mock.Anything, testUserID, "x").Return(questionnaire.Result{}, tt.err).Once()
			f.questionnaire.On("Summarize", mock.Anything, testUserID).Return("", tt.err).Once()

			w := f.do(t, http.MethodPost, "/questionnaire/next", userToken, map[string]string{"answer": "x"})
			assertErrorCode(t, w, tt.status, tt.code)

			w = f.do(t, http.MethodGet, "/questionnaire/summary", userToken, nil)
			assertErrorCode(t, w, tt.status, tt.code)
		})
	}

	t.Run("not started message", func(t *testing.T) {
		f := newFixture(t)
		f.questionnaire.On("Summarize", mock.Anything, testUserID).Return("", questionnaire.ErrNoActiveSession).Once()
		w := f.do(t, http.MethodGet, "/questionnaire/summary", userToken, nil)
		assert.Equal(t, "questionnaire not started", decode[models.ErrorResponse](t, w).Message)
	})
}

func TestQuestionnaireRequiresAuth(t *testing.T) {
	f := newFixture(t)
	for _, path := range []string{"/questionnaire/start", "/questionnaire/next"} {
		w := f.do(t, http.MethodPost, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
