package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mood-server/internal/handler"
	"mood-server/internal/mocks"
	"mood-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	userToken  = "user-access-token"
	adminToken = "admin-access-token"
	accessUUID = "access-uuid-1"
)

var testUserID = uuid.MustParse("7b1f3c1e-2a7a-4d2e-9f55-0a4c8a9f1e01")

type fixture struct {
	router        *gin.Engine
	auth          *mocks.MockAuthService
	users         *mocks.MockUserService
	admin         *mocks.MockAdminService
	questionnaire *mocks.MockQuestionnaireService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		router:        gin.New(),
		auth:          mocks.NewMockAuthService(t),
		users:         mocks.NewMockUserService(t),
		admin:         mocks.NewMockAdminService(t),
		questionnaire: mocks.NewMockQuestionnaireService(t),
	}

	f.auth.On("VerifyAccessToken", mock.Anything, userToken).Return(&models.Claims{
		UserID: testUserID,
		Roles:  []string{models.RoleUser},
	}, nil).Maybe()
	adminClaims := &models.Claims{UserID: uuid.New(), Roles: []string{models.RoleAdmin}}
	adminClaims.ID = "admin-access-uuid"
	f.auth.On("VerifyAccessToken", mock.Anything, adminToken).Return(adminClaims, nil).Maybe()

	h := handler.NewHandler(f.auth, f.users, f.admin, f.questionnaire)
	h.RegisterRoutes(f.router, nil)
	return f
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, status, code int) {
	t.Helper()
	assert.Equal(t, status, w.Code, "body: %s", w.Body.String())
	resp := decode[models.ErrorResponse](t, w)
	assert.Equal(t, code, resp.Code)
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"too many parts", "Bearer a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			f.router.ServeHTTP(w, req)
			assertErrorCode(t, w, http.StatusUnauthorized, models.ErrCodeTokenInvalid)
		})
	}

	t.Run("expired token", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("VerifyAccessToken", mock.Anything, "stale").Return(nil, models.ErrTokenExpired).Once()
		w := f.do(t, http.MethodGet, "/api/me", "stale", nil)
		assertErrorCode(t, w, http.StatusUnauthorized, models.ErrCodeTokenExpired)
	})
}

func TestRequireAdminRole(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/admin/users", userToken, nil)
	assertErrorCode(t, w, http.StatusForbidden, models.ErrCodeForbidden)
}

func TestRateLimitMiddlewareIsApplied(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	calls := 0
	limiter := func(c *gin.Context) {
		calls++
		c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{Code: models.ErrCodeRateLimited, Message: "slow down"})
	}
	h := handler.NewHandler(mocks.NewMockAuthService(t), mocks.NewMockUserService(t), mocks.NewMockAdminService(t), mocks.NewMockQuestionnaireService(t))
	h.RegisterRoutes(router, limiter)

	for _, path := range []string{"/auth/login", "/auth/register", "/admin/login"} {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(`{}`)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code, path)
	}
	assert.Equal(t, 3, calls)
}
