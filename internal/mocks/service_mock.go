package mocks

import (
	"context"

	"mood-server/internal/models"
	"mood-server/internal/questionnaire"
	"mood-server/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock type for the AuthService type
type MockAuthService struct {
	mock.Mock
}

func (_m *MockAuthService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	ret := _m.Called(ctx, email, password, name)
	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}
	return r0, ret.Error(1)
}

func (_m *MockAuthService) VerifyEmail(ctx context.Context, token string) error {
	ret := _m.Called(ctx, token)
	return ret.Error(0)
}

func (_m *MockAuthService) Login(ctx context.Context, email, password string) (*models.TokenDetails, error) {
	ret := _m.Called(ctx, email, password)
	var r0 *models.TokenDetails
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.TokenDetails)
	}
	return r0, ret.Error(1)
}

func (_m *MockAuthService) Logout(ctx context.Context, userID uuid.UUID, accessUUID, refreshToken string) error {
	ret := _m.Called(ctx, userID, accessUUID, refreshToken)
	return ret.Error(0)
}

func (_m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenDetails, error) {
	ret := _m.Called(ctx, refreshToken)
	var r0 *models.TokenDetails
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.TokenDetails)
	}
	return r0, ret.Error(1)
}

func (_m *MockAuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	ret := _m.Called(ctx, tokenString)
	var r0 *models.Claims
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Claims)
	}
	return r0, ret.Error(1)
}

func (_m *MockAuthService) AdminLogin(ctx context.Context, email, password string) (*models.TokenDetails, error) {
	ret := _m.Called(ctx, email, password)
	var r0 *models.TokenDetails
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.TokenDetails)
	}
	return r0, ret.Error(1)
}

// NewMockAuthService creates a new instance of MockAuthService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAuthService {
	m := &MockAuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ service.AuthService = (*MockAuthService)(nil)

// MockUserService is a mock type for the UserService type
type MockUserService struct {
	mock.Mock
}

func (_m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	ret := _m.Called(ctx, userID)
	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}
	return r0, ret.Error(1)
}

func (_m *MockUserService) IsFilled(ctx context.Context, userID uuid.UUID) (bool, error) {
	ret := _m.Called(ctx, userID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockUserService) SetFilled(ctx context.Context, userID uuid.UUID) error {
	ret := _m.Called(ctx, userID)
	return ret.Error(0)
}

func (_m *MockUserService) GetProfile(ctx context.Context, userID uuid.UUID) (*service.Profile, error) {
	ret := _m.Called(ctx, userID)
	var r0 *service.Profile
	if v := ret.Get(0); v != nil {
		r0 = v.(*service.Profile)
	}
	return r0, ret.Error(1)
}

func (_m *MockUserService) SaveProfile(ctx context.Context, userID uuid.UUID, activity []string) (*service.Profile, error) {
	ret := _m.Called(ctx, userID, activity)
	var r0 *service.Profile
	if v := ret.Get(0); v != nil {
		r0 = v.(*service.Profile)
	}
	return r0, ret.Error(1)
}

func (_m *MockUserService) UpsertMoodLog(ctx context.Context, userID uuid.UUID, date string, mood, diary *string) (*models.MoodLog, error) {
	ret := _m.Called(ctx, userID, date, mood, diary)
	var r0 *models.MoodLog
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.MoodLog)
	}
	return r0, ret.Error(1)
}

func (_m *MockUserService) ListMoodLogs(ctx context.Context, userID uuid.UUID) ([]models.MoodLog, error) {
	ret := _m.Called(ctx, userID)
	var r0 []models.MoodLog
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.MoodLog)
	}
	return r0, ret.Error(1)
}

// NewMockUserService creates a new instance of MockUserService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUserService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserService {
	m := &MockUserService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ service.UserService = (*MockUserService)(nil)

// MockAdminService is a mock type for the AdminService type
type MockAdminService struct {
	mock.Mock
}

func (_m *MockAdminService) ListUsers(ctx context.Context, search string) ([]models.User, error) {
	ret := _m.Called(ctx, search)
	var r0 []models.User
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.User)
	}
	return r0, ret.Error(1)
}

func (_m *MockAdminService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	ret := _m.Called(ctx, userID)
	return ret.Error(0)
}

func (_m *MockAdminService) ListMoodLogs(ctx context.Context) ([]service.AdminMoodLogEntry, error) {
	ret := _m.Called(ctx)
	var r0 []service.AdminMoodLogEntry
	if v := ret.Get(0); v != nil {
		r0 = v.([]service.AdminMoodLogEntry)
	}
	return r0, ret.Error(1)
}

// NewMockAdminService creates a new instance of MockAdminService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockAdminService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAdminService {
	m := &MockAdminService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ service.AdminService = (*MockAdminService)(nil)

// MockQuestionnaireService is a mock type for the QuestionnaireService type
type MockQuestionnaireService struct {
	mock.Mock
}

func (_m *MockQuestionnaireService) Start(ctx context.Context, userID uuid.UUID) (questionnaire.Result, error) {
	ret := _m.Called(ctx, userID)
	return ret.Get(0).(questionnaire.Result), ret.Error(1)
}

func (_m *MockQuestionnaireService) Next(ctx context.Context, userID uuid.UUID, answer string) (questionnaire.Result, error) {
	ret := _m.Called(ctx, userID, answer)
	return ret.Get(0).(questionnaire.Result), ret.Error(1)
}

func (_m *MockQuestionnaireService) Summarize(ctx context.Context, userID uuid.UUID) (string, error) {
	ret := _m.Called(ctx, userID)
	return ret.String(0), ret.Error(1)
}

// NewMockQuestionnaireService creates a new instance of MockQuestionnaireService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockQuestionnaireService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQuestionnaireService {
	m := &MockQuestionnaireService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ service.QuestionnaireService = (*MockQuestionnaireService)(nil)
