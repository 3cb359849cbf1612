package mocks

import (
	"context"

	"mood-server/internal/models"
	"mood-server/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for the UserRepository type
type MockUserRepository struct {
	mock.Mock
}

func (_m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ret := _m.Called(ctx, user)
	if rf, ok := ret.Get(0).(func(context.Context, *models.User) error); ok {
		return rf(ctx, user)
	}
	return ret.Error(0)
}

func (_m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ret := _m.Called(ctx, email)
	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}
	return r0, ret.Error(1)
}

func (_m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ret := _m.Called(ctx, id)
	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}
	return r0, ret.Error(1)
}

func (_m *MockUserRepository) MarkVerified(ctx context.Context, email string) error {
	ret := _m.Called(ctx, email)
	return ret.Error(0)
}

func (_m *MockUserRepository) SetFilled(ctx context.Context, querier repository.DBTX, id uuid.UUID) error {
	ret := _m.Called(ctx, querier, id)
	return ret.Error(0)
}

func (_m *MockUserRepository) ListUsers(ctx context.Context, search string) ([]models.User, error) {
	ret := _m.Called(ctx, search)
	var r0 []models.User
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.User)
	}
	return r0, ret.Error(1)
}

func (_m *MockUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// NewMockUserRepository creates a new instance of MockUserRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

// MockTokenRepository is a mock type for the TokenRepository type
type MockTokenRepository struct {
	mock.Mock
}

func (_m *MockTokenRepository) SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error {
	ret := _m.Called(ctx, userID, td)
	return ret.Error(0)
}

func (_m *MockTokenRepository) DeleteTokens(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) (int64, error) {
	ret := _m.Called(ctx, userID, accessUUID, refreshUUID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *MockTokenRepository) GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error) {
	ret := _m.Called(ctx, accessUUID)
	return ret.Get(0).(uuid.UUID), ret.Error(1)
}

func (_m *MockTokenRepository) GetUserIDByRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error) {
	ret := _m.Called(ctx, refreshUUID)
	return ret.Get(0).(uuid.UUID), ret.Error(1)
}

func (_m *MockTokenRepository) DeleteTokensByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, userID)
	return ret.Get(0).(int64), ret.Error(1)
}

// NewMockTokenRepository creates a new instance of MockTokenRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTokenRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenRepository {
	m := &MockTokenRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ repository.TokenRepository = (*MockTokenRepository)(nil)

// MockMoodLogRepository is a mock type for the MoodLogRepository type
type MockMoodLogRepository struct {
	mock.Mock
}

func (_m *MockMoodLogRepository) Upsert(ctx context.Context, in models.MoodLogUpsert) (*models.MoodLog, error) {
	ret := _m.Called(ctx, in)
	var r0 *models.MoodLog
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.MoodLog)
	}
	return r0, ret.Error(1)
}

func (_m *MockMoodLogRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MoodLog, error) {
	ret := _m.Called(ctx, userID)
	var r0 []models.MoodLog
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.MoodLog)
	}
	return r0, ret.Error(1)
}

func (_m *MockMoodLogRepository) ListAll(ctx context.Context) ([]models.AdminMoodLog, error) {
	ret := _m.Called(ctx)
	var r0 []models.AdminMoodLog
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.AdminMoodLog)
	}
	return r0, ret.Error(1)
}

// NewMockMoodLogRepository creates a new instance of MockMoodLogRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockMoodLogRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMoodLogRepository {
	m := &MockMoodLogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ repository.MoodLogRepository = (*MockMoodLogRepository)(nil)

// MockProfileRepository is a mock type for the ProfileRepository type
type MockProfileRepository struct {
	mock.Mock
}

func (_m *MockProfileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	ret := _m.Called(ctx, userID)
	var r0 *models.UserProfile
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.UserProfile)
	}
	return r0, ret.Error(1)
}

func (_m *MockProfileRepository) SaveProfileAndMarkFilled(ctx context.Context, userID uuid.UUID, activity []string) (*models.UserProfile, error) {
	ret := _m.Called(ctx, userID, activity)
	var r0 *models.UserProfile
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.UserProfile)
	}
	return r0, ret.Error(1)
}

// NewMockProfileRepository creates a new instance of MockProfileRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockProfileRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProfileRepository {
	m := &MockProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ repository.ProfileRepository = (*MockProfileRepository)(nil)
