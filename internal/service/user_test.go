package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"mood-server/internal/mocks"
	"mood-server/internal/models"
	"mood-server/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type userFixture struct {
	users    *mocks.MockUserRepository
	profiles *mocks.MockProfileRepository
	logs     *mocks.MockMoodLogRepository
	svc      service.UserService
}

func newUserFixture(t *testing.T) *userFixture {
	f := &userFixture{
		users:    mocks.NewMockUserRepository(t),
		profiles: mocks.NewMockProfileRepository(t),
		logs:     mocks.NewMockMoodLogRepository(t),
	}
	f.svc = service.NewUserService(f.users, f.profiles, f.logs, zap.NewNop())
	return f
}

func strPtr(v string) *string { return &v }

func TestUserService_IsFilled(t *testing.T) {
	f := newUserFixture(t)
	id := uuid.New()
	f.users.On("GetUserByID", mock.Anything, id).Return(&models.User{ID: id, IsFilled: true}, nil).Once()

	filled, err := f.svc.IsFilled(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, filled)

	missing := uuid.New()
	f.users.On("GetUserByID", mock.Anything, missing).Return(nil, models.ErrUserNotFound).Once()
	_, err = f.svc.IsFilled(context.Background(), missing)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestUserService_SetFilled(t *testing.T) {
	f := newUserFixture(t)
	id := uuid.New()
	f.users.On("SetFilled", mock.Anything, nil, id).Return(nil).Once()
	assert.NoError(t, f.svc.SetFilled(context.Background(), id))
}

func TestUserService_GetProfile(t *testing.T) {
	f := newUserFixture(t)
	id := uuid.New()

	f.users.On("GetUserByID", mock.Anything, id).Return(&models.User{ID: id}, nil).Twice()
	f.profiles.On("GetProfile", mock.Anything, id).Return(nil, models.ErrNotFound).Once()

	p, err := f.svc.GetProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []string{}, p.Activity)
	assert.False(t, p.IsFilled)

	f.profiles.On("GetProfile", mock.Anything, id).Return(&models.UserProfile{UserID: id, Activity: []string{"爬山"}}, nil).Once()
	p, err = f.svc.GetProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []string{"爬山"}, p.Activity)
}

func TestUserService_SaveProfileTrimsActivities(t *testing.T) {
	f := newUserFixture(t)
	id := uuid.New()
	f.profiles.On("SaveProfileAndMarkFilled", mock.Anything, id, []string{"散步", "閱讀"}).
		Return(&models.UserProfile{UserID: id, Activity: []string{"散步", "閱讀"}}, nil).Once()

	p, err := f.svc.SaveProfile(context.Background(), id, []string{" 散步 ", "", "閱讀"})
	require.NoError(t, err)
	assert.True(t, p.IsFilled)
	assert.Equal(t, []string{"散步", "閱讀"}, p.Activity)
}

func TestUserService_UpsertMoodLog(t *testing.T) {
	f := newUserFixture(t)
	id := uuid.New()

	_, err := f.svc.UpsertMoodLog(context.Background(), id, "2024/05/01", strPtr("開心"), nil)
	assert.ErrorIs(t, err, models.ErrInvalidLogDate)

	want := models.MoodLogUpsert{
		UserID:  id,
		LogDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Mood:    strPtr("開心"),
	}
	f.logs.On("Upsert", mock.Anything, want).Return(&models.MoodLog{Mood: "開心"}, nil).Once()

	log, err := f.svc.UpsertMoodLog(context.Background(), id, "2024-05-01", strPtr("開心"), nil)
	require.NoError(t, err)
	assert.Equal(t, "開心", log.Mood)
}

func TestUserService_ListMoodLogsPropagatesErrors(t *testing.T) {
	f := newUserFixture(t)
	id := uuid.New()
	boom := errors.New("db down")
	f.logs.On("ListByUser", mock.Anything, id).Return(nil, boom).Once()

	_, err := f.svc.ListMoodLogs(context.Background(), id)
	assert.ErrorIs(t, err, boom)
}
