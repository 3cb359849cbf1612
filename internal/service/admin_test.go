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

func TestAdminService_ListUsersTrimsSearch(t *testing.T) {
	users := mocks.NewMockUserRepository(t)
	svc := service.NewAdminService(users, mocks.NewMockMoodLogRepository(t), mocks.NewMockTokenRepository(t), zap.NewNop())
	users.On("ListUsers", mock.Anything, "amy").Return([]models.User{{Email: "amy@example.com"}}, nil).Once()

	list, err := svc.ListUsers(context.Background(), "  amy ")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAdminService_DeleteUserRevokesTokens(t *testing.T) {
	users := mocks.NewMockUserRepository(t)
	tokens := mocks.NewMockTokenRepository(t)
	svc := service.NewAdminService(users, mocks.NewMockMoodLogRepository(t), tokens, zap.NewNop())
	id := uuid.New()

	users.On("DeleteUser", mock.Anything, id).Return(nil).Once()
	tokens.On("DeleteTokensByUserID", mock.Anything, id).Return(int64(0), errors.New("redis down")).Once()
	assert.NoError(t, svc.DeleteUser(context.Background(), id))

	missing := uuid.New()
	users.On("DeleteUser", mock.Anything, missing).Return(models.ErrUserNotFound).Once()
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), missing), models.ErrUserNotFound)
}

func TestAdminService_ListMoodLogs(t *testing.T) {
	logs := mocks.NewMockMoodLogRepository(t)
	svc := service.NewAdminService(mocks.NewMockUserRepository(t), logs, mocks.NewMockTokenRepository(t), zap.NewNop())
	name := "Amy"
	id := uuid.New()
	logs.On("ListAll", mock.Anything).Return([]models.AdminMoodLog{
		{ID: 2, UserID: &id, UserName: &name, LogDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), Mood: "開心"},
		{ID: 1, LogDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Diary: "下雨"},
	}, nil).Once()

	entries, err := svc.ListMoodLogs(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, service.AdminMoodLogEntry{ID: 2, UserName: "Amy", Date: "2024-05-02", Mood: "開心"}, entries[0])
	assert.Equal(t, service.MissingUserName, entries[1].UserName)
	assert.Equal(t, "2024-05-01", entries[1].Date)
}
