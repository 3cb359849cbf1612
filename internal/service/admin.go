package service

import (
	"context"
	"strings"

	"mood-server/internal/models"
	"mood-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MissingUserName labels mood logs whose owner no longer exists.
const MissingUserName = "無使用者"

// AdminService backs the admin API.
type AdminService interface {
	ListUsers(ctx context.Context, search string) ([]models.User, error)
	// DeleteUser removes the account and revokes all of its tokens.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	ListMoodLogs(ctx context.Context) ([]AdminMoodLogEntry, error)
}

// AdminMoodLogEntry is one row of the admin mood log listing.
type AdminMoodLogEntry struct {
	ID       int64
	UserName string
	Date     string
	Mood     string
	Diary    string
}

var _ AdminService = (*adminServiceImpl)(nil)

type adminServiceImpl struct {
	users    repository.UserRepository
	moodLogs repository.MoodLogRepository
	tokens   repository.TokenRepository
	logger   *zap.Logger
}

func NewAdminService(
	users repository.UserRepository,
	moodLogs repository.MoodLogRepository,
	tokens repository.TokenRepository,
	logger *zap.Logger,
) AdminService {
	return &adminServiceImpl{
		users:    users,
		moodLogs: moodLogs,
		tokens:   tokens,
		logger:   logger.Named("AdminService"),
	}
}

func (s *adminServiceImpl) ListUsers(ctx context.Context, search string) ([]models.User, error) {
	return s.users.ListUsers(ctx, strings.TrimSpace(search))
}

func (s *adminServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	log := s.logger.With(zap.Stringer("userID", userID))
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return err
	}
	deleted, err := s.tokens.DeleteTokensByUserID(ctx, userID)
	if err != nil {
		log.Error("Failed to revoke tokens of deleted user", zap.Error(err))
	}
	log.Info("User deleted by admin", zap.Int64("revokedTokens", deleted))
	return nil
}

func (s *adminServiceImpl) ListMoodLogs(ctx context.Context) ([]AdminMoodLogEntry, error) {
	logs, err := s.moodLogs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]AdminMoodLogEntry, 0, len(logs))
	for _, l := range logs {
		name := MissingUserName
		if l.UserName != nil {
			name = *l.UserName
		}
		entries = append(entries, AdminMoodLogEntry{
			ID:       l.ID,
			UserName: name,
			Date:     l.LogDate.Format(models.LogDateLayout),
			Mood:     l.Mood,
			Diary:    l.Diary,
		})
	}
	return entries, nil
}
