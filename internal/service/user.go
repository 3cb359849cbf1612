package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"mood-server/internal/models"
	"mood-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService serves the signed-in user's own account, profile and mood logs.
type UserService interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	IsFilled(ctx context.Context, userID uuid.UUID) (bool, error)
	SetFilled(ctx context.Context, userID uuid.UUID) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	SaveProfile(ctx context.Context, userID uuid.UUID, activity []string) (*Profile, error)
	// UpsertMoodLog writes the entry for date (YYYY-MM-DD). Nil fields keep
	// their stored value.
	UpsertMoodLog(ctx context.Context, userID uuid.UUID, date string, mood, diary *string) (*models.MoodLog, error)
	ListMoodLogs(ctx context.Context, userID uuid.UUID) ([]models.MoodLog, error)
}

// Profile is a user's chosen activities together with the questionnaire flag.
type Profile struct {
	Activity []string
	IsFilled bool
}

var _ UserService = (*userServiceImpl)(nil)

type userServiceImpl struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	moodLogs repository.MoodLogRepository
	logger   *zap.Logger
}

func NewUserService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	moodLogs repository.MoodLogRepository,
	logger *zap.Logger,
) UserService {
	return &userServiceImpl{
		users:    users,
		profiles: profiles,
		moodLogs: moodLogs,
		logger:   logger.Named("UserService"),
	}
}

func (s *userServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

func (s *userServiceImpl) IsFilled(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsFilled, nil
}

func (s *userServiceImpl) SetFilled(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.SetFilled(ctx, nil, userID); err != nil {
		return err
	}
	s.logger.Info("User marked as filled", zap.Stringer("userID", userID))
	return nil
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := &Profile{Activity: []string{}, IsFilled: user.IsFilled}

	stored, err := s.profiles.GetProfile(ctx, userID)
	switch {
	case err == nil:
		if stored.Activity != nil {
			profile.Activity = stored.Activity
		}
	case errors.Is(err, models.ErrNotFound):
	default:
		return nil, err
	}
	return profile, nil
}

func (s *userServiceImpl) SaveProfile(ctx context.Context, userID uuid.UUID, activity []string) (*Profile, error) {
	cleaned := make([]string, 0, len(activity))
	for _, a := range activity {
		if a = strings.TrimSpace(a); a != "" {
			cleaned = append(cleaned, a)
		}
	}
	saved, err := s.profiles.SaveProfileAndMarkFilled(ctx, userID, cleaned)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Profile saved", zap.Stringer("userID", userID), zap.Int("activities", len(saved.Activity)))
	return &Profile{Activity: saved.Activity, IsFilled: true}, nil
}

func (s *userServiceImpl) UpsertMoodLog(ctx context.Context, userID uuid.UUID, date string, mood, diary *string) (*models.MoodLog, error) {
	logDate, err := time.Parse(models.LogDateLayout, strings.TrimSpace(date))
	if err != nil {
		return nil, models.ErrInvalidLogDate
	}
	return s.moodLogs.Upsert(ctx, models.MoodLogUpsert{
		UserID:  userID,
		LogDate: logDate,
		Mood:    mood,
		Diary:   diary,
	})
}

func (s *userServiceImpl) ListMoodLogs(ctx context.Context, userID uuid.UUID) ([]models.MoodLog, error) {
	return s.moodLogs.ListByUser(ctx, userID)
}
