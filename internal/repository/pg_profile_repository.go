package repository

import (
	"context"
	"errors"
	"fmt"

	"mood-server/internal/database"
	"mood-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ ProfileRepository = (*pgProfileRepository)(nil)

const (
	getProfileQuery    = `SELECT user_id, activity, updated_at FROM user_profiles WHERE user_id = $1`
	upsertProfileQuery = `
        INSERT INTO user_profiles (user_id, activity)
        VALUES ($1, $2)
        ON CONFLICT (user_id) DO UPDATE SET activity = EXCLUDED.activity
        RETURNING user_id, activity, updated_at`
)

type pgProfileRepository struct {
	db       TxDB
	userRepo UserRepository
	logger   *zap.Logger
}

// NewPgProfileRepository creates a new PostgreSQL-backed ProfileRepository.
func NewPgProfileRepository(db TxDB, userRepo UserRepository, logger *zap.Logger) ProfileRepository {
	return &pgProfileRepository{
		db:       db,
		userRepo: userRepo,
		logger:   logger.Named("PgProfileRepo"),
	}
}

func (r *pgProfileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := pgxscan.Get(ctx, r.db, &profile, getProfileQuery, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get profile", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *pgProfileRepository) SaveProfileAndMarkFilled(ctx context.Context, userID uuid.UUID, activity []string) (*models.UserProfile, error) {
	if activity == nil {
		activity = []string{}
	}
	var profile models.UserProfile
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.userRepo.SetFilled(ctx, tx, userID); err != nil {
			return err
		}
		return pgxscan.Get(ctx, tx, &profile, upsertProfileQuery, userID, activity)
	})
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, err
		}
		r.logger.Error("Failed to save profile", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return &profile, nil
}
