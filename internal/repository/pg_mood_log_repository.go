package repository

import (
	"context"
	"fmt"

	"mood-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ MoodLogRepository = (*pgMoodLogRepository)(nil)

const (
	// Nil mood/diary keep the stored value on conflict and become '' on insert.
	upsertMoodLogQuery = `
        INSERT INTO mood_logs (user_id, log_date, mood, diary)
        VALUES ($1, $2, COALESCE($3, ''), COALESCE($4, ''))
        ON CONFLICT (user_id, log_date) DO UPDATE SET
            mood = COALESCE($3, mood_logs.mood),
            diary = COALESCE($4, mood_logs.diary)
        RETURNING id, user_id, log_date, mood, diary, created_at, updated_at`
	listMoodLogsByUserQuery = `
        SELECT id, user_id, log_date, mood, diary, created_at, updated_at
        FROM mood_logs WHERE user_id = $1
        ORDER BY log_date DESC`
	listAllMoodLogsQuery = `
        SELECT ml.id, u.id AS user_id, u.name AS user_name, ml.log_date, ml.mood, ml.diary
        FROM mood_logs ml
        LEFT JOIN users u ON u.id = ml.user_id
        ORDER BY ml.log_date DESC, ml.id DESC`
)

type pgMoodLogRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgMoodLogRepository creates a new PostgreSQL-backed MoodLogRepository.
func NewPgMoodLogRepository(db DBTX, logger *zap.Logger) MoodLogRepository {
	return &pgMoodLogRepository{
		db:     db,
		logger: logger.Named("PgMoodLogRepo"),
	}
}

func (r *pgMoodLogRepository) Upsert(ctx context.Context, in models.MoodLogUpsert) (*models.MoodLog, error) {
	var log models.MoodLog
	if err := pgxscan.Get(ctx, r.db, &log, upsertMoodLogQuery, in.UserID, in.LogDate, in.Mood, in.Diary); err != nil {
		r.logger.Error("Failed to upsert mood log", zap.Error(err),
			zap.String("userID", in.UserID.String()),
			zap.String("date", in.LogDate.Format(models.LogDateLayout)),
		)
		return nil, fmt.Errorf("failed to upsert mood log: %w", err)
	}
	return &log, nil
}

func (r *pgMoodLogRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MoodLog, error) {
	logs := make([]models.MoodLog, 0)
	if err := pgxscan.Select(ctx, r.db, &logs, listMoodLogsByUserQuery, userID); err != nil {
		r.logger.Error("Failed to list mood logs", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to list mood logs: %w", err)
	}
	return logs, nil
}

func (r *pgMoodLogRepository) ListAll(ctx context.Context) ([]models.AdminMoodLog, error) {
	logs := make([]models.AdminMoodLog, 0)
	if err := pgxscan.Select(ctx, r.db, &logs, listAllMoodLogsQuery); err != nil {
		r.logger.Error("Failed to list all mood logs", zap.Error(err))
		return nil, fmt.Errorf("failed to list all mood logs: %w", err)
	}
	return logs, nil
}
