package repository

import (
	"context"

	"mood-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxDB is a DBTX that can also open transactions, typically a pool.
type TxDB interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	MarkVerified(ctx context.Context, email string) error
	SetFilled(ctx context.Context, querier DBTX, id uuid.UUID) error
	// ListUsers returns users newest first. A non-empty search matches email or name.
	ListUsers(ctx context.Context, search string) ([]models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// MoodLogRepository persists daily mood entries.
type MoodLogRepository interface {
	Upsert(ctx context.Context, in models.MoodLogUpsert) (*models.MoodLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MoodLog, error)
	ListAll(ctx context.Context) ([]models.AdminMoodLog, error)
}

// ProfileRepository persists the activities chosen by a user.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	// SaveProfileAndMarkFilled stores activity and sets users.is_filled in one transaction.
	SaveProfileAndMarkFilled(ctx context.Context, userID uuid.UUID, activity []string) (*models.UserProfile, error)
}

// TokenRepository tracks issued token ids so they can be revoked.
type TokenRepository interface {
	SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error
	DeleteTokens(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) (int64, error)
	GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error)
	GetUserIDByRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error)
	DeleteTokensByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}
