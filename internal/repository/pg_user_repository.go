package repository

import (
	"context"
	"errors"
	"fmt"

	"mood-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var _ UserRepository = (*pgUserRepository)(nil)

const (
	userColumns = `id, email, password_hash, name, is_verified, is_filled, roles, created_at, updated_at`

	createUserQuery = `
        INSERT INTO users (email, password_hash, name, roles)
        VALUES ($1, $2, $3, $4)
        RETURNING id, is_verified, is_filled, created_at, updated_at`
	getUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	getUserByIDQuery    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	markVerifiedQuery   = `UPDATE users SET is_verified = TRUE WHERE email = $1`
	setFilledQuery      = `UPDATE users SET is_filled = TRUE WHERE id = $1`
	listUsersQuery      = `
        SELECT ` + userColumns + ` FROM users
        WHERE $1 = '' OR email ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
        ORDER BY created_at DESC, email`
	deleteUserQuery = `DELETE FROM users WHERE id = $1`
)

type pgUserRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(db DBTX, logger *zap.Logger) UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

func (r *pgUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if len(user.Roles) == 0 {
		user.Roles = []string{models.RoleUser}
	}
	err := r.db.QueryRow(ctx, createUserQuery, user.Email, user.PasswordHash, user.Name, user.Roles).
		Scan(&user.ID, &user.IsVerified, &user.IsFilled, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn("Attempted to create duplicate user by email", zap.String("email", user.Email), zap.String("constraint", pgErr.ConstraintName))
			return models.ErrEmailAlreadyExists
		}
		r.logger.Error("Failed to create user in postgres", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("failed to create user in postgres: %w", err)
	}
	r.logger.Info("User created successfully", zap.String("userID", user.ID.String()), zap.String("email", user.Email))
	return nil
}

func (r *pgUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := pgxscan.Get(ctx, r.db, &user, getUserByEmailQuery, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by email from postgres", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email from postgres: %w", err)
	}
	return &user, nil
}

func (r *pgUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := pgxscan.Get(ctx, r.db, &user, getUserByIDQuery, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by id from postgres", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get user by id from postgres: %w", err)
	}
	return &user, nil
}

func (r *pgUserRepository) MarkVerified(ctx context.Context, email string) error {
	tag, err := r.db.Exec(ctx, markVerifiedQuery, email)
	if err != nil {
		r.logger.Error("Failed to mark user verified", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// SetFilled runs on querier so it can join a caller's transaction.
func (r *pgUserRepository) SetFilled(ctx context.Context, querier DBTX, id uuid.UUID) error {
	if querier == nil {
		querier = r.db
	}
	tag, err := querier.Exec(ctx, setFilledQuery, id)
	if err != nil {
		r.logger.Error("Failed to set is_filled", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("failed to set is_filled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *pgUserRepository) ListUsers(ctx context.Context, search string) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := pgxscan.Select(ctx, r.db, &users, listUsersQuery, search); err != nil {
		r.logger.Error("Failed to list users", zap.Error(err), zap.String("search", search))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *pgUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteUserQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete user", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	r.logger.Info("User deleted", zap.String("id", id.String()))
	return nil
}
