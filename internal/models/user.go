package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	IsVerified   bool      `json:"is_verified" db:"is_verified"`
	IsFilled     bool      `json:"is_filled" db:"is_filled"`
	Roles        []string  `json:"roles" db:"roles"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserProfile stores the activities a user picked after the questionnaire.
type UserProfile struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Activity  []string  `json:"activity" db:"activity"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
