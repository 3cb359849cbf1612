package models

import (
	"time"

	"github.com/google/uuid"
)

// LogDateLayout is the wire format of MoodLog dates.
const LogDateLayout = "2006-01-02"

// MoodLog is a single day's mood and diary entry. One per user per day.
type MoodLog struct {
	ID        int64     `json:"-" db:"id"`
	UserID    uuid.UUID `json:"-" db:"user_id"`
	LogDate   time.Time `json:"-" db:"log_date"`
	Mood      string    `json:"mood" db:"mood"`
	Diary     string    `json:"diary" db:"diary"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// MoodLogUpsert describes a write to a day's entry. Nil fields are left
// untouched on update and stored as "" on insert.
type MoodLogUpsert struct {
	UserID  uuid.UUID
	LogDate time.Time
	Mood    *string
	Diary   *string
}

// AdminMoodLog is a mood log joined with its owner, as listed by admins.
type AdminMoodLog struct {
	ID       int64      `json:"id" db:"id"`
	UserID   *uuid.UUID `json:"user_id" db:"user_id"`
	UserName *string    `json:"-" db:"user_name"`
	LogDate  time.Time  `json:"-" db:"log_date"`
	Mood     string     `json:"mood" db:"mood"`
	Diary    string     `json:"diary" db:"diary"`
}
