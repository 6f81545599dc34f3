package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name,omitempty"`
	Language     string    `db:"language" json:"language"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Statistics is the per-user progress row (user_stats table).
// Coins are mutated only by the shop purchase flow and study rewards.
type Statistics struct {
	UserID             uuid.UUID  `db:"user_id" json:"user_id"`
	XP                 int        `db:"xp" json:"xp"`
	Level              int        `db:"level" json:"level"`
	Coins              int        `db:"coins" json:"coins"`
	StreakCurrent      int        `db:"streak_current" json:"streak_current"`
	StreakRecord       int        `db:"streak_record" json:"streak_record"`
	StreakLastActivity *time.Time `db:"streak_last_activity" json:"streak_last_activity,omitempty"`
	HasStreakShield    bool       `db:"has_streak_shield" json:"has_streak_shield"`
}

// ProfessorConfig holds the currently displayed avatar/background per user,
// denormalized so the frontend can render the professor without joining
// the inventory.
type ProfessorConfig struct {
	UserID           uuid.UUID `db:"user_id" json:"user_id"`
	AvatarItemID     *int      `db:"avatar_item_id" json:"avatar_item_id"`
	BackgroundItemID *int      `db:"background_item_id" json:"background_item_id"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
