package repository

import (
	"context"
	"errors"

	"study_webapp/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository is the ledger store: per-user coins, xp, level, streak
// and streak-shield flag on user_stats.
type StatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Statistics, error) {
	var s domain.Statistics
	err := r.db.QueryRow(ctx,
		`SELECT user_id, xp, level, coins, streak_current, streak_record,
		        streak_last_activity, has_streak_shield
		 FROM user_stats
		 WHERE user_id = $1`,
		userID,
	).Scan(&s.UserID, &s.XP, &s.Level, &s.Coins, &s.StreakCurrent,
		&s.StreakRecord, &s.StreakLastActivity, &s.HasStreakShield)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetCoins returns the current coin balance.
func (r *StatsRepository) GetCoins(ctx context.Context, userID uuid.UUID) (int, error) {
	var coins int
	err := r.db.QueryRow(ctx,
		`SELECT coins FROM user_stats WHERE user_id = $1`, userID,
	).Scan(&coins)
	return coins, err
}

// GetCoinsTx reads the balance inside an open transaction.
func (r *StatsRepository) GetCoinsTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (int, bool, error) {
	var coins int
	err := tx.QueryRow(ctx,
		`SELECT coins FROM user_stats WHERE user_id = $1`, userID,
	).Scan(&coins)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return coins, true, nil
}

// ConditionalDeductTx decrements coins only if the balance still covers the
// amount at write time, and returns the balance the update left behind.
// RETURNING is what makes the result trustworthy under concurrency: the
// update re-evaluates against the newest committed row after waiting on the
// row lock, so a separately read balance may already be stale. ok is false
// when the guarded update matched no row.
func (r *StatsRepository) ConditionalDeductTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, amount int) (int, bool, error) {
	var coins int
	err := tx.QueryRow(ctx,
		`UPDATE user_stats SET coins = coins - $1
		 WHERE user_id = $2 AND coins >= $1
		 RETURNING coins`,
		amount, userID,
	).Scan(&coins)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return coins, true, nil
}

// SetShieldTx flips has_streak_shield inside an open transaction.
func (r *StatsRepository) SetShieldTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, active bool) error {
	_, err := tx.Exec(ctx,
		`UPDATE user_stats SET has_streak_shield = $2 WHERE user_id = $1`,
		userID, active,
	)
	return err
}

// AddCoins credits coins (study rewards). The guard keeps the balance from
// ever going negative even with a negative delta.
func (r *StatsRepository) AddCoins(ctx context.Context, userID uuid.UUID, delta int) (int, error) {
	var coins int
	err := r.db.QueryRow(ctx,
		`UPDATE user_stats SET coins = coins + $1
		 WHERE user_id = $2 AND coins + $1 >= 0
		 RETURNING coins`,
		delta, userID,
	).Scan(&coins)
	return coins, err
}

// AddXP credits experience and recomputes the level (one level per 1000 xp).
func (r *StatsRepository) AddXP(ctx context.Context, userID uuid.UUID, delta int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE user_stats
		 SET xp = xp + $1, level = 1 + (xp + $1) / 1000
		 WHERE user_id = $2`,
		delta, userID,
	)
	return err
}

// TouchStreak advances the study streak for today. A same-day repeat is a
// no-op; a one-day gap extends the streak; anything longer resets it to 1
// unless the shield flag is set, in which case the streak survives and the
// shield is consumed.
func (r *StatsRepository) TouchStreak(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE user_stats SET
			streak_current = CASE
				WHEN streak_last_activity = CURRENT_DATE THEN streak_current
				WHEN streak_last_activity = CURRENT_DATE - 1 THEN streak_current + 1
				WHEN has_streak_shield THEN streak_current
				ELSE 1
			END,
			has_streak_shield = CASE
				WHEN streak_last_activity IS NOT NULL
				     AND streak_last_activity < CURRENT_DATE - 1
				     AND has_streak_shield THEN false
				ELSE has_streak_shield
			END,
			streak_last_activity = CURRENT_DATE
		WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`UPDATE user_stats SET streak_record = streak_current
		 WHERE user_id = $1 AND streak_current > streak_record`,
		userID,
	)
	return err
}
