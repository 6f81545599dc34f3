package repository

import (
	"context"
	"errors"

	"study_webapp/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user together with their user_stats and
// professor_config rows in a single transaction, so a failed stats insert
// never leaves a user without an economy row.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, full_name, language)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		u.Username, u.Email, u.PasswordHash, u.FullName, u.Language,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx,
		`INSERT INTO user_stats (user_id) VALUES ($1)`, u.ID,
	); err != nil {
		return err
	}

	if _, err = tx.Exec(ctx,
		`INSERT INTO professor_config (user_id) VALUES ($1)`, u.ID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, COALESCE(full_name, ''), COALESCE(language, 'es'), created_at
		 FROM users
		 WHERE email = $1`,
		email,
	))
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, COALESCE(full_name, ''), COALESCE(language, 'es'), created_at
		 FROM users
		 WHERE id = $1`,
		id,
	))
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	return exists, err
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	return exists, err
}

func (r *UserRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.Language,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
