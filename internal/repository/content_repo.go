package repository

import (
	"context"

	"study_webapp/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContentRepository struct {
	db *pgxpool.Pool
}

func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: db}
}

// Save stores a generated content row. The payload goes into a jsonb
// column; source_text keeps the original study text for regeneration.
func (r *ContentRepository) Save(ctx context.Context, c *domain.StudyContent, sourceText string) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO study_content (user_id, session_id, type, title, content, source_text)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		c.UserID, c.SessionID, c.Type, c.Title, c.Payload, sourceText,
	).Scan(&c.ID, &c.CreatedAt)
}

// GetByUser lists a user's content, newest first, optionally filtered by
// type. Payloads are included so the frontend can render without a second
// round trip.
func (r *ContentRepository) GetByUser(ctx context.Context, userID uuid.UUID, contentType *domain.ContentType) ([]domain.StudyContent, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if contentType != nil {
		rows, err = r.db.Query(ctx,
			`SELECT id, user_id, session_id, type, title, content, is_favorite, created_at
			 FROM study_content
			 WHERE user_id = $1 AND type = $2
			 ORDER BY created_at DESC`,
			userID, *contentType,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, user_id, session_id, type, title, content, is_favorite, created_at
			 FROM study_content
			 WHERE user_id = $1
			 ORDER BY created_at DESC`,
			userID,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContents(rows)
}

func (r *ContentRepository) GetFavorites(ctx context.Context, userID uuid.UUID, contentType *domain.ContentType) ([]domain.StudyContent, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if contentType != nil {
		rows, err = r.db.Query(ctx,
			`SELECT id, user_id, session_id, type, title, content, is_favorite, created_at
			 FROM study_content
			 WHERE user_id = $1 AND type = $2 AND is_favorite
			 ORDER BY created_at DESC`,
			userID, *contentType,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, user_id, session_id, type, title, content, is_favorite, created_at
			 FROM study_content
			 WHERE user_id = $1 AND is_favorite
			 ORDER BY created_at DESC`,
			userID,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContents(rows)
}

// SetFavorite toggles the favorite flag, scoped to the owner so one user
// cannot touch another's content. Returns false when no row matched.
func (r *ContentRepository) SetFavorite(ctx context.Context, contentID, userID uuid.UUID, favorite bool) (bool, error) {
	res, err := r.db.Exec(ctx,
		`UPDATE study_content SET is_favorite = $3
		 WHERE id = $1 AND user_id = $2`,
		contentID, userID, favorite,
	)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// Delete removes a content row, owner-scoped.
func (r *ContentRepository) Delete(ctx context.Context, contentID, userID uuid.UUID) (bool, error) {
	res, err := r.db.Exec(ctx,
		`DELETE FROM study_content WHERE id = $1 AND user_id = $2`,
		contentID, userID,
	)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func scanContents(rows pgx.Rows) ([]domain.StudyContent, error) {
	var res []domain.StudyContent
	for rows.Next() {
		var c domain.StudyContent
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.SessionID, &c.Type, &c.Title,
			&c.Payload, &c.IsFavorite, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}
