package repository

import (
	"context"
	"errors"

	"study_webapp/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileConfigRepository maintains professor_config, the denormalized
// "currently displayed item" reference updated whenever an item is equipped.
type ProfileConfigRepository struct {
	db *pgxpool.Pool
}

func NewProfileConfigRepository(db *pgxpool.Pool) *ProfileConfigRepository {
	return &ProfileConfigRepository{db: db}
}

func (r *ProfileConfigRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.ProfessorConfig, error) {
	var cfg domain.ProfessorConfig
	err := r.db.QueryRow(ctx,
		`SELECT user_id, avatar_item_id, background_item_id, updated_at
		 FROM professor_config
		 WHERE user_id = $1`,
		userID,
	).Scan(&cfg.UserID, &cfg.AvatarItemID, &cfg.BackgroundItemID, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// SetDisplayedTx points the config at the newly equipped item for its
// category, inside the equip transaction.
func (r *ProfileConfigRepository) SetDisplayedTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, category domain.ItemCategory, itemID int) error {
	var column string
	switch category {
	case domain.CategoryAvatar:
		column = "avatar_item_id"
	case domain.CategoryBackground:
		column = "background_item_id"
	default:
		return errors.New("category has no displayed slot")
	}

	_, err := tx.Exec(ctx,
		`UPDATE professor_config SET `+column+` = $1, updated_at = NOW() WHERE user_id = $2`,
		itemID, userID,
	)
	return err
}
