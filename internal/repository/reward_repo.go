package repository

import (
	"context"
	"errors"

	"sonf_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type RewardRepository struct {
	db *pgxpool.Pool
}

func NewRewardRepository(db *pgxpool.Pool) *RewardRepository {
	return &RewardRepository{db: db}
}

// InsertTx attempts to insert the (user, platform) fence row. Returns nil
// when the row already exists: the reward was granted before and must not be
// paid again.
func (r *RewardRepository) InsertTx(ctx context.Context, tx pgx.Tx, userID int64, platform string, amount decimal.Decimal, link string) (*domain.RewardGrant, error) {
	var linkArg *string
	if link != "" {
		linkArg = &link
	}

	var g domain.RewardGrant
	var dbLink *string
	err := tx.QueryRow(ctx, `
		INSERT INTO earn_rewards (user_id, platform, reward_amount, link)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, platform) DO NOTHING
		RETURNING id, user_id, platform, reward_amount, link, awarded_at
	`, userID, platform, amount, linkArg).Scan(
		&g.ID, &g.UserID, &g.Platform, &g.RewardAmount, &dbLink, &g.AwardedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if dbLink != nil {
		g.Link = *dbLink
	}
	return &g, nil
}

// ListByUser returns all rewards a user has claimed so far.
func (r *RewardRepository) ListByUser(ctx context.Context, userID int64) ([]domain.RewardGrant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, platform, reward_amount, link, awarded_at
		FROM earn_rewards
		WHERE user_id = $1
		ORDER BY awarded_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []domain.RewardGrant
	for rows.Next() {
		var g domain.RewardGrant
		var link *string
		if err := rows.Scan(&g.ID, &g.UserID, &g.Platform, &g.RewardAmount, &link, &g.AwardedAt); err != nil {
			return nil, err
		}
		if link != nil {
			g.Link = *link
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}
