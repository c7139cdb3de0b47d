package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TokenRepository struct {
	db *pgxpool.Pool
}

func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Store(ctx context.Context, userID int64, token string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO refresh_tokens (user_id, token) VALUES ($1, $2)`,
		userID, token)
	return err
}

// IsValid reports whether the token exists and was not revoked.
func (r *TokenRepository) IsValid(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM refresh_tokens WHERE token = $1 AND revoked = false)`,
		token,
	).Scan(&exists)
	return exists, err
}

func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = true WHERE token = $1`, token)
	return err
}

func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = true WHERE user_id = $1`, userID)
	return err
}
