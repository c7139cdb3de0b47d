package repository

import (
	"context"
	"errors"

	"sonf_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const miningColumns = `id, user_id, started_at, ended_at, total_mined, credited_at`

type MiningRepository struct {
	db *pgxpool.Pool
}

func NewMiningRepository(db *pgxpool.Pool) *MiningRepository {
	return &MiningRepository{db: db}
}

func scanSession(row pgx.Row) (*domain.MiningSession, error) {
	var s domain.MiningSession
	err := row.Scan(&s.ID, &s.UserID, &s.StartedAt, &s.EndedAt, &s.TotalMined, &s.CreditedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetActiveForUpdate locks the user's active session row for the duration of
// the transaction. All session transitions go through this lock, which is
// what keeps two concurrent expiry polls from double-crediting.
// Returns nil when the user has no active session.
func (r *MiningRepository) GetActiveForUpdate(ctx context.Context, tx pgx.Tx, userID int64) (*domain.MiningSession, error) {
	s, err := scanSession(tx.QueryRow(ctx, `
		SELECT `+miningColumns+`
		FROM mining_sessions
		WHERE user_id = $1 AND ended_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1
		FOR UPDATE
	`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// GetActive is the lock-free read of the user's active session, or nil.
func (r *MiningRepository) GetActive(ctx context.Context, userID int64) (*domain.MiningSession, error) {
	s, err := scanSession(r.db.QueryRow(ctx, `
		SELECT `+miningColumns+`
		FROM mining_sessions
		WHERE user_id = $1 AND ended_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1
	`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// CreateTx starts a new session with zero accrual.
func (r *MiningRepository) CreateTx(ctx context.Context, tx pgx.Tx, userID int64) (*domain.MiningSession, error) {
	return scanSession(tx.QueryRow(ctx, `
		INSERT INTO mining_sessions (user_id, started_at, total_mined)
		VALUES ($1, NOW(), 0)
		RETURNING `+miningColumns,
		userID))
}

// UpdateMinedTx persists the recomputed accrual for a still-active session.
func (r *MiningRepository) UpdateMinedTx(ctx context.Context, tx pgx.Tx, sessionID int64, totalMined decimal.Decimal) error {
	_, err := tx.Exec(ctx,
		`UPDATE mining_sessions SET total_mined = $2 WHERE id = $1`,
		sessionID, totalMined)
	return err
}

// EndTx finalizes a session: clamped accrual, ended_at, and the credited_at
// stamp that marks the payout as done.
func (r *MiningRepository) EndTx(ctx context.Context, tx pgx.Tx, sessionID int64, totalMined decimal.Decimal) (*domain.MiningSession, error) {
	return scanSession(tx.QueryRow(ctx, `
		UPDATE mining_sessions
		SET ended_at = NOW(), total_mined = $2, credited_at = NOW()
		WHERE id = $1
		RETURNING `+miningColumns,
		sessionID, totalMined))
}

// GetClaimableForUpdate locks the most recently ended session whose accrual
// was never credited. Normal stop/expiry paths credit in the same
// transaction that ends the session, so this usually finds nothing.
func (r *MiningRepository) GetClaimableForUpdate(ctx context.Context, tx pgx.Tx, userID int64) (*domain.MiningSession, error) {
	s, err := scanSession(tx.QueryRow(ctx, `
		SELECT `+miningColumns+`
		FROM mining_sessions
		WHERE user_id = $1 AND ended_at IS NOT NULL AND credited_at IS NULL AND total_mined > 0
		ORDER BY ended_at DESC
		LIMIT 1
		FOR UPDATE
	`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// MarkCreditedTx zeroes the session's accrual and stamps credited_at, so the
// same session can never be claimed twice.
func (r *MiningRepository) MarkCreditedTx(ctx context.Context, tx pgx.Tx, sessionID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE mining_sessions SET total_mined = 0, credited_at = NOW() WHERE id = $1`,
		sessionID)
	return err
}

// GetLatest returns the most recent session regardless of state, for the
// home dashboard. Returns nil when the user never mined.
func (r *MiningRepository) GetLatest(ctx context.Context, userID int64) (*domain.MiningSession, error) {
	s, err := scanSession(r.db.QueryRow(ctx, `
		SELECT `+miningColumns+`
		FROM mining_sessions
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT 1
	`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// SumMined returns the lifetime mined total across all sessions.
func (r *MiningRepository) SumMined(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_mined), 0) FROM mining_sessions WHERE user_id = $1`,
		userID,
	).Scan(&sum)
	return sum, err
}
