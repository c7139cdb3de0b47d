package repository

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"sonf_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Referral codes are a fixed prefix plus 6 random digits, e.g. SONF483920.
const referralCodePrefix = "SONF"

type ReferralRepository struct {
	db *pgxpool.Pool
}

func NewReferralRepository(db *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// GenerateReferralCode builds a candidate code. Uniqueness is enforced by
// the column constraint, not here; callers retry on conflict.
func GenerateReferralCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	return fmt.Sprintf("%s%06d", referralCodePrefix, n.Int64()+100000)
}

// GetOrCreateCode returns the user's referral code, assigning a fresh one on
// first use. Collisions on the unique column are retried a few times.
func (r *ReferralRepository) GetOrCreateCode(ctx context.Context, userID int64) (string, error) {
	var code *string
	err := r.db.QueryRow(ctx,
		`SELECT referral_code FROM users WHERE id = $1`, userID,
	).Scan(&code)
	if err != nil {
		return "", err
	}
	if code != nil && *code != "" {
		return *code, nil
	}

	for i := 0; i < 5; i++ {
		candidate := GenerateReferralCode()
		tag, err := r.db.Exec(ctx,
			`UPDATE users SET referral_code = $1 WHERE id = $2 AND referral_code IS NULL`,
			candidate, userID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return "", err
		}
		if tag.RowsAffected() == 0 {
			// lost a race against ourselves; the code is there now
			return r.GetOrCreateCode(ctx, userID)
		}
		return candidate, nil
	}

	return "", errors.New("could not assign a unique referral code")
}

// GetUserIDByCode resolves a referral code to its owner. Returns 0 when the
// code matches nobody; an unknown code at signup is a silent no-op, not an
// error.
func (r *ReferralRepository) GetUserIDByCode(ctx context.Context, code string) (int64, error) {
	var userID int64
	err := r.db.QueryRow(ctx,
		`SELECT id FROM users WHERE referral_code = $1`, code,
	).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return userID, err
}

// CreateTx inserts the referral row. ON CONFLICT keeps a referrer from
// linking the same referee twice; the caller checks RowsAffected via the
// returned flag before paying the bonus.
func (r *ReferralRepository) CreateTx(ctx context.Context, tx pgx.Tx, referrerID, refereeID int64, rewardAwarded bool) (bool, error) {
	tag, err := tx.Exec(ctx, `
		INSERT INTO referrals (referrer_id, referee_id, reward_awarded)
		VALUES ($1, $2, $3)
		ON CONFLICT (referrer_id, referee_id) DO NOTHING
	`, referrerID, refereeID, rewardAwarded)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CreateInvite records a pending invite to an email address. Duplicate
// invites from the same referrer are rejected by the unique constraint.
func (r *ReferralRepository) CreateInvite(ctx context.Context, referrerID int64, refereeEmail string) (*domain.ReferralInvite, error) {
	var inv domain.ReferralInvite
	err := r.db.QueryRow(ctx, `
		INSERT INTO referral_invites (referrer_id, referee_email)
		VALUES ($1, $2)
		RETURNING id, referrer_id, referee_email, created_at
	`, referrerID, refereeEmail).Scan(&inv.ID, &inv.ReferrerID, &inv.RefereeEmail, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// InviteExists reports whether the referrer already invited this email.
func (r *ReferralRepository) InviteExists(ctx context.Context, referrerID int64, refereeEmail string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM referral_invites WHERE referrer_id = $1 AND LOWER(referee_email) = LOWER($2))
	`, referrerID, refereeEmail).Scan(&exists)
	return exists, err
}

// CountReferrals counts all referrals made by a user.
func (r *ReferralRepository) CountReferrals(ctx context.Context, referrerID int64) (int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM referrals WHERE referrer_id = $1`, referrerID,
	).Scan(&total)
	return total, err
}

// CountRewardedReferrals counts referrals whose bonus was paid.
func (r *ReferralRepository) CountRewardedReferrals(ctx context.Context, referrerID int64) (int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM referrals WHERE referrer_id = $1 AND reward_awarded = true`, referrerID,
	).Scan(&total)
	return total, err
}

// ListByReferrer returns the dashboard history, newest first.
func (r *ReferralRepository) ListByReferrer(ctx context.Context, referrerID int64) ([]domain.ReferralEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, COALESCE(u.email, ''), r.reward_awarded, r.created_at
		FROM referrals r
		LEFT JOIN users u ON u.id = r.referee_id
		WHERE r.referrer_id = $1
		ORDER BY r.created_at DESC
	`, referrerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ReferralEntry
	for rows.Next() {
		var e domain.ReferralEntry
		if err := rows.Scan(&e.ID, &e.RefereeEmail, &e.RewardAwarded, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
