package service

import (
	"context"
	"time"

	"sonf_backend/internal/domain"
	"sonf_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Mining reward parameters. A session earns the base rate up front plus a
// per-minute trickle, and stops accruing at the duration cap.
const MaxMiningDuration = 12 * time.Hour

var (
	miningBaseRate      = decimal.RequireFromString("0.1")
	miningPerMinuteRate = decimal.RequireFromString("0.01")
)

// Accrued computes the coins earned after elapsed time:
// base + floor(whole minutes) * per-minute rate, clamped at the duration cap
// and rounded to 4 decimal places. Monotonically non-decreasing in elapsed.
func Accrued(elapsed time.Duration) decimal.Decimal {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > MaxMiningDuration {
		elapsed = MaxMiningDuration
	}
	minutes := int64(elapsed / time.Minute)
	return miningBaseRate.Add(miningPerMinuteRate.Mul(decimal.NewFromInt(minutes))).Round(4)
}

// StopResult is the outcome of a manual stop.
type StopResult struct {
	Status     string          `json:"status"`
	CoinsMined decimal.Decimal `json:"coins_mined,omitempty"`
	Wallet     *domain.Wallet  `json:"wallet,omitempty"`
}

// ClaimResult is the outcome of claiming an ended, uncredited session.
type ClaimResult struct {
	Status       string          `json:"status"`
	CoinsClaimed decimal.Decimal `json:"coins_claimed,omitempty"`
	Wallet       *domain.Wallet  `json:"wallet,omitempty"`
}

// MiningService drives the per-user session state machine. Every transition
// runs in one transaction with the session row locked FOR UPDATE, so
// concurrent polls for the same user serialize and the wallet is credited
// exactly once per session. Expiry is lazy: nothing finalizes a session
// until the next status poll or stop.
type MiningService struct {
	db       *pgxpool.Pool
	sessions *repository.MiningRepository
	wallets  *repository.WalletRepository
	now      func() time.Time
}

func NewMiningService(db *pgxpool.Pool) *MiningService {
	return &MiningService{
		db:       db,
		sessions: repository.NewMiningRepository(db),
		wallets:  repository.NewWalletRepository(db),
		now:      time.Now,
	}
}

// Start creates a new session, or returns the existing active one unchanged;
// starting while already mining is idempotent.
func (s *MiningService) Start(ctx context.Context, userID int64) (*domain.MiningSession, error) {
	if _, err := s.wallets.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	session, err := s.sessions.GetActiveForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session, err = s.sessions.CreateTx(ctx, tx, userID)
		if err != nil {
			// Two concurrent starts both see no active row; the partial
			// unique index rejects the loser, who returns the winner's
			// session instead.
			if repository.IsUniqueViolation(err, "mining_sessions_active_uniq") {
				_ = tx.Rollback(ctx)
				winner, readErr := s.sessions.GetActive(ctx, userID)
				if readErr != nil || winner != nil {
					return winner, readErr
				}
				// winner already stopped; start over
				return s.Start(ctx, userID)
			}
			return nil, err
		}
		MiningSessionsStarted.Inc()
	}

	return session, tx.Commit(ctx)
}

// Status recomputes the accrual for the active session. When the session has
// reached the duration cap it is finalized here, with the wallet credit in
// the same transaction; there is no background sweep.
func (s *MiningService) Status(ctx context.Context, userID int64) (*domain.MiningStatusReport, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	session, err := s.sessions.GetActiveForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return &domain.MiningStatusReport{
			Status:     domain.MiningStatusInactive,
			CoinsMined: decimal.Zero,
		}, tx.Commit(ctx)
	}

	elapsed := s.now().Sub(session.StartedAt)
	coins := Accrued(elapsed)

	if elapsed < MaxMiningDuration {
		if err := s.sessions.UpdateMinedTx(ctx, tx, session.ID, coins); err != nil {
			return nil, err
		}
		return &domain.MiningStatusReport{
			Status:         domain.MiningStatusActive,
			ElapsedSeconds: int64(elapsed.Seconds()),
			CoinsMined:     coins,
		}, tx.Commit(ctx)
	}

	// Cap reached: end the session and credit the wallet atomically.
	if _, err := s.sessions.EndTx(ctx, tx, session.ID, coins); err != nil {
		return nil, err
	}
	wallet, err := s.wallets.ApplyDeltaTx(ctx, tx, userID, coins, decimal.Zero, coins)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	MiningSessionsEnded.WithLabelValues("completed").Inc()

	return &domain.MiningStatusReport{
		Status:         domain.MiningStatusCompleted,
		ElapsedSeconds: int64(MaxMiningDuration.Seconds()),
		CoinsMined:     coins,
		AutoCredited:   true,
		Wallet:         wallet,
	}, nil
}

// Stop ends the active session and credits the accrued value. Stopping with
// no active session is an ordinary outcome, not an error.
func (s *MiningService) Stop(ctx context.Context, userID int64) (*StopResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	session, err := s.sessions.GetActiveForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return &StopResult{Status: domain.MiningStatusNoActive}, tx.Commit(ctx)
	}

	coins := Accrued(s.now().Sub(session.StartedAt))

	if _, err := s.sessions.EndTx(ctx, tx, session.ID, coins); err != nil {
		return nil, err
	}
	wallet, err := s.wallets.ApplyDeltaTx(ctx, tx, userID, coins, decimal.Zero, coins)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	MiningSessionsEnded.WithLabelValues("stopped").Inc()

	return &StopResult{
		Status:     domain.MiningStatusStopped,
		CoinsMined: coins,
		Wallet:     wallet,
	}, nil
}

// Claim pays the most recently ended session whose value was never credited.
// Stop and expiry both credit when they end a session, so this normally
// finds nothing; it exists as the recovery path for sessions ended without
// payment.
func (s *MiningService) Claim(ctx context.Context, userID int64) (*ClaimResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	session, err := s.sessions.GetClaimableForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return &ClaimResult{Status: domain.MiningStatusNoClaimable}, tx.Commit(ctx)
	}

	coins := session.TotalMined
	if err := s.sessions.MarkCreditedTx(ctx, tx, session.ID); err != nil {
		return nil, err
	}
	wallet, err := s.wallets.ApplyDeltaTx(ctx, tx, userID, coins, decimal.Zero, coins)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &ClaimResult{
		Status:       domain.MiningStatusClaimed,
		CoinsClaimed: coins,
		Wallet:       wallet,
	}, nil
}
