package repository

import (
	"context"
	"errors"

	"sonf_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

// isUniqueViolation reports whether err is a Postgres 23505 unique
// constraint violation, optionally for a specific constraint name.
func isUniqueViolation(err error, constraint ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	if len(constraint) == 0 {
		return true
	}
	return pgErr.ConstraintName == constraint[0]
}

// IsUniqueViolation is the exported form used by services.
func IsUniqueViolation(err error, constraint ...string) bool {
	return isUniqueViolation(err, constraint...)
}

const userColumns = `id, email, password_hash, COALESCE(full_name, ''), COALESCE(username, ''),
	COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(phone, ''),
	COALESCE(referral_code, ''), created_at`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Username,
		&u.FirstName, &u.LastName, &u.Phone, &u.ReferralCode, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	var fullName, username *string
	if u.FullName != "" {
		fullName = &u.FullName
	}
	if u.Username != "" {
		username = &u.Username
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name, username)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Email, u.PasswordHash, fullName, username).Scan(&u.ID, &u.CreatedAt)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// UpdateProfile updates the mutable profile fields and returns the fresh row.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName, phone string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, phone = $4
		WHERE id = $1
		RETURNING `+userColumns, id, firstName, lastName, phone))
}
