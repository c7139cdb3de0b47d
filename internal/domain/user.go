package domain

import "time"

type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name,omitempty"`
	Username     string    `db:"username" json:"username,omitempty"`
	FirstName    string    `db:"first_name" json:"first_name,omitempty"`
	LastName     string    `db:"last_name" json:"last_name,omitempty"`
	Phone        string    `db:"phone" json:"phone,omitempty"`
	ReferralCode string    `db:"referral_code" json:"referral_code,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
