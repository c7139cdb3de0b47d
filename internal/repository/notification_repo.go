package repository

import (
	"context"
	"errors"

	"sonf_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, userID int64, title, body string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO notifications (user_id, title, body) VALUES ($1, $2, $3)`,
		userID, title, body)
	return err
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, title, body, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// MarkRead flips is_read for one of the user's notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id int64) (*domain.Notification, error) {
	var n domain.Notification
	err := r.db.QueryRow(ctx, `
		UPDATE notifications SET is_read = true
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, body, is_read, created_at
	`, id, userID).Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}
