package repositories

import (
	"context"
	"database/sql"
)

// NotifyTokenRepository stores FCM device tokens used to push new-complaint
// alerts to admin devices.
type NotifyTokenRepository struct {
	DB *sql.DB
}

func (r *NotifyTokenRepository) InsertToken(ctx context.Context, userID int, token string) error {
	query := `INSERT INTO notify_tokens (user_id, token) VALUES (?, ?)`
	_, err := r.DB.ExecContext(ctx, query, userID, token)
	return err
}

func (r *NotifyTokenRepository) DeleteToken(ctx context.Context, token string) error {
	query := `DELETE FROM notify_tokens WHERE token = ?`
	_, err := r.DB.ExecContext(ctx, query, token)
	return err
}

func (r *NotifyTokenRepository) GetAdminTokens(ctx context.Context) ([]string, error) {
	query := `SELECT nt.token FROM notify_tokens nt
	          JOIN users u ON u.id = nt.user_id
	          WHERE u.is_admin = 1`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}
