package repositories

import (
	"context"
	"database/sql"
	"errors"

	"dormcareBack/internal/models"
)

type ComplaintRepository struct {
	DB *sql.DB
}

func (r *ComplaintRepository) CreateComplaint(ctx context.Context, c models.Complaint) (models.Complaint, error) {
	query := `INSERT INTO complaints (title, description, room, category, status, user_id, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, query, c.Title, c.Description, c.Room, c.Category, c.Status, c.UserID, c.CreatedAt)
	if err != nil {
		return models.Complaint{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Complaint{}, err
	}
	c.ID = int(id)
	return c, nil
}

func (r *ComplaintRepository) GetComplaintByID(ctx context.Context, id int) (models.Complaint, error) {
	query := `SELECT id, title, description, room, category, status, photo_url, user_id, created_at, updated_at
	          FROM complaints WHERE id = ?`
	var c models.Complaint
	var photo sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Title, &c.Description, &c.Room, &c.Category, &c.Status, &photo, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Complaint{}, models.ErrComplaintNotFound
	}
	if err != nil {
		return models.Complaint{}, err
	}
	c.PhotoURL = photo.String
	return c, nil
}

func (r *ComplaintRepository) GetComplaintsByUserID(ctx context.Context, userID int) ([]models.Complaint, error) {
	query := `SELECT id, title, description, room, category, status, photo_url, user_id, created_at, updated_at
	          FROM complaints WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		var c models.Complaint
		var photo sql.NullString
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Room, &c.Category, &c.Status, &photo, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.PhotoURL = photo.String
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

// GetAllComplaints returns every complaint with the owner expanded to
// name and email, newest first. Used by the admin listing only.
func (r *ComplaintRepository) GetAllComplaints(ctx context.Context) ([]models.Complaint, error) {
	query := `SELECT c.id, c.title, c.description, c.room, c.category, c.status, c.photo_url, c.user_id,
	                 c.created_at, c.updated_at, u.name, u.email
	          FROM complaints c
	          JOIN users u ON u.id = c.user_id
	          ORDER BY c.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		var c models.Complaint
		var owner models.ComplaintUser
		var photo sql.NullString
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Room, &c.Category, &c.Status, &photo, &c.UserID,
			&c.CreatedAt, &c.UpdatedAt, &owner.Name, &owner.Email); err != nil {
			return nil, err
		}
		c.PhotoURL = photo.String
		c.User = &owner
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

func (r *ComplaintRepository) UpdateComplaintStatus(ctx context.Context, id int, status string) error {
	query := `UPDATE complaints SET status = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, query, status, id)
	return err
}

func (r *ComplaintRepository) SetComplaintPhoto(ctx context.Context, id int, photoURL string) error {
	query := `UPDATE complaints SET photo_url = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, query, photoURL, id)
	return err
}

func (r *ComplaintRepository) DeleteComplaintByID(ctx context.Context, id int) error {
	query := `DELETE FROM complaints WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, query, id)
	return err
}
