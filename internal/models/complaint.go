package models

import "time"

// StatusPending is the only status the system assigns on its own. Admins and
// owners may overwrite it with any label via the status endpoint.
const StatusPending = "pending"

type Complaint struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Room        string         `json:"room"`
	Category    string         `json:"category"`
	Status      string         `json:"status"`
	PhotoURL    string         `json:"photo_url,omitempty"`
	UserID      int            `json:"user_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
	User        *ComplaintUser `json:"user,omitempty"`
}

// ComplaintUser is the owner projection attached to admin listings.
type ComplaintUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateComplaintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Room        string `json:"room"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Complaint event types pushed to the admin websocket feed.
const (
	EventComplaintCreated = "complaint_created"
	EventComplaintUpdated = "complaint_updated"
	EventComplaintDeleted = "complaint_deleted"
)

type ComplaintEvent struct {
	Type      string    `json:"type"`
	Complaint Complaint `json:"complaint"`
}
