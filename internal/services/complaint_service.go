package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"dormcareBack/internal/models"
)

type ComplaintStore interface {
	CreateComplaint(ctx context.Context, c models.Complaint) (models.Complaint, error)
	GetComplaintByID(ctx context.Context, id int) (models.Complaint, error)
	GetComplaintsByUserID(ctx context.Context, userID int) ([]models.Complaint, error)
	GetAllComplaints(ctx context.Context) ([]models.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id int, status string) error
	SetComplaintPhoto(ctx context.Context, id int, photoURL string) error
	DeleteComplaintByID(ctx context.Context, id int) error
}

type UserStore interface {
	GetUserByID(ctx context.Context, id int) (models.User, error)
}

type ComplaintClassifier interface {
	CategorizeComplaint(ctx context.Context, text string) (string, error)
}

// ComplaintPublisher pushes complaint events to the admin live feed.
type ComplaintPublisher interface {
	PublishComplaintEvent(event models.ComplaintEvent)
}

// AdminNotifier sends a push notification to admin devices.
type AdminNotifier interface {
	NotifyAdmins(ctx context.Context, title, body string) error
}

// Uploader stores a file and returns its public URL.
type Uploader interface {
	UploadFile(file []byte, fileName, folder string) (string, error)
}

type ComplaintService struct {
	ComplaintRepo ComplaintStore
	UserRepo      UserStore
	Classifier    ComplaintClassifier
	Publisher     ComplaintPublisher
	Notifier      AdminNotifier
	Storage       Uploader
}

// SubmitComplaint categorizes the combined complaint text and persists the
// complaint with status "pending" for the authenticated user. A classifier
// failure aborts the submission.
func (s *ComplaintService) SubmitComplaint(ctx context.Context, userID int, req models.CreateComplaintRequest) (models.Complaint, error) {
	combinedText := fmt.Sprintf("%s - %s", req.Title, req.Description)
	category, err := s.Classifier.CategorizeComplaint(ctx, combinedText)
	if err != nil {
		return models.Complaint{}, err
	}

	complaint := models.Complaint{
		Title:       req.Title,
		Description: req.Description,
		Room:        req.Room,
		Category:    category,
		Status:      models.StatusPending,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}

	created, err := s.ComplaintRepo.CreateComplaint(ctx, complaint)
	if err != nil {
		return models.Complaint{}, err
	}

	s.publish(models.ComplaintEvent{Type: models.EventComplaintCreated, Complaint: created})
	s.notifyAdmins("New complaint", fmt.Sprintf("%s (room %s)", created.Title, created.Room))
	return created, nil
}

func (s *ComplaintService) GetOwnComplaints(ctx context.Context, userID int) ([]models.Complaint, error) {
	return s.ComplaintRepo.GetComplaintsByUserID(ctx, userID)
}

// GetAllComplaints is the admin listing. A caller whose user record is
// missing or not flagged as admin is denied.
func (s *ComplaintService) GetAllComplaints(ctx context.Context, userID int) ([]models.Complaint, error) {
	if err := s.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	return s.ComplaintRepo.GetAllComplaints(ctx)
}

// UpdateComplaintStatus overwrites the status if a non-empty one is given.
// Allowed for the complaint owner and for admins. An authenticated id that
// does not resolve to a user record is denied rather than treated as a
// server error.
func (s *ComplaintService) UpdateComplaintStatus(ctx context.Context, complaintID, userID int, status string) (models.Complaint, error) {
	complaint, err := s.ComplaintRepo.GetComplaintByID(ctx, complaintID)
	if err != nil {
		return models.Complaint{}, err
	}

	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return models.Complaint{}, denyOnMissingUser(err)
	}
	if !user.IsAdmin && complaint.UserID != userID {
		return models.Complaint{}, models.ErrAccessDenied
	}

	if status != "" {
		if err := s.ComplaintRepo.UpdateComplaintStatus(ctx, complaintID, status); err != nil {
			return models.Complaint{}, err
		}
		complaint.Status = status
	}

	s.publish(models.ComplaintEvent{Type: models.EventComplaintUpdated, Complaint: complaint})
	return complaint, nil
}

// DeleteComplaint removes a complaint permanently. Admin only; ownership is
// not an alternative path here, unlike the status update.
func (s *ComplaintService) DeleteComplaint(ctx context.Context, complaintID, userID int) error {
	if err := s.requireAdmin(ctx, userID); err != nil {
		return err
	}

	complaint, err := s.ComplaintRepo.GetComplaintByID(ctx, complaintID)
	if err != nil {
		return err
	}
	if err := s.ComplaintRepo.DeleteComplaintByID(ctx, complaintID); err != nil {
		return err
	}

	s.publish(models.ComplaintEvent{Type: models.EventComplaintDeleted, Complaint: complaint})
	return nil
}

// AttachPhoto uploads a photo of the reported issue and links it to the
// complaint. Same access rule as the status update: owner or admin.
func (s *ComplaintService) AttachPhoto(ctx context.Context, complaintID, userID int, file []byte, fileName string) (string, error) {
	complaint, err := s.ComplaintRepo.GetComplaintByID(ctx, complaintID)
	if err != nil {
		return "", err
	}

	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return "", denyOnMissingUser(err)
	}
	if !user.IsAdmin && complaint.UserID != userID {
		return "", models.ErrAccessDenied
	}

	url, err := s.Storage.UploadFile(file, fmt.Sprintf("%d_%s", complaintID, fileName), "complaints")
	if err != nil {
		return "", err
	}
	if err := s.ComplaintRepo.SetComplaintPhoto(ctx, complaintID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *ComplaintService) requireAdmin(ctx context.Context, userID int) error {
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return denyOnMissingUser(err)
	}
	if !user.IsAdmin {
		return models.ErrAccessDenied
	}
	return nil
}

func denyOnMissingUser(err error) error {
	if errors.Is(err, models.ErrUserNotFound) {
		return models.ErrAccessDenied
	}
	return err
}

func (s *ComplaintService) publish(event models.ComplaintEvent) {
	if s.Publisher != nil {
		s.Publisher.PublishComplaintEvent(event)
	}
}

// notifyAdmins runs off the request path so a slow or failing push never
// delays the response.
func (s *ComplaintService) notifyAdmins(title, body string) {
	if s.Notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Notifier.NotifyAdmins(ctx, title, body); err != nil {
			log.Printf("admin notification failed: %v", err)
		}
	}()
}
