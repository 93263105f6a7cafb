package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"dormcareBack/internal/models"
	"dormcareBack/internal/services"
)

// maxPhotoSize caps complaint photo uploads at 5 MB.
const maxPhotoSize = 5 << 20

type ComplaintHandler struct {
	Service *services.ComplaintService
}

func (h *ComplaintHandler) SubmitComplaint(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CreateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	complaint, err := h.Service.SubmitComplaint(r.Context(), userID, req)
	if err != nil {
		log.Printf("SubmitComplaint error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to submit complaint")
		return
	}

	writeJSON(w, http.StatusCreated, complaint)
}

func (h *ComplaintHandler) GetMyComplaints(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	complaints, err := h.Service.GetOwnComplaints(r.Context(), userID)
	if err != nil {
		log.Printf("GetMyComplaints error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch complaints")
		return
	}
	if complaints == nil {
		complaints = []models.Complaint{}
	}

	writeJSON(w, http.StatusOK, complaints)
}

func (h *ComplaintHandler) GetAllComplaints(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	complaints, err := h.Service.GetAllComplaints(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrAccessDenied) {
			writeError(w, http.StatusForbidden, "Access denied")
			return
		}
		log.Printf("GetAllComplaints error: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if complaints == nil {
		complaints = []models.Complaint{}
	}

	writeJSON(w, http.StatusOK, complaints)
}

func (h *ComplaintHandler) UpdateComplaintStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	complaintID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid complaint ID")
		return
	}

	var req models.UpdateStatusRequest
	if r.Body != nil {
		// The status field is optional; an empty body leaves it unchanged.
		json.NewDecoder(r.Body).Decode(&req)
	}

	complaint, err := h.Service.UpdateComplaintStatus(r.Context(), complaintID, userID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrComplaintNotFound):
			writeError(w, http.StatusNotFound, "Complaint not found")
		case errors.Is(err, models.ErrAccessDenied):
			writeError(w, http.StatusForbidden, "Access denied")
		default:
			log.Printf("UpdateComplaintStatus error: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to update status")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Status updated",
		"complaint": complaint,
	})
}

func (h *ComplaintHandler) DeleteComplaint(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	complaintID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid complaint ID")
		return
	}

	if err := h.Service.DeleteComplaint(r.Context(), complaintID, userID); err != nil {
		switch {
		case errors.Is(err, models.ErrAccessDenied):
			writeError(w, http.StatusForbidden, "Access denied")
		case errors.Is(err, models.ErrComplaintNotFound):
			writeError(w, http.StatusNotFound, "Complaint not found")
		default:
			log.Printf("DeleteComplaint error: %v", err)
			writeError(w, http.StatusInternalServerError, "Delete failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Complaint deleted"})
}

func (h *ComplaintHandler) UploadComplaintPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	complaintID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid complaint ID")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing photo file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read photo")
		return
	}

	url, err := h.Service.AttachPhoto(r.Context(), complaintID, userID, data, filepath.Base(header.Filename))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrComplaintNotFound):
			writeError(w, http.StatusNotFound, "Complaint not found")
		case errors.Is(err, models.ErrAccessDenied):
			writeError(w, http.StatusForbidden, "Access denied")
		default:
			log.Printf("UploadComplaintPhoto error: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to upload photo")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Photo uploaded",
		"photo_url": url,
	})
}
