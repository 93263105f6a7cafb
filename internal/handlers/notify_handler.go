package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"dormcareBack/internal/repositories"
)

// NotifyHandler manages FCM device token registration for push alerts.
type NotifyHandler struct {
	TokenRepo *repositories.NotifyTokenRepository
}

type tokenRequest struct {
	Token string `json:"token"`
}

func (h *NotifyHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.TokenRepo.InsertToken(r.Context(), userID, req.Token); err != nil {
		log.Printf("CreateToken error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to register token")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Token registered"})
}

func (h *NotifyHandler) DeleteToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(":token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "Missing token")
		return
	}

	if err := h.TokenRepo.DeleteToken(r.Context(), token); err != nil {
		log.Printf("DeleteToken error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
