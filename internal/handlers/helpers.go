package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// userIDFromContext reads the authenticated user id injected by the JWT
// middleware.
func userIDFromContext(r *http.Request) (int, bool) {
	userID, ok := r.Context().Value("user_id").(int)
	return userID, ok
}

// pathID reads a ":id" style parameter the pat router injects into the query.
func pathID(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(":" + name)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError keeps the external error contract to a single "error" field; the
// real cause is logged by the caller, never surfaced.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
