package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"dormcareBack/internal/models"
	"dormcareBack/internal/services"
)

type stubComplaintStore struct {
	complaints map[int]models.Complaint
	owners     map[int]models.ComplaintUser
	nextID     int
}

func (s *stubComplaintStore) CreateComplaint(_ context.Context, c models.Complaint) (models.Complaint, error) {
	c.ID = s.nextID
	s.nextID++
	s.complaints[c.ID] = c
	return c, nil
}

func (s *stubComplaintStore) GetComplaintByID(_ context.Context, id int) (models.Complaint, error) {
	c, ok := s.complaints[id]
	if !ok {
		return models.Complaint{}, models.ErrComplaintNotFound
	}
	return c, nil
}

func (s *stubComplaintStore) GetComplaintsByUserID(_ context.Context, userID int) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range s.complaints {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *stubComplaintStore) GetAllComplaints(_ context.Context) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range s.complaints {
		// The production query joins users and projects the owner.
		if owner, ok := s.owners[c.UserID]; ok {
			c.User = &owner
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *stubComplaintStore) UpdateComplaintStatus(_ context.Context, id int, status string) error {
	c := s.complaints[id]
	c.Status = status
	s.complaints[id] = c
	return nil
}

func (s *stubComplaintStore) SetComplaintPhoto(_ context.Context, id int, photoURL string) error {
	c := s.complaints[id]
	c.PhotoURL = photoURL
	s.complaints[id] = c
	return nil
}

func (s *stubComplaintStore) DeleteComplaintByID(_ context.Context, id int) error {
	delete(s.complaints, id)
	return nil
}

type stubUserStore struct {
	users map[int]models.User
}

func (s *stubUserStore) GetUserByID(_ context.Context, id int) (models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, models.ErrUserNotFound
	}
	return u, nil
}

type stubClassifier struct{}

func (stubClassifier) CategorizeComplaint(_ context.Context, _ string) (string, error) {
	return "plumbing", nil
}

func newTestHandler() (*ComplaintHandler, *stubComplaintStore) {
	store := &stubComplaintStore{
		complaints: make(map[int]models.Complaint),
		owners: map[int]models.ComplaintUser{
			1: {Name: "Alice", Email: "alice@example.com"},
			2: {Name: "Bob", Email: "bob@example.com"},
		},
		nextID: 1,
	}
	users := &stubUserStore{users: map[int]models.User{
		1: {ID: 1, Name: "Alice", Email: "alice@example.com"},
		2: {ID: 2, Name: "Bob", Email: "bob@example.com"},
		9: {ID: 9, Name: "Root", Email: "root@example.com", IsAdmin: true},
	}}
	svc := &services.ComplaintService{ComplaintRepo: store, UserRepo: users, Classifier: stubClassifier{}}
	return &ComplaintHandler{Service: svc}, store
}

func asUser(r *http.Request, userID int) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), "user_id", userID))
}

func TestSubmitComplaintHandler(t *testing.T) {
	h, _ := newTestHandler()

	t.Run("creates with pending status", func(t *testing.T) {
		body := `{"title":"Leaky faucet","description":"Bathroom 3","room":"B3"}`
		r := asUser(httptest.NewRequest(http.MethodPost, "/api/complaints", strings.NewReader(body)), 1)
		w := httptest.NewRecorder()

		h.SubmitComplaint(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var created models.Complaint
		if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if created.Status != models.StatusPending || created.Category != "plumbing" || created.UserID != 1 {
			t.Fatalf("unexpected complaint: %+v", created)
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		r := asUser(httptest.NewRequest(http.MethodPost, "/api/complaints", strings.NewReader("{")), 1)
		w := httptest.NewRecorder()

		h.SubmitComplaint(w, r)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("rejects missing identity", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/complaints", strings.NewReader(`{}`))
		w := httptest.NewRecorder()

		h.SubmitComplaint(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestGetMyComplaintsHandler(t *testing.T) {
	h, store := newTestHandler()
	store.CreateComplaint(context.Background(), models.Complaint{Title: "a", UserID: 1})
	store.CreateComplaint(context.Background(), models.Complaint{Title: "b", UserID: 2})

	t.Run("returns only own complaints", func(t *testing.T) {
		r := asUser(httptest.NewRequest(http.MethodGet, "/api/complaints", nil), 2)
		w := httptest.NewRecorder()

		h.GetMyComplaints(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var list []models.Complaint
		if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(list) != 1 || list[0].UserID != 2 {
			t.Fatalf("unexpected listing: %+v", list)
		}
	})

	t.Run("empty result is an array, not null", func(t *testing.T) {
		r := asUser(httptest.NewRequest(http.MethodGet, "/api/complaints", nil), 9)
		w := httptest.NewRecorder()

		h.GetMyComplaints(w, r)

		if got := strings.TrimSpace(w.Body.String()); got != "[]" {
			t.Fatalf("expected [], got %q", got)
		}
	})
}

func TestGetAllComplaintsHandler(t *testing.T) {
	h, store := newTestHandler()
	store.CreateComplaint(context.Background(), models.Complaint{Title: "a", UserID: 1})
	store.CreateComplaint(context.Background(), models.Complaint{Title: "b", UserID: 2})

	t.Run("forbidden for non-admin", func(t *testing.T) {
		r := asUser(httptest.NewRequest(http.MethodGet, "/api/complaints/admin", nil), 1)
		w := httptest.NewRecorder()

		h.GetAllComplaints(w, r)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Access denied") {
			t.Fatalf("unexpected body %q", w.Body.String())
		}
	})

	t.Run("admin sees all", func(t *testing.T) {
		r := asUser(httptest.NewRequest(http.MethodGet, "/api/complaints/admin", nil), 9)
		w := httptest.NewRecorder()

		h.GetAllComplaints(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var list []models.Complaint
		if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected 2 complaints, got %d", len(list))
		}
	})

	t.Run("owner is expanded to name and email", func(t *testing.T) {
		r := asUser(httptest.NewRequest(http.MethodGet, "/api/complaints/admin", nil), 9)
		w := httptest.NewRecorder()

		h.GetAllComplaints(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var list []models.Complaint
		if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
			t.Fatalf("decode: %v", err)
		}
		want := map[int]models.ComplaintUser{
			1: {Name: "Alice", Email: "alice@example.com"},
			2: {Name: "Bob", Email: "bob@example.com"},
		}
		for _, c := range list {
			if c.User == nil {
				t.Fatalf("complaint %d has no owner attached", c.ID)
			}
			if *c.User != want[c.UserID] {
				t.Fatalf("complaint %d owner = %+v, want %+v", c.ID, *c.User, want[c.UserID])
			}
		}
	})
}

func TestUpdateComplaintStatusHandler(t *testing.T) {
	newRequest := func(id string, userID int, body string) *http.Request {
		r := httptest.NewRequest(http.MethodPatch, "/api/complaints/"+id+"/status?:id="+id, strings.NewReader(body))
		return asUser(r, userID)
	}

	t.Run("owner updates", func(t *testing.T) {
		h, store := newTestHandler()
		store.CreateComplaint(context.Background(), models.Complaint{Title: "a", UserID: 1, Status: models.StatusPending})

		w := httptest.NewRecorder()
		h.UpdateComplaintStatus(w, newRequest("1", 1, `{"status":"resolved"}`))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp struct {
			Message   string           `json:"message"`
			Complaint models.Complaint `json:"complaint"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Message != "Status updated" || resp.Complaint.Status != "resolved" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("third party is forbidden", func(t *testing.T) {
		h, store := newTestHandler()
		store.CreateComplaint(context.Background(), models.Complaint{Title: "a", UserID: 1})

		w := httptest.NewRecorder()
		h.UpdateComplaintStatus(w, newRequest("1", 2, `{"status":"resolved"}`))

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("missing complaint is 404", func(t *testing.T) {
		h, _ := newTestHandler()

		w := httptest.NewRecorder()
		h.UpdateComplaintStatus(w, newRequest("42", 1, `{"status":"resolved"}`))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Complaint not found") {
			t.Fatalf("unexpected body %q", w.Body.String())
		}
	})

	t.Run("empty body keeps the status", func(t *testing.T) {
		h, store := newTestHandler()
		store.CreateComplaint(context.Background(), models.Complaint{Title: "a", UserID: 1, Status: models.StatusPending})

		w := httptest.NewRecorder()
		h.UpdateComplaintStatus(w, newRequest("1", 1, ""))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if store.complaints[1].Status != models.StatusPending {
			t.Fatalf("status should be unchanged, got %q", store.complaints[1].Status)
		}
	})
}

func TestDeleteComplaintHandler(t *testing.T) {
	newRequest := func(id string, userID int) *http.Request {
		r := httptest.NewRequest(http.MethodDelete, "/api/complaints/"+id+"?:id="+id, nil)
		return asUser(r, userID)
	}

	t.Run("admin deletes", func(t *testing.T) {
		h, store := newTestHandler()
		store.CreateComplaint(context.Background(), models.Complaint{Title: "a", UserID: 1})

		w := httptest.NewRecorder()
		h.DeleteComplaint(w, newRequest("1", 9))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Complaint deleted") {
			t.Fatalf("unexpected body %q", w.Body.String())
		}
	})

	t.Run("owner without admin flag is forbidden", func(t *testing.T) {
		h, store := newTestHandler()
		store.CreateComplaint(context.Background(), models.Complaint{Title: "a", UserID: 1})

		w := httptest.NewRecorder()
		h.DeleteComplaint(w, newRequest("1", 1))

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("missing complaint is 404 for admin", func(t *testing.T) {
		h, _ := newTestHandler()

		w := httptest.NewRecorder()
		h.DeleteComplaint(w, newRequest("42", 9))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
