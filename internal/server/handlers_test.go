package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/asytuyf/genesis-vault/internal/models"
	"github.com/asytuyf/genesis-vault/internal/publisher"
)

type fakeStore struct {
	goals       []models.Goal
	snippets    []models.Snippet
	goalsErr    error
	snippetsErr error
}

func (s *fakeStore) SaveGoals(goals []models.Goal) error {
	if s.goalsErr != nil {
		return s.goalsErr
	}
	s.goals = goals
	return nil
}

func (s *fakeStore) SaveSnippets(snippets []models.Snippet) error {
	if s.snippetsErr != nil {
		return s.snippetsErr
	}
	s.snippets = snippets
	return nil
}

type fakeWriter struct {
	paths []string
	err   error
}

func (w *fakeWriter) UpdateFile(_ context.Context, _, _, path, _ string, _ []byte) error {
	w.paths = append(w.paths, path)
	return w.err
}

func newTestHandler(store *fakeStore, writer *fakeWriter, password string) *Handler {
	pub := publisher.New(writer, func() (string, error) { return password, nil })
	return NewHandler(store, pub, log.New(io.Discard))
}

func post(t *testing.T, h *Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload)))
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp StatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Message
}

func TestUpdateGoals(t *testing.T) {
	store := &fakeStore{}
	writer := &fakeWriter{}
	h := newTestHandler(store, writer, "hunter2")

	rec := post(t, h, "/api/goals", UpdateGoalsRequest{
		Password:     "hunter2",
		UpdatedGoals: []models.Goal{{ID: "g1", Task: "write docs"}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := message(t, rec); got != "SUCCESS" {
		t.Errorf("message = %q, want SUCCESS", got)
	}
	if len(store.goals) != 1 || store.goals[0].Task != "write docs" {
		t.Errorf("local goals = %+v", store.goals)
	}
	if len(writer.paths) != 1 {
		t.Errorf("expected one publish, got %v", writer.paths)
	}
}

func TestUpdateGoalsWrongPassword(t *testing.T) {
	store := &fakeStore{}
	h := newTestHandler(store, &fakeWriter{}, "hunter2")

	rec := post(t, h, "/api/goals", UpdateGoalsRequest{Password: "nope"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := message(t, rec); got != "UNAUTHORIZED" {
		t.Errorf("message = %q, want UNAUTHORIZED", got)
	}
	if store.goals != nil {
		t.Error("rejected request must not touch storage")
	}
}

func TestUpdateGoalsNoPasswordConfigured(t *testing.T) {
	h := newTestHandler(&fakeStore{}, &fakeWriter{}, "")
	rec := post(t, h, "/api/goals", UpdateGoalsRequest{Password: ""})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := message(t, rec); got != "FAILED" {
		t.Errorf("message = %q, want FAILED", got)
	}
}

func TestUpdateGoalsStorageFailure(t *testing.T) {
	store := &fakeStore{goalsErr: errors.New("disk full")}
	h := newTestHandler(store, &fakeWriter{}, "hunter2")
	rec := post(t, h, "/api/goals", UpdateGoalsRequest{Password: "hunter2"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := message(t, rec); got != "FAILED" {
		t.Errorf("message = %q, want FAILED", got)
	}
}

func TestUpdateGoalsPublishFailure(t *testing.T) {
	h := newTestHandler(&fakeStore{}, &fakeWriter{err: errors.New("api down")}, "hunter2")
	rec := post(t, h, "/api/goals", UpdateGoalsRequest{Password: "hunter2"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := message(t, rec); got != "FAILED" {
		t.Errorf("message = %q, want FAILED", got)
	}
}

func TestUpdateSnippets(t *testing.T) {
	store := &fakeStore{}
	writer := &fakeWriter{}
	h := newTestHandler(store, writer, "hunter2")

	rec := post(t, h, "/api/archive", UpdateSnippetsRequest{
		Password:        "hunter2",
		UpdatedSnippets: []models.Snippet{{ID: "s1", Title: "nix tricks"}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(store.snippets) != 1 || store.snippets[0].Title != "nix tricks" {
		t.Errorf("local snippets = %+v", store.snippets)
	}
	if len(writer.paths) != 1 {
		t.Errorf("expected one publish, got %v", writer.paths)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(&fakeStore{}, &fakeWriter{}, "hunter2")
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/goals", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestMalformedBody(t *testing.T) {
	h := newTestHandler(&fakeStore{}, &fakeWriter{}, "hunter2")
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/archive", bytes.NewReader([]byte("{"))))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(&fakeStore{}, &fakeWriter{}, "hunter2")
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
