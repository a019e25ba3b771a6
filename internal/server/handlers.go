// Package server exposes the web-panel HTTP API: password-gated wholesale
// updates of the shared goal and snippet documents, mirrored to local
// storage and pushed to the public repository.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/asytuyf/genesis-vault/internal/models"
	"github.com/asytuyf/genesis-vault/internal/observability"
	"github.com/asytuyf/genesis-vault/internal/publisher"
)

// DocumentStore is the slice of local storage the handlers need.
type DocumentStore interface {
	SaveGoals([]models.Goal) error
	SaveSnippets([]models.Snippet) error
}

// Handler coordinates HTTP requests with local storage and the publisher.
type Handler struct {
	store  DocumentStore
	pub    *publisher.Publisher
	logger *log.Logger
}

// NewHandler builds a Handler.
func NewHandler(store DocumentStore, pub *publisher.Publisher, logger *log.Logger) *Handler {
	return &Handler{store: store, pub: pub, logger: logger}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/goals", h.goals)
	mux.HandleFunc("/api/archive", h.archive)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// UpdateGoalsRequest is the payload for POST /api/goals.
type UpdateGoalsRequest struct {
	Password     string        `json:"password"`
	UpdatedGoals []models.Goal `json:"updatedGoals"`
}

// UpdateSnippetsRequest is the payload for POST /api/archive.
type UpdateSnippetsRequest struct {
	Password        string           `json:"password"`
	UpdatedSnippets []models.Snippet `json:"updatedSnippets"`
}

// StatusResponse is the uniform response body for the update endpoints.
type StatusResponse struct {
	Message string `json:"message"`
}

func (h *Handler) goals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeStatus(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
		return
	}

	var req UpdateGoalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, http.StatusBadRequest, "INVALID")
		return
	}

	cred := publisher.NewCredential(req.Password)
	if err := h.pub.Verify(cred); err != nil {
		h.rejectCredential(w, "goals", err)
		return
	}

	if err := h.store.SaveGoals(req.UpdatedGoals); err != nil {
		h.logger.Error("failed to save goals", "err", err)
		observability.RecordStoreWrite("goals", "failed")
		observability.RecordPublish("goals", "failed")
		writeStatus(w, http.StatusInternalServerError, "FAILED")
		return
	}
	observability.RecordStoreWrite("goals", "ok")
	if err := h.pub.PublishGoals(r.Context(), cred, req.UpdatedGoals); err != nil {
		h.logger.Error("failed to publish goals", "err", err)
		observability.RecordPublish("goals", "failed")
		writeStatus(w, http.StatusInternalServerError, "FAILED")
		return
	}

	observability.RecordPublish("goals", "ok")
	writeStatus(w, http.StatusOK, "SUCCESS")
}

func (h *Handler) archive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeStatus(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
		return
	}

	var req UpdateSnippetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, http.StatusBadRequest, "INVALID")
		return
	}

	cred := publisher.NewCredential(req.Password)
	if err := h.pub.Verify(cred); err != nil {
		h.rejectCredential(w, "snippets", err)
		return
	}

	if err := h.store.SaveSnippets(req.UpdatedSnippets); err != nil {
		h.logger.Error("failed to save snippets", "err", err)
		observability.RecordStoreWrite("snippets", "failed")
		observability.RecordPublish("snippets", "failed")
		writeStatus(w, http.StatusInternalServerError, "FAILED")
		return
	}
	observability.RecordStoreWrite("snippets", "ok")
	if err := h.pub.PublishSnippets(r.Context(), cred, req.UpdatedSnippets); err != nil {
		h.logger.Error("failed to publish snippets", "err", err)
		observability.RecordPublish("snippets", "failed")
		writeStatus(w, http.StatusInternalServerError, "FAILED")
		return
	}

	observability.RecordPublish("snippets", "ok")
	writeStatus(w, http.StatusOK, "SUCCESS")
}

// rejectCredential maps credential failures. A missing admin password is a
// server misconfiguration, not a caller mistake.
func (h *Handler) rejectCredential(w http.ResponseWriter, document string, err error) {
	observability.RecordPublish(document, "unauthorized")
	if errors.Is(err, publisher.ErrNoPassword) {
		h.logger.Error("publish rejected, no admin password configured")
		writeStatus(w, http.StatusInternalServerError, "FAILED")
		return
	}
	writeStatus(w, http.StatusUnauthorized, "UNAUTHORIZED")
}

func writeStatus(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, StatusResponse{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
