package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/imglab/moderation/pkg/imglab"
)

// AdminHandler serves the moderation endpoints: pending listing, approve
// and reject. Every route requires membership in one of the configured
// admin groups.
type AdminHandler struct {
	service     imglab.Service
	adminGroups []string
}

// NewAdminHandler builds the handler. Group names are compared
// case-insensitively, so the configured list is normalized here once.
func NewAdminHandler(service imglab.Service, adminGroups []string) *AdminHandler {
	groups := make([]string, 0, len(adminGroups))
	for _, g := range adminGroups {
		groups = append(groups, strings.ToLower(strings.TrimSpace(g)))
	}
	return &AdminHandler{service: service, adminGroups: groups}
}

// Routes returns the router for the admin endpoints
func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.requireAdmin)
	r.Get("/pending", h.ListPending)
	r.Post("/approve", h.Approve)
	r.Post("/reject", h.Reject)
	return r
}

func (h *AdminHandler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAdmin(r, h.adminGroups) {
			respondError(w, r, http.StatusForbidden, "admin group membership required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PendingItem is one pending submission with its preview grant.
type PendingItem struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	PreviewURL   string    `json:"previewUrl"`
}

// ListPendingResponse is the pending-listing envelope.
type ListPendingResponse struct {
	Ok    bool          `json:"ok"`
	Items []PendingItem `json:"items"`
}

// ListPending enumerates every pending submission with a fresh preview grant.
func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	listed, err := h.service.ListState(r.Context(), imglab.StatePending, 0)
	if err != nil {
		slog.Error("pending listing failed", "error", err)
		respondServiceError(w, r, err)
		return
	}

	items := make([]PendingItem, 0, len(listed))
	for _, item := range listed {
		items = append(items, PendingItem{
			Key:          item.Key,
			Size:         item.Size,
			LastModified: item.LastModified,
			PreviewURL:   item.Grant.URL,
		})
	}

	render.JSON(w, r, ListPendingResponse{Ok: true, Items: items})
}

// TransitionRequest is the request body for approve and reject.
type TransitionRequest struct {
	Key string `json:"key"`
}

// ApproveResponse carries the key the submission moved to.
type ApproveResponse struct {
	Ok          bool   `json:"ok"`
	ApprovedKey string `json:"approvedKey"`
}

// RejectResponse carries the key the submission moved to.
type RejectResponse struct {
	Ok          bool   `json:"ok"`
	RejectedKey string `json:"rejectedKey"`
}

// Approve moves a pending submission to the approved state.
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	key, ok := h.decodeKey(w, r)
	if !ok {
		return
	}

	newKey, err := h.service.Approve(r.Context(), key)
	if err != nil {
		slog.Error("approve failed", "key", key, "error", err)
		respondServiceError(w, r, err)
		return
	}

	render.JSON(w, r, ApproveResponse{Ok: true, ApprovedKey: newKey})
}

// Reject moves a pending submission to the rejected state.
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	key, ok := h.decodeKey(w, r)
	if !ok {
		return
	}

	newKey, err := h.service.Reject(r.Context(), key)
	if err != nil {
		slog.Error("reject failed", "key", key, "error", err)
		respondServiceError(w, r, err)
		return
	}

	render.JSON(w, r, RejectResponse{Ok: true, RejectedKey: newKey})
}

func (h *AdminHandler) decodeKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		respondError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return "", false
	}
	return req.Key, true
}
