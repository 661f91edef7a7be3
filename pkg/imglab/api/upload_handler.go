package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/imglab/moderation/pkg/imglab"
)

// UploadHandler serves upload-slot allocation for authenticated users.
type UploadHandler struct {
	service imglab.Service
}

func NewUploadHandler(service imglab.Service) *UploadHandler {
	return &UploadHandler{service: service}
}

// Routes returns the router for the upload endpoints
func (h *UploadHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.RequestSlot)
	return r
}

// RequestSlotRequest is the request body for slot allocation.
type RequestSlotRequest struct {
	ContentType string `json:"contentType"`
}

// RequestSlotResponse carries the write grant and the upload target.
type RequestSlotResponse struct {
	Ok     bool         `json:"ok"`
	Upload UploadFields `json:"upload"`
	Target UploadTarget `json:"target"`
}

// UploadFields is the presigned POST the client submits the file with.
type UploadFields struct {
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields"`
}

// UploadTarget describes the object the grant is scoped to.
type UploadTarget struct {
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	MaxBytes    int64  `json:"maxBytes"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// RequestSlot allocates the caller's upload slot and returns a scoped,
// time-limited write grant.
func (h *UploadHandler) RequestSlot(w http.ResponseWriter, r *http.Request) {
	userID := subjectFrom(r)
	if userID == "" {
		respondError(w, r, http.StatusUnauthorized, "Unauthorized (no user id)")
		return
	}

	var req RequestSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	slot, err := h.service.RequestSlot(r.Context(), imglab.RequestSlotRequest{
		UserID:      userID,
		ContentType: req.ContentType,
	})
	if err != nil {
		slog.Error("slot allocation failed", "user_id", userID, "error", err)
		respondServiceError(w, r, err)
		return
	}

	render.JSON(w, r, RequestSlotResponse{
		Ok: true,
		Upload: UploadFields{
			URL:    slot.Grant.URL,
			Fields: slot.Grant.Fields,
		},
		Target: UploadTarget{
			Key:         slot.Key,
			ContentType: slot.ContentType,
			MaxBytes:    slot.MaxBytes,
			ExpiresIn:   slot.ExpiresIn,
		},
	})
}
