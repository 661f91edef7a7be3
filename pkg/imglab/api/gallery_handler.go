package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/imglab/moderation/pkg/imglab"
)

// GalleryHandler serves the public listing of approved submissions.
type GalleryHandler struct {
	service imglab.Service
}

func NewGalleryHandler(service imglab.Service) *GalleryHandler {
	return &GalleryHandler{service: service}
}

// Routes returns the router for the gallery endpoints
func (h *GalleryHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListApproved)
	return r
}

// GalleryItem is one approved submission with its read grant.
type GalleryItem struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	URL          string    `json:"url"`
}

// GalleryResponse is the approved-listing envelope.
type GalleryResponse struct {
	Ok    bool          `json:"ok"`
	Items []GalleryItem `json:"items"`
}

// ListApproved enumerates every approved submission with a fresh read grant.
func (h *GalleryHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	listed, err := h.service.ListState(r.Context(), imglab.StateApproved, 0)
	if err != nil {
		slog.Error("gallery listing failed", "error", err)
		respondServiceError(w, r, err)
		return
	}

	items := make([]GalleryItem, 0, len(listed))
	for _, item := range listed {
		items = append(items, GalleryItem{
			Key:          item.Key,
			Size:         item.Size,
			LastModified: item.LastModified,
			URL:          item.Grant.URL,
		})
	}

	render.JSON(w, r, GalleryResponse{Ok: true, Items: items})
}
