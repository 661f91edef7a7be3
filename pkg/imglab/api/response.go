package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/imglab/moderation/pkg/imglab"
)

// ErrorResponse is the failure envelope shared by every endpoint.
type ErrorResponse struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Ok: false, Error: message})
}

// respondServiceError maps a service error onto the response envelope:
// validation failures are 400-class, the used-slot condition is 403, and
// anything from the storage backend surfaces as 502.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, imglab.ErrMissingUserID):
		respondError(w, r, http.StatusBadRequest, "Missing user id.")
	case errors.Is(err, imglab.ErrInvalidContentType):
		respondError(w, r, http.StatusBadRequest, "Invalid contentType.")
	case errors.Is(err, imglab.ErrSlotAlreadyUsed):
		respondError(w, r, http.StatusForbidden, "You have already uploaded an image.")
	case errors.Is(err, imglab.ErrInvalidSourceState):
		respondError(w, r, http.StatusBadRequest, "key must be under the pending prefix")
	case errors.Is(err, imglab.ErrObjectNotFound):
		respondError(w, r, http.StatusNotFound, "object not found")
	default:
		respondError(w, r, http.StatusBadGateway, "storage backend error")
	}
}
