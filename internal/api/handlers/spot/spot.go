package spot

import (
	"Bislei/internal/api/handlers"
	"Bislei/internal/core/spots"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler serves fishing spot browsing
type Handler struct {
	service spots.Service
}

func New(service spots.Service) *Handler {
	return &Handler{service: service}
}

// HandleListSpots returns all fishing spots
// GET /api/spots
func (h *Handler) HandleListSpots(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Something went wrong")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"spots": list})
}

// HandleGetSpot returns a single fishing spot
// GET /api/spots/{spotID}
func (h *Handler) HandleGetSpot(w http.ResponseWriter, r *http.Request) {
	spot, err := h.service.Get(r.Context(), chi.URLParam(r, "spotID"))
	if err != nil {
		if errors.Is(err, spots.ErrSpotNotFound) {
			handlers.WriteError(w, http.StatusNotFound, "SpotNotFound", "Fishing spot not found")
			return
		}
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Something went wrong")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, spot)
}
