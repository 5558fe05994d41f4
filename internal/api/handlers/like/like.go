package like

import (
	"Bislei/internal/api/handlers"
	"Bislei/internal/api/middleware"
	"Bislei/internal/core/likes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler serves like toggles and liked-post lookups
type Handler struct {
	service likes.Service
}

func New(service likes.Service) *Handler {
	return &Handler{service: service}
}

// HandleToggleLike flips the viewer's like on a post and returns the new
// state with the updated counter
// POST /api/posts/{postID}/like
func (h *Handler) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r)
	if viewerID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	postID := chi.URLParam(r, "postID")
	result, err := h.service.ToggleLike(r.Context(), viewerID, postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandleLikedPosts returns the ids of every post the viewer likes
// GET /api/likes
func (h *Handler) HandleLikedPosts(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r)
	if viewerID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	ids, err := h.service.LikedPostIDs(r.Context(), viewerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string][]string{"postIds": ids})
}

// handleServiceError converts service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, likes.ErrPostNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
	case errors.Is(err, likes.ErrTransactionConflict):
		handlers.WriteError(w, http.StatusConflict, "Conflict", "The post changed concurrently, refresh and retry")
	default:
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Something went wrong")
	}
}
