package comment

import (
	"Bislei/internal/api/handlers"
	"Bislei/internal/api/middleware"
	"Bislei/internal/core/comments"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler serves comment creation and listing
type Handler struct {
	service comments.Service
}

func New(service comments.Service) *Handler {
	return &Handler{service: service}
}

type createCommentRequest struct {
	Text string `json:"text"`
}

// HandleAddComment adds a comment to a post. Blank text is accepted and
// silently ignored; the response reports created: false with no comment.
// POST /api/posts/{postID}/comments
func (h *Handler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r)
	if viewerID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	postID := chi.URLParam(r, "postID")
	comment, err := h.service.AddComment(r.Context(), viewerID, postID, req.Text)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if comment == nil {
		handlers.WriteJSON(w, http.StatusOK, map[string]bool{"created": false})
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"created": true,
		"comment": comment,
	})
}

// HandleListComments returns a post's comments oldest first
// GET /api/posts/{postID}/comments
func (h *Handler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	list, err := h.service.ListComments(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"comments": list})
}

// handleServiceError converts service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, comments.ErrPostNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
	case errors.Is(err, comments.ErrTransactionConflict):
		handlers.WriteError(w, http.StatusConflict, "Conflict", "The post changed concurrently, refresh and retry")
	default:
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Something went wrong")
	}
}
