package post

import (
	"Bislei/internal/api/handlers"
	"Bislei/internal/api/middleware"
	"Bislei/internal/core/posts"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Handler serves post reads, deletion, and feeds
type Handler struct {
	service posts.Service
}

func New(service posts.Service) *Handler {
	return &Handler{service: service}
}

// HandleGetPost returns a single post
// GET /api/posts/{postID}
func (h *Handler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	post, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, post)
}

// HandleDeletePost removes the viewer's own post
// DELETE /api/posts/{postID}
func (h *Handler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r)
	if viewerID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	postID := chi.URLParam(r, "postID")
	if err := h.service.DeletePost(r.Context(), viewerID, postID); err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// HandleFeed returns the global feed, newest first
// GET /api/feed?limit=&offset=
func (h *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	feed, err := h.service.Feed(r.Context(), limit, offset)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"posts": feed})
}

// HandleOwnPosts returns the authenticated user's posts, newest first
// GET /api/posts/mine
func (h *Handler) HandleOwnPosts(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r)
	if viewerID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	list, err := h.service.OwnPosts(r.Context(), viewerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"posts": list})
}
