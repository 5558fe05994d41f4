package post

import (
	"Bislei/internal/api/handlers"
	"Bislei/internal/api/middleware"
	"Bislei/internal/core/posts"
	"io"
	"net/http"
)

// multipart uploads are capped a little above the blob limit so the size
// check in the blob store produces the error, not a truncated read
const maxUploadBytes = 8 << 20

// UploadPostHandler handles catch photo uploads
type UploadPostHandler struct {
	service posts.Service
}

func NewUploadPostHandler(service posts.Service) *UploadPostHandler {
	return &UploadPostHandler{service: service}
}

// HandleUploadPost creates a post from a multipart form with an "image" file
// part and an optional "caption" field
// POST /api/posts
func (h *UploadPostHandler) HandleUploadPost(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r)
	if viewerID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Expected multipart form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Failed to read image data")
		return
	}

	post, err := h.service.UploadPost(r.Context(), posts.UploadPostRequest{
		AuthorID:  viewerID,
		Caption:   r.FormValue("caption"),
		ImageData: data,
		MimeType:  header.Header.Get("Content-Type"),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, post)
}
