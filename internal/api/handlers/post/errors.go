package post

import (
	"Bislei/internal/api/handlers"
	"Bislei/internal/core/blobs"
	"Bislei/internal/core/posts"
	"errors"
	"net/http"
)

// handleServiceError converts service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, posts.ErrPostNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
	case errors.Is(err, posts.ErrNotPostOwner):
		handlers.WriteError(w, http.StatusForbidden, "NotPostOwner", "Only the author can delete a post")
	case errors.Is(err, posts.ErrCaptionTooLong):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Caption exceeds the maximum length")
	case errors.Is(err, posts.ErrEmptyImage):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Image data is required")
	case errors.Is(err, blobs.ErrBlobTooLarge):
		handlers.WriteError(w, http.StatusRequestEntityTooLarge, "ImageTooLarge", "Image exceeds the maximum size")
	case errors.Is(err, blobs.ErrUnsupportedType):
		handlers.WriteError(w, http.StatusUnsupportedMediaType, "UnsupportedImageType", "Image must be JPEG, PNG, or WebP")
	default:
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Something went wrong")
	}
}
