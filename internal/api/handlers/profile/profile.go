package profile

import (
	"Bislei/internal/api/handlers"
	"Bislei/internal/api/middleware"
	"Bislei/internal/core/profiles"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const maxAvatarBytes = 8 << 20

// Handler serves the viewer's own profile and public profile lookups
type Handler struct {
	service profiles.Service
	cache   *profiles.Cache
}

func New(service profiles.Service, cache *profiles.Cache) *Handler {
	return &Handler{service: service, cache: cache}
}

// HandleGetOwnProfile returns the viewer's profile. A profile that was never
// filled in comes back as an empty default, not an error.
// GET /api/profile
func (h *Handler) HandleGetOwnProfile(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r)
	if viewerID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	profile, err := h.service.Get(r.Context(), viewerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, profile)
}

// HandleGetProfile returns another user's profile through the shared cache
// GET /api/profiles/{userID}
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	profile, err := h.cache.Resolve(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, profile)
}

// HandleUpdateProfile merges the supplied fields into the viewer's profile.
// Multipart form with optional text fields (name, bio, email, phone) and an
// optional "avatar" file part. Absent and blank fields keep their stored
// values.
// PUT /api/profile
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r)
	if viewerID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Expected multipart form data")
		return
	}

	var req profiles.UpdateProfileRequest
	if v, ok := formValue(r, "name"); ok {
		req.Name = &v
	}
	if v, ok := formValue(r, "bio"); ok {
		req.Bio = &v
	}
	if v, ok := formValue(r, "email"); ok {
		req.Email = &v
	}
	if v, ok := formValue(r, "phone"); ok {
		req.Phone = &v
	}

	var imageData []byte
	var imageMime string
	if file, header, err := r.FormFile("avatar"); err == nil {
		defer file.Close()
		imageData, err = io.ReadAll(io.LimitReader(file, maxAvatarBytes))
		if err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Failed to read avatar data")
			return
		}
		imageMime = header.Header.Get("Content-Type")
	}

	if err := h.service.Update(r.Context(), viewerID, req, imageData, imageMime); err != nil {
		handleServiceError(w, err)
		return
	}

	profile, err := h.service.Get(r.Context(), viewerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, profile)
}

// formValue distinguishes "field absent" from "field present but empty"
func formValue(r *http.Request, name string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	values, ok := r.MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// handleServiceError converts service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profiles.ErrProfileNotFound):
		handlers.WriteError(w, http.StatusNotFound, "ProfileNotFound", "Profile not found")
	default:
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Something went wrong")
	}
}
