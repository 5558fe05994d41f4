package auth

import (
	"Bislei/internal/api/handlers"
	"Bislei/internal/core/auth"
	"encoding/json"
	"errors"
	"net/http"
)

// Handler serves account registration and login
type Handler struct {
	service auth.Service
}

func New(service auth.Service) *Handler {
	return &Handler{service: service}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates an account and returns a session token
// POST /api/auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	account, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"userId": account.ID,
		"email":  account.Email,
		"token":  token,
	})
}

// HandleLogin exchanges credentials for a session token
// POST /api/auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleServiceError converts service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var invalidEmail *auth.InvalidEmailError
	var weakPassword *auth.WeakPasswordError

	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		handlers.WriteError(w, http.StatusConflict, "EmailTaken", "An account with this email already exists")
	case errors.Is(err, auth.ErrInvalidCredentials):
		handlers.WriteError(w, http.StatusUnauthorized, "InvalidCredentials", "Email or password is incorrect")
	case errors.As(err, &invalidEmail):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidEmail", err.Error())
	case errors.As(err, &weakPassword):
		handlers.WriteError(w, http.StatusBadRequest, "WeakPassword", err.Error())
	default:
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Something went wrong")
	}
}
