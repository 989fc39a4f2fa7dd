package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"carmarket/internal/models"
	"carmarket/internal/repositories"
	"carmarket/internal/services"
)

type UserHandler struct {
	Service *services.UserService
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.SignUp(r.Context(), req)
	switch {
	case errors.Is(err, services.ErrInvalidSignUp):
		writeError(w, http.StatusBadRequest, "A valid email and a password of at least 8 characters are required")
	case errors.Is(err, repositories.ErrEmailTaken):
		writeError(w, http.StatusConflict, "Email already registered")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to sign up")
	default:
		writeJSON(w, http.StatusCreated, resp)
	}
}

func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.SignIn(r.Context(), req)
	if errors.Is(err, services.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.SignOut(r.Context(), viewerID(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to sign out")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.GetUser(r.Context(), viewerID(r))
	if errors.Is(err, repositories.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
