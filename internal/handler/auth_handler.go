package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"blogapi/internal/auth"
)

const msgCredentialsRequired = "email and password are required"

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	input, err := decodeObject(w, r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Register(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, user, http.StatusCreated)
}

// Login answers every credential failure with the same 401 body.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			WriteError(w, msgCredentialsRequired, http.StatusBadRequest)
			return
		}
		WriteError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, msgCredentialsRequired, http.StatusBadRequest)
		return
	}

	pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, pair, http.StatusOK)
}

// Logout only acknowledges. Tokens stay valid until they expire; the client discards them.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		if id, err := claims.UserID(); err == nil {
			h.Log.WithField("user_id", id).Info("user logged out")
		}
	}
	writeSuccess(w, MessageResponse{Message: "logged out"}, http.StatusOK)
}

func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		WriteError(w, msgUnauthorized, http.StatusUnauthorized)
		return
	}

	access, err := h.AuthService.Refresh(r.Context(), token)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, RefreshResponse{AccessToken: access}, http.StatusOK)
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
