package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/models"
	"github.com/tastebite/tastebite-service/internal/pkg/service"
)

type AuthHandler struct {
	auth service.Authorization
}

func NewAuthHandler(auth service.Authorization) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Phone    string      `json:"phone"`
	Role     models.Role `json:"role"`
}

// sign up
func (h *AuthHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	_, err := h.auth.RegisterUser(ctx, models.User{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	token, user, err := h.auth.GenerateToken(ctx, req.Email, req.Password)
	if err != nil {
		renderError(w, r, err)
		return
	}

	setAuthCookie(w, token)
	render.JSON(w, r, map[string]any{"token": token, "user": user})
}

// sign in
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, user, err := h.auth.GenerateToken(r.Context(), req.Email, req.Password)
	if err != nil {
		renderError(w, r, err)
		return
	}

	setAuthCookie(w, token)
	render.JSON(w, r, map[string]any{"token": token, "user": user})
}

func (h *AuthHandler) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	user, err := h.auth.CurrentUser(r.Context(), identity)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, user)
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "Authorization",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}
