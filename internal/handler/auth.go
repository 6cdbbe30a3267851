package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/DenisMurerwa/EBU/internal/model"
	"github.com/DenisMurerwa/EBU/internal/service"
)

// AuthHandler handles registration, login and session endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	NationalID  string `json:"national_id"`
	Password    string `json:"password"`
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

type sessionResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Name, req.PhoneNumber, req.NationalID, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", user.ID.String()).
		Bool("is_admin", user.IsAdmin).
		Msg("User registered")

	writeData(w, http.StatusCreated, user)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, session, err := h.authService.Login(r.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := TokenFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	writeData(w, http.StatusOK, user)
}

// ListUsers handles GET /users (admin only, enforced by middleware).
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, 100)

	users, err := h.authService.ListUsers(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if users == nil {
		users = []*model.User{}
	}
	writeData(w, http.StatusOK, users)
}
