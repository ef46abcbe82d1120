package handlers

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/robotteam/clubserver/internal/auth"
	"github.com/robotteam/clubserver/internal/services"
)

// AuthHandler provides cookie-session endpoints.
type AuthHandler struct {
	userService *services.UserService
	codec       *auth.TokenCodec
	cookie      auth.CookieConfig
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, codec *auth.TokenCodec, cookie auth.CookieConfig) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		codec:       codec,
		cookie:      cookie,
	}
}

// AuthRouter registers session routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, codec *auth.TokenCodec, cookie auth.CookieConfig) {
	handler := NewAuthHandler(userService, codec, cookie)

	r.Post("/login", handler.Login)
	r.Get("/session", handler.Session)
	r.Post("/logout", handler.Logout)
	r.With(auth.RequireAuthenticated).Post("/change-password", handler.ChangePassword)
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	// The password may be empty but must be present.
	if strings.TrimSpace(req.Username) == "" || req.Password == nil {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, *req.Password)
	if err != nil {
		writeServiceError(w, r, err, "user")
		return
	}

	token, expiresAt, err := h.codec.Issue(user.Username)
	if err != nil {
		log.Error("failed to issue session token", "username", user.Username, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	auth.SetSessionCookie(w, h.cookie, token, expiresAt)
	writeJSON(w, http.StatusOK, LoginResponse{Success: true, IsAdmin: user.IsAdmin, Username: user.Username})
}

// Session reports the identity resolved for this request.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	identity := currentIdentity(r)
	if identity == nil {
		writeJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{
		Authenticated: true,
		Username:      identity.Username,
		IsAdmin:       identity.Admin,
	})
}

// Logout clears the session cookie whether or not a session exists.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.cookie)
	writeSuccess(w, http.StatusOK, "logged out", nil)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	err := h.userService.ChangePassword(r.Context(), actorName(r), req.OldPassword, req.NewPassword)
	if err != nil {
		writeServiceError(w, r, err, "user")
		return
	}
	writeSuccess(w, http.StatusOK, "password changed", nil)
}

type LoginRequest struct {
	Username string  `json:"username"`
	Password *string `json:"password"`
}

type LoginResponse struct {
	Success  bool   `json:"success"`
	IsAdmin  bool   `json:"isAdmin"`
	Username string `json:"username"`
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
	IsAdmin       bool   `json:"isAdmin"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
