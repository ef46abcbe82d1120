package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/robotteam/clubserver/internal/auth"
	"github.com/robotteam/clubserver/internal/services"
)

// UserHandler provides admin account management.
type UserHandler struct {
	userService *services.UserService
}

// UserRouter registers user routes. Every route requires an admin.
func UserRouter(r chi.Router, userService *services.UserService) {
	handler := &UserHandler{userService: userService}

	r.Use(auth.RequireElevated)
	r.Get("/", handler.ListUsers)
	r.Post("/", handler.CreateUser)
	r.Route("/{username}", func(r chi.Router) {
		r.Delete("/", handler.DeleteUser)
		r.Post("/promote", handler.PromoteUser)
		r.Post("/demote", handler.DemoteUser)
	})
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	user, err := h.userService.Create(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "user")
		return
	}
	writeSuccess(w, http.StatusCreated, "user created", user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Delete(r.Context(), chi.URLParam(r, "username")); err != nil {
		writeServiceError(w, r, err, "user")
		return
	}
	writeSuccess(w, http.StatusOK, "user deleted", nil)
}

func (h *UserHandler) PromoteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Promote(r.Context(), actorName(r), chi.URLParam(r, "username")); err != nil {
		writeServiceError(w, r, err, "user")
		return
	}
	writeSuccess(w, http.StatusOK, "user promoted to admin", nil)
}

func (h *UserHandler) DemoteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Demote(r.Context(), actorName(r), chi.URLParam(r, "username")); err != nil {
		writeServiceError(w, r, err, "user")
		return
	}
	writeSuccess(w, http.StatusOK, "user demoted to member", nil)
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
