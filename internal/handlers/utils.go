package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robotteam/clubserver/internal/auth"
	"github.com/robotteam/clubserver/internal/services"
	"github.com/robotteam/clubserver/internal/store"
	"github.com/robotteam/clubserver/types"
)

const (
	msgInvalidRequest = "invalid request"
	msgLoginRequired  = "login required"
	msgForbidden      = "you are not allowed to perform this action"
	msgInternal       = "internal server error"
)

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, types.Response{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, types.Response{Success: false, Message: message})
}

// writeServiceError maps a service error onto the response taxonomy. Causes of
// server errors are logged and never returned.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Message)
	case errors.Is(err, auth.ErrAuthenticationRequired):
		writeError(w, http.StatusUnauthorized, msgLoginRequired)
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, http.StatusForbidden, msgForbidden)
	case errors.Is(err, services.ErrAdminUndeletable):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrWrongPassword):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrAlreadyAdmin),
		errors.Is(err, services.ErrNotAdmin):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, resource+" already exists")
	default:
		log.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// currentIdentity returns the identity set by the resolver middleware. Routes
// behind RequireAuthenticated always have one.
func currentIdentity(r *http.Request) *types.Identity {
	return auth.IdentityFromContext(r.Context())
}

func actorName(r *http.Request) string {
	if identity := currentIdentity(r); identity != nil {
		return identity.Username
	}
	return ""
}

// Healthz reports process liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
