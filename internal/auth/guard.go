package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/robotteam/clubserver/types"
)

var (
	// ErrAuthenticationRequired signals a request without a valid identity.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrForbidden signals a valid identity lacking the role or ownership.
	ErrForbidden = errors.New("forbidden")
)

const (
	msgAuthenticationRequired = "login required"
	msgForbidden              = "you are not allowed to perform this action"
)

// RequireAuthenticated rejects anonymous requests with 401.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromContext(r.Context()) == nil {
			writeDenied(w, http.StatusUnauthorized, msgAuthenticationRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireElevated rejects anonymous and non-admin requests with 403.
func RequireElevated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		if identity == nil || !identity.Admin {
			writeDenied(w, http.StatusForbidden, msgForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOwnerOrElevated allows the resource author and admins. It needs the
// row's author, so callers evaluate it after fetching the row.
func RequireOwnerOrElevated(identity *types.Identity, author string) error {
	if identity == nil {
		return ErrAuthenticationRequired
	}
	if identity.Admin || identity.Username == author {
		return nil
	}
	return ErrForbidden
}

func writeDenied(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.Response{Success: false, Message: message})
}
