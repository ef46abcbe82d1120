package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/robotteam/clubserver/internal/store"
	"github.com/robotteam/clubserver/types"
)

type contextKey string

const contextIdentityKey contextKey = "identity"

// UserLookup reads the authoritative user row for a username.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (types.User, error)
}

// Resolver turns a request's session cookie into an Identity.
type Resolver struct {
	codec  *TokenCodec
	cookie CookieConfig
	users  UserLookup
}

func NewResolver(codec *TokenCodec, cookie CookieConfig, users UserLookup) *Resolver {
	return &Resolver{codec: codec, cookie: cookie, users: users}
}

// Resolve returns the identity behind the request's session cookie, or nil.
// It never fails: a missing cookie, an invalid or expired token, an unknown
// user and a lookup error all resolve to nil.
func (res *Resolver) Resolve(r *http.Request) *types.Identity {
	token := sessionToken(r, res.cookie)
	if token == "" {
		return nil
	}

	claims, ok := res.codec.Verify(token)
	if !ok {
		return nil
	}

	user, err := res.users.GetByUsername(r.Context(), claims.Username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Debug("identity lookup failed", "username", claims.Username, "error", err)
		}
		return nil
	}

	return &types.Identity{Username: user.Username, Admin: user.IsAdmin}
}

// Middleware attaches the resolved identity (possibly nil) to the request
// context. It runs before every route and never rejects.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := res.Resolve(r)
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// WithIdentity returns ctx carrying identity.
func WithIdentity(ctx context.Context, identity *types.Identity) context.Context {
	return context.WithValue(ctx, contextIdentityKey, identity)
}

// IdentityFromContext returns the request identity, or nil for anonymous requests.
func IdentityFromContext(ctx context.Context) *types.Identity {
	identity, _ := ctx.Value(contextIdentityKey).(*types.Identity)
	return identity
}
