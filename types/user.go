package types

import "time"

// User represents a club account.
// The password is an opaque string compared verbatim on login.
type User struct {
	// ID is the unique identifier of the user row.
	ID int `json:"id" db:"id"`

	// Username is the unique login name.
	Username string `json:"username" db:"username"`

	// Password is the stored credential. It is never exposed in API responses.
	Password string `json:"-" db:"password"`

	// IsAdmin marks an elevated account. Elevated accounts cannot be deleted.
	IsAdmin bool `json:"isAdmin" db:"is_admin"`

	// Hidden users can authenticate but are excluded from every listing.
	Hidden bool `json:"-" db:"hidden"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// UserSummary is the listing view of a user.
type UserSummary struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Identity is the authenticated principal of a single request.
// It is derived from the user row on every request and never cached.
type Identity struct {
	Username string
	Admin    bool
}
