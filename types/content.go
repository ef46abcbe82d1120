package types

import "time"

// Announcement is a public club announcement.
type Announcement struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	CreatedBy string    `json:"createdBy" db:"created_by"`
}

// Note is a member-authored note. CreatedBy is the single author; only the
// author or an admin may edit it.
type Note struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	CreatedBy string    `json:"createdBy" db:"created_by"`

	// LastModifiedAt is set by updates only; it is nil for notes that were
	// never edited.
	LastModifiedAt *time.Time `json:"lastModifiedAt,omitempty" db:"last_modified_at"`
}

// AdminMessage is a broadcast message posted by an admin. Delivery is
// consume-once: the first client to present it deletes it.
type AdminMessage struct {
	ID        int64     `json:"id" db:"id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	SentBy    string    `json:"sentBy" db:"sent_by"`
}
