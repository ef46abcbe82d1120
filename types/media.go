package types

import "time"

// MediaKind distinguishes the two media galleries.
type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaPhoto MediaKind = "photo"
)

// MediaItem is the metadata row of an uploaded video or photo.
// StorageKey ties the row to its blob in object storage.
type MediaItem struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Filename    string    `json:"filename" db:"filename"`
	StorageKey  string    `json:"storageKey" db:"storage_key"`
	URL         string    `json:"url" db:"url"`
	UploadedAt  time.Time `json:"uploadedAt" db:"uploaded_at"`
	UploadedBy  string    `json:"uploadedBy" db:"uploaded_by"`
}
