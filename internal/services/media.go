package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/robotteam/clubserver/internal/mq"
	"github.com/robotteam/clubserver/types"
)

type MediaRepository interface {
	List(ctx context.Context) ([]types.MediaItem, error)
	ListMissingURL(ctx context.Context, limit int) ([]types.MediaItem, error)
	Get(ctx context.Context, id int64) (types.MediaItem, error)
	Create(ctx context.Context, item types.MediaItem) (types.MediaItem, error)
	UpdateLocation(ctx context.Context, id int64, storageKey, url string) error
	Delete(ctx context.Context, id int64) error
}

// BlobStore is the subset of object storage used by media galleries.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// MediaUpload describes one uploaded file and its metadata.
type MediaUpload struct {
	Title       string
	Description string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaService manages one gallery: metadata rows plus their blobs.
type MediaService struct {
	kind   types.MediaKind
	repo   MediaRepository
	blobs  BlobStore
	events *mq.Publisher
	now    func() time.Time
}

func NewMediaService(kind types.MediaKind, repo MediaRepository, blobs BlobStore, events *mq.Publisher) *MediaService {
	return &MediaService{kind: kind, repo: repo, blobs: blobs, events: events, now: time.Now}
}

func (s *MediaService) Kind() types.MediaKind {
	return s.kind
}

func (s *MediaService) List(ctx context.Context) ([]types.MediaItem, error) {
	return s.repo.List(ctx)
}

// Upload stores the blob first, then inserts the row pointing at it. A blob
// whose row cannot be written is removed again.
func (s *MediaService) Upload(ctx context.Context, uploader string, in MediaUpload) (types.MediaItem, error) {
	if in.Body == nil || strings.TrimSpace(in.Filename) == "" {
		return types.MediaItem{}, invalid(fmt.Sprintf("no %s uploaded", s.kind))
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = "Untitled " + string(s.kind)
	}

	key := s.objectKey(in.Filename)
	if err := s.blobs.Put(ctx, key, in.Body, in.Size, contentTypeFor(in.Filename, in.ContentType)); err != nil {
		return types.MediaItem{}, fmt.Errorf("store %s blob: %w", s.kind, err)
	}

	item, err := s.repo.Create(ctx, types.MediaItem{
		Title:       title,
		Description: in.Description,
		Filename:    filepath.Base(in.Filename),
		StorageKey:  key,
		URL:         s.blobs.PublicURL(key),
		UploadedBy:  uploader,
	})
	if err != nil {
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			log.Warn("failed to remove blob after insert error", "key", key, "error", delErr)
		}
		return types.MediaItem{}, fmt.Errorf("insert %s: %w", s.kind, err)
	}
	return item, nil
}

// Delete removes the row unconditionally once it is known to exist. Blob
// removal is best effort; a leftover blob is logged and announced.
func (s *MediaService) Delete(ctx context.Context, actor string, id int64) error {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if item.StorageKey != "" {
		if err := s.blobs.Delete(ctx, item.StorageKey); err != nil {
			log.Warn("failed to delete blob, removing row anyway", "kind", s.kind, "id", id, "key", item.StorageKey, "error", err)
			s.events.Emit(ctx, mq.Event{
				Type:    mq.EventBlobOrphaned,
				Actor:   actor,
				Subject: item.StorageKey,
				Detail:  map[string]string{"kind": string(s.kind), "id": fmt.Sprint(id)},
			})
		}
	}
	return s.repo.Delete(ctx, id)
}

// MigrateLocal uploads files from dir for rows that still reference a local
// file name but have no public URL. It returns the number of migrated rows.
// Rows whose file is missing are skipped and logged.
func (s *MediaService) MigrateLocal(ctx context.Context, dir string) (int, error) {
	items, err := s.repo.ListMissingURL(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("list %s rows: %w", s.kind, err)
	}

	migrated := 0
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return migrated, err
		}

		local := filepath.Join(dir, filepath.Base(item.StorageKey))
		if err := s.migrateOne(ctx, item, local); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Warn("local upload missing, skipping", "kind", s.kind, "id", item.ID, "path", local)
				continue
			}
			return migrated, err
		}
		migrated++
	}
	return migrated, nil
}

func (s *MediaService) migrateOne(ctx context.Context, item types.MediaItem, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	key := s.objectKey(item.Filename)
	if err := s.blobs.Put(ctx, key, f, info.Size(), contentTypeFor(path, "")); err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}
	if err := s.repo.UpdateLocation(ctx, item.ID, key, s.blobs.PublicURL(key)); err != nil {
		return fmt.Errorf("update %s %d: %w", s.kind, item.ID, err)
	}
	log.Info("migrated upload", "kind", s.kind, "id", item.ID, "key", key)
	return nil
}

func (s *MediaService) objectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%ss/%d-%s%s", s.kind, s.now().UnixMilli(), uuid.NewString(), ext)
}

func contentTypeFor(filename, declared string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
