package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/robotteam/clubserver/internal/mq"
	"github.com/robotteam/clubserver/internal/store"
	"github.com/robotteam/clubserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedMediaService(kind types.MediaKind, repo *memMedia, blobs *memBlobs, events *mq.Publisher) *MediaService {
	svc := NewMediaService(kind, repo, blobs, events)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

func TestMediaService_Upload(t *testing.T) {
	repo := &memMedia{}
	blobs := newMemBlobs()
	svc := fixedMediaService(types.MediaVideo, repo, blobs, nil)

	item, err := svc.Upload(context.Background(), "coach", MediaUpload{
		Filename: "Run.MP4",
		Size:     4,
		Body:     strings.NewReader("data"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Untitled video", item.Title)
	assert.Equal(t, "coach", item.UploadedBy)
	assert.True(t, strings.HasPrefix(item.StorageKey, "videos/1700000000000-"), item.StorageKey)
	assert.True(t, strings.HasSuffix(item.StorageKey, ".mp4"), item.StorageKey)
	assert.Equal(t, blobs.PublicURL(item.StorageKey), item.URL)
	assert.Equal(t, []byte("data"), blobs.objects[item.StorageKey])
}

func TestMediaService_UploadRequiresFile(t *testing.T) {
	svc := fixedMediaService(types.MediaPhoto, &memMedia{}, newMemBlobs(), nil)

	var verr *ValidationError
	_, err := svc.Upload(context.Background(), "coach", MediaUpload{Title: "x"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "no photo uploaded", verr.Message)
}

func TestMediaService_UploadRemovesBlobWhenInsertFails(t *testing.T) {
	boom := errors.New("insert failed")
	blobs := newMemBlobs()
	svc := fixedMediaService(types.MediaPhoto, &memMedia{createErr: boom}, blobs, nil)

	_, err := svc.Upload(context.Background(), "coach", MediaUpload{
		Title:    "Team",
		Filename: "team.jpg",
		Body:     strings.NewReader("jpeg"),
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, blobs.objects)
	assert.Len(t, blobs.deleted, 1)
}

func TestMediaService_DeleteIsBestEffort(t *testing.T) {
	ctx := context.Background()
	repo := &memMedia{}
	blobs := newMemBlobs()
	events := &capturedEvents{}
	svc := fixedMediaService(types.MediaPhoto, repo, blobs, events.publisher())

	item, err := svc.Upload(ctx, "coach", MediaUpload{Filename: "a.png", Body: strings.NewReader("png")})
	require.NoError(t, err)

	blobs.deleteErr = errors.New("storage offline")
	require.NoError(t, svc.Delete(ctx, "coach", item.ID))

	_, err = repo.Get(ctx, item.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, []string{mq.EventBlobOrphaned}, events.kinds())

	assert.ErrorIs(t, svc.Delete(ctx, "coach", item.ID), store.ErrNotFound)
}

func TestMediaService_MigrateLocal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.mp4"), []byte("legacy"), 0o644))

	repo := &memMedia{rows: map[int64]types.MediaItem{
		1: {ID: 1, Filename: "old.mp4", StorageKey: "old.mp4"},
		2: {ID: 2, Filename: "gone.mp4", StorageKey: "gone.mp4"},
		3: {ID: 3, Filename: "done.mp4", StorageKey: "videos/done.mp4", URL: "https://x/done.mp4"},
	}, next: 3}
	blobs := newMemBlobs()
	svc := fixedMediaService(types.MediaVideo, repo, blobs, nil)

	migrated, err := svc.MigrateLocal(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, migrated)

	row := repo.rows[1]
	assert.True(t, strings.HasPrefix(row.StorageKey, "videos/"))
	assert.Equal(t, blobs.PublicURL(row.StorageKey), row.URL)
	assert.Equal(t, []byte("legacy"), blobs.objects[row.StorageKey])
	assert.Empty(t, repo.rows[2].URL)
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/png", contentTypeFor("a.PNG", ""))
	assert.Equal(t, "video/quicktime", contentTypeFor("a.mov", "video/quicktime"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("blob", "application/octet-stream"))
}
