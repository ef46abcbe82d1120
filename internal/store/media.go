package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robotteam/clubserver/types"
)

// MediaRepository handles persistence for one media gallery table.
type MediaRepository struct {
	db    *sql.DB
	table string
}

// NewMediaRepository returns the repository backing the gallery of the given kind.
func NewMediaRepository(db *sql.DB, kind types.MediaKind) *MediaRepository {
	return &MediaRepository{db: db, table: mediaTable(kind)}
}

func mediaTable(kind types.MediaKind) string {
	switch kind {
	case types.MediaVideo:
		return "videos"
	case types.MediaPhoto:
		return "photos"
	default:
		panic(fmt.Sprintf("store: unknown media kind %q", kind))
	}
}

const mediaColumns = `id, title, description, filename, storage_key, url, uploaded_at, uploaded_by`

func (r *MediaRepository) List(ctx context.Context) ([]types.MediaItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY id DESC`, mediaColumns, r.table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanMediaItems(rows)
}

// ListMissingURL returns rows that reference a storage key but have no public URL yet.
func (r *MediaRepository) ListMissingURL(ctx context.Context, limit int) ([]types.MediaItem, error) {
	if limit < 1 {
		limit = 1000
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE url = '' AND storage_key <> ''
		ORDER BY id
		LIMIT $1`, mediaColumns, r.table)
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return scanMediaItems(rows)
}

func (r *MediaRepository) Get(ctx context.Context, id int64) (types.MediaItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1`, mediaColumns, r.table)
	var item types.MediaItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.Filename,
		&item.StorageKey,
		&item.URL,
		&item.UploadedAt,
		&item.UploadedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.MediaItem{}, ErrNotFound
		}
		return types.MediaItem{}, err
	}
	return item, nil
}

func (r *MediaRepository) Create(ctx context.Context, item types.MediaItem) (types.MediaItem, error) {
	item.UploadedAt = time.Now()

	query := fmt.Sprintf(`
		INSERT INTO %s (title, description, filename, storage_key, url, uploaded_at, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`, r.table)
	if err := r.db.QueryRowContext(
		ctx,
		query,
		item.Title,
		item.Description,
		item.Filename,
		item.StorageKey,
		item.URL,
		item.UploadedAt,
		item.UploadedBy,
	).Scan(&item.ID); err != nil {
		return types.MediaItem{}, err
	}
	return item, nil
}

// UpdateLocation rewrites the storage key and public URL of a row.
func (r *MediaRepository) UpdateLocation(ctx context.Context, id int64, storageKey, url string) error {
	query := fmt.Sprintf(`UPDATE %s SET storage_key = $1, url = $2 WHERE id = $3`, r.table)
	return execAffectingOne(ctx, r.db, query, storageKey, url, id)
}

func (r *MediaRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	return execAffectingOne(ctx, r.db, query, id)
}

func scanMediaItems(rows *sql.Rows) ([]types.MediaItem, error) {
	defer rows.Close()

	items := make([]types.MediaItem, 0)
	for rows.Next() {
		var item types.MediaItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Description,
			&item.Filename,
			&item.StorageKey,
			&item.URL,
			&item.UploadedAt,
			&item.UploadedBy,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
