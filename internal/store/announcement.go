package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/robotteam/clubserver/types"
)

// AnnouncementRepository handles persistence for announcements.
type AnnouncementRepository struct {
	db *sql.DB
}

func NewAnnouncementRepository(db *sql.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) List(ctx context.Context) ([]types.Announcement, error) {
	const query = `
		SELECT id, title, content, created_at, created_by
		FROM announcements
		ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	announcements := make([]types.Announcement, 0)
	for rows.Next() {
		var a types.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.CreatedBy); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *AnnouncementRepository) Create(ctx context.Context, a types.Announcement) (types.Announcement, error) {
	a.CreatedAt = time.Now()

	const query = `
		INSERT INTO announcements (title, content, created_at, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, a.Title, a.Content, a.CreatedAt, a.CreatedBy).Scan(&a.ID); err != nil {
		return types.Announcement{}, err
	}
	return a, nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM announcements WHERE id = $1`
	return execAffectingOne(ctx, r.db, query, id)
}
