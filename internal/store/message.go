package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/robotteam/clubserver/types"
)

// AdminMessageRepository handles persistence for broadcast messages.
type AdminMessageRepository struct {
	db *sql.DB
}

func NewAdminMessageRepository(db *sql.DB) *AdminMessageRepository {
	return &AdminMessageRepository{db: db}
}

// List returns all pending messages, newest first.
func (r *AdminMessageRepository) List(ctx context.Context) ([]types.AdminMessage, error) {
	const query = `
		SELECT id, message, created_at, sent_by
		FROM admin_messages
		ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]types.AdminMessage, 0)
	for rows.Next() {
		var m types.AdminMessage
		if err := rows.Scan(&m.ID, &m.Message, &m.CreatedAt, &m.SentBy); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *AdminMessageRepository) Create(ctx context.Context, m types.AdminMessage) (types.AdminMessage, error) {
	m.CreatedAt = time.Now()

	const query = `
		INSERT INTO admin_messages (message, created_at, sent_by)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, m.Message, m.CreatedAt, m.SentBy).Scan(&m.ID); err != nil {
		return types.AdminMessage{}, err
	}
	return m, nil
}

func (r *AdminMessageRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM admin_messages WHERE id = $1`
	return execAffectingOne(ctx, r.db, query, id)
}
