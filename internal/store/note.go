package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/robotteam/clubserver/types"
)

// NoteRepository handles persistence for notes.
type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) List(ctx context.Context) ([]types.Note, error) {
	const query = `
		SELECT id, title, content, created_at, created_by, last_modified_at
		FROM notes
		ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]types.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NoteRepository) Get(ctx context.Context, id int64) (types.Note, error) {
	const query = `
		SELECT id, title, content, created_at, created_by, last_modified_at
		FROM notes
		WHERE id = $1`
	note, err := scanNote(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Note{}, ErrNotFound
		}
		return types.Note{}, err
	}
	return note, nil
}

// Create inserts a note. LastModifiedAt is always left empty on creation.
func (r *NoteRepository) Create(ctx context.Context, note types.Note) (types.Note, error) {
	note.CreatedAt = time.Now()
	note.LastModifiedAt = nil

	const query = `
		INSERT INTO notes (title, content, created_at, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, note.Title, note.Content, note.CreatedAt, note.CreatedBy).Scan(&note.ID); err != nil {
		return types.Note{}, err
	}
	return note, nil
}

// Update writes title, content and the modification timestamp.
func (r *NoteRepository) Update(ctx context.Context, note types.Note) (types.Note, error) {
	modified := time.Now()
	note.LastModifiedAt = &modified

	const query = `
		UPDATE notes
		SET title = $1,
			content = $2,
			last_modified_at = $3
		WHERE id = $4`
	if err := execAffectingOne(ctx, r.db, query, note.Title, note.Content, modified, note.ID); err != nil {
		return types.Note{}, err
	}
	return note, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM notes WHERE id = $1`
	return execAffectingOne(ctx, r.db, query, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (types.Note, error) {
	var note types.Note
	var modified sql.NullTime
	if err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.CreatedBy,
		&modified,
	); err != nil {
		return types.Note{}, err
	}
	if modified.Valid {
		t := modified.Time
		note.LastModifiedAt = &t
	}
	return note, nil
}
