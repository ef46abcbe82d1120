package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/robotteam/clubserver/types"
)

// TrialTimeRepository handles persistence for recorded trial times.
type TrialTimeRepository struct {
	db *sql.DB
}

func NewTrialTimeRepository(db *sql.DB) *TrialTimeRepository {
	return &TrialTimeRepository{db: db}
}

func (r *TrialTimeRepository) List(ctx context.Context) ([]types.TrialTime, error) {
	const query = `
		SELECT id, robot, time, username, settings, created_at
		FROM times
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanTrialTimes(rows)
}

func (r *TrialTimeRepository) ListByRobot(ctx context.Context, robot string) ([]types.TrialTime, error) {
	const query = `
		SELECT id, robot, time, username, settings, created_at
		FROM times
		WHERE robot = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, robot)
	if err != nil {
		return nil, err
	}
	return scanTrialTimes(rows)
}

func (r *TrialTimeRepository) Create(ctx context.Context, trial types.TrialTime) (types.TrialTime, error) {
	trial.CreatedAt = time.Now()

	settingsJSON, err := json.Marshal(trial.Settings)
	if err != nil {
		return types.TrialTime{}, err
	}

	const query = `
		INSERT INTO times (robot, time, username, settings, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		trial.Robot,
		trial.Time,
		trial.Username,
		settingsJSON,
		trial.CreatedAt,
	).Scan(&trial.ID); err != nil {
		return types.TrialTime{}, err
	}
	return trial, nil
}

func (r *TrialTimeRepository) Delete(ctx context.Context, robot string, id int64) error {
	const query = `DELETE FROM times WHERE id = $1 AND robot = $2`
	return execAffectingOne(ctx, r.db, query, id, robot)
}

func scanTrialTimes(rows *sql.Rows) ([]types.TrialTime, error) {
	defer rows.Close()

	trials := make([]types.TrialTime, 0)
	for rows.Next() {
		var trial types.TrialTime
		var settingsJSON []byte
		if err := rows.Scan(
			&trial.ID,
			&trial.Robot,
			&trial.Time,
			&trial.Username,
			&settingsJSON,
			&trial.CreatedAt,
		); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(settingsJSON, &trial.Settings)
		trials = append(trials, trial)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trials, nil
}
