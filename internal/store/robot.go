package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/robotteam/clubserver/types"
)

// RobotSettingsRepository handles persistence for per-robot tuning parameters.
type RobotSettingsRepository struct {
	db *sql.DB
}

func NewRobotSettingsRepository(db *sql.DB) *RobotSettingsRepository {
	return &RobotSettingsRepository{db: db}
}

func (r *RobotSettingsRepository) Get(ctx context.Context, robot string) (types.RobotSettings, error) {
	const query = `
		SELECT robot, speed, kp, kd, updated_at
		FROM robot_settings
		WHERE robot = $1`
	var settings types.RobotSettings
	err := r.db.QueryRowContext(ctx, query, robot).Scan(
		&settings.Robot,
		&settings.Speed,
		&settings.Kp,
		&settings.Kd,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.RobotSettings{}, ErrNotFound
		}
		return types.RobotSettings{}, err
	}
	return settings, nil
}

// Upsert inserts the row or overwrites it when the robot already has one.
func (r *RobotSettingsRepository) Upsert(ctx context.Context, settings types.RobotSettings) (types.RobotSettings, error) {
	settings.UpdatedAt = time.Now()

	const query = `
		INSERT INTO robot_settings (robot, speed, kp, kd, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (robot) DO UPDATE
		SET speed = EXCLUDED.speed,
			kp = EXCLUDED.kp,
			kd = EXCLUDED.kd,
			updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		settings.Robot,
		settings.Speed,
		settings.Kp,
		settings.Kd,
		settings.UpdatedAt,
	); err != nil {
		return types.RobotSettings{}, err
	}
	return settings, nil
}
