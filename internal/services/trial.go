package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/robotteam/clubserver/internal/store"
	"github.com/robotteam/clubserver/types"
)

type TrialTimeRepository interface {
	List(ctx context.Context) ([]types.TrialTime, error)
	ListByRobot(ctx context.Context, robot string) ([]types.TrialTime, error)
	Create(ctx context.Context, trial types.TrialTime) (types.TrialTime, error)
	Delete(ctx context.Context, robot string, id int64) error
}

type RobotSettingsRepository interface {
	Get(ctx context.Context, robot string) (types.RobotSettings, error)
	Upsert(ctx context.Context, settings types.RobotSettings) (types.RobotSettings, error)
}

// TrialTimeService records robot runs together with the settings in force.
type TrialTimeService struct {
	repo     TrialTimeRepository
	settings RobotSettingsRepository
}

func NewTrialTimeService(repo TrialTimeRepository, settings RobotSettingsRepository) *TrialTimeService {
	return &TrialTimeService{repo: repo, settings: settings}
}

func (s *TrialTimeService) List(ctx context.Context) ([]types.TrialTime, error) {
	return s.repo.List(ctx)
}

func (s *TrialTimeService) ListByRobot(ctx context.Context, robot string) ([]types.TrialTime, error) {
	return s.repo.ListByRobot(ctx, robot)
}

// Create stores a run for the given member. The robot's current settings are
// copied into the record; a robot without settings gets an empty snapshot.
func (s *TrialTimeService) Create(ctx context.Context, username, robot, time string) (types.TrialTime, error) {
	if blank(robot, time) {
		return types.TrialTime{}, invalid("robot and time are required")
	}

	var snapshot types.SettingsSnapshot
	current, err := s.settings.Get(ctx, robot)
	switch {
	case err == nil:
		snapshot = current.Snapshot()
	case errors.Is(err, store.ErrNotFound):
	default:
		return types.TrialTime{}, fmt.Errorf("load robot settings: %w", err)
	}

	return s.repo.Create(ctx, types.TrialTime{
		Robot:    robot,
		Time:     time,
		Username: username,
		Settings: snapshot,
	})
}

func (s *TrialTimeService) Delete(ctx context.Context, robot string, id int64) error {
	return s.repo.Delete(ctx, robot, id)
}

// RobotSettingsService reads and writes per-robot tuning parameters.
type RobotSettingsService struct {
	repo RobotSettingsRepository
}

func NewRobotSettingsService(repo RobotSettingsRepository) *RobotSettingsService {
	return &RobotSettingsService{repo: repo}
}

// Get returns the settings of robot, or empty values when none were saved.
func (s *RobotSettingsService) Get(ctx context.Context, robot string) (types.RobotSettings, error) {
	settings, err := s.repo.Get(ctx, robot)
	if errors.Is(err, store.ErrNotFound) {
		return types.RobotSettings{}, nil
	}
	return settings, err
}

func (s *RobotSettingsService) Save(ctx context.Context, settings types.RobotSettings) (types.RobotSettings, error) {
	if blank(settings.Robot) {
		return types.RobotSettings{}, invalid("robot is required")
	}
	return s.repo.Upsert(ctx, settings)
}
