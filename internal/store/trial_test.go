package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/robotteam/clubserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrialTimeRepository_Create_StoresSnapshotJSON(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTrialTimeRepository(db)

	mock.ExpectQuery(`INSERT INTO times`).
		WithArgs("r1", "12.34", "alice", []byte(`{"speed":"5","kp":"1","kd":"0"}`), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	trial, err := repo.Create(context.Background(), types.TrialTime{
		Robot:    "r1",
		Time:     "12.34",
		Username: "alice",
		Settings: types.SettingsSnapshot{Speed: "5", Kp: "1", Kd: "0"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), trial.ID)
}

func TestTrialTimeRepository_ListByRobot_DecodesSnapshot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTrialTimeRepository(db)

	mock.ExpectQuery(`FROM times\s+WHERE robot = \$1\s+ORDER BY id`).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "robot", "time", "username", "settings", "created_at"}).
			AddRow(int64(1), "r1", "9.9", "bob", []byte(`{"speed":"7","kp":"2","kd":"1"}`), time.Now()))

	trials, err := repo.ListByRobot(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, trials, 1)
	assert.Equal(t, types.SettingsSnapshot{Speed: "7", Kp: "2", Kd: "1"}, trials[0].Settings)
}

func TestTrialTimeRepository_Delete_MatchesRobotAndID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTrialTimeRepository(db)

	mock.ExpectExec(`DELETE FROM times WHERE id = \$1 AND robot = \$2`).
		WithArgs(int64(4), "r2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "r2", 4)
	assert.ErrorIs(t, err, ErrNotFound)
}
