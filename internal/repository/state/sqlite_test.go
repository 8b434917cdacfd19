package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/home-sentry/home-sentry/internal/domain/security"
)

// openTestDB creates a SQLite repository in a per-test temp directory.
func openTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "home-sentry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, repo.Close()) })

	return repo
}

// TestSQLiteRepository_Defaults verifies a fresh database starts disarmed with no alarm.
func TestSQLiteRepository_Defaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := openTestDB(t)

	alarm, err := repo.AlarmStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.NoAlarm, alarm)

	arming, err := repo.ArmingStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Disarmed, arming)

	sensors, err := repo.Sensors(ctx)
	require.NoError(t, err)
	require.Empty(t, sensors)
}

// TestSQLiteRepository_StatusRoundtrip verifies statuses persist across reopen.
func TestSQLiteRepository_StatusRoundtrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "home-sentry.db")

	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)

	require.NoError(t, repo.SetAlarmStatus(ctx, domain.Alarm))
	require.NoError(t, repo.SetArmingStatus(ctx, domain.ArmedHome))
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteRepository(path)
	require.NoError(t, err)

	defer func() { require.NoError(t, reopened.Close()) }()

	alarm, err := reopened.AlarmStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Alarm, alarm)

	arming, err := reopened.ArmingStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.ArmedHome, arming)
}

// TestSQLiteRepository_Sensors exercises sensor CRUD against a real database file.
func TestSQLiteRepository_Sensors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := openTestDB(t)

	door := domain.NewSensor("front door", domain.Door)
	motion := domain.NewSensor("hallway", domain.Motion)

	require.NoError(t, repo.AddSensor(ctx, door))
	require.NoError(t, repo.AddSensor(ctx, motion))

	motion.Active = true
	require.NoError(t, repo.UpdateSensor(ctx, motion))

	sensors, err := repo.Sensors(ctx)
	require.NoError(t, err)
	require.Len(t, sensors, 2)

	byID := make(map[string]*domain.Sensor, len(sensors))
	for _, sensor := range sensors {
		byID[sensor.ID.String()] = sensor
	}

	require.True(t, byID[motion.ID.String()].Active)
	require.False(t, byID[door.ID.String()].Active)
	require.Equal(t, domain.Motion, byID[motion.ID.String()].Type)

	require.NoError(t, repo.RemoveSensor(ctx, door.ID))
	require.ErrorIs(t, repo.RemoveSensor(ctx, door.ID), ErrSensorNotFound)

	unknown := domain.NewSensor("ghost", domain.Window)
	require.ErrorIs(t, repo.UpdateSensor(ctx, unknown), ErrSensorNotFound)
}
