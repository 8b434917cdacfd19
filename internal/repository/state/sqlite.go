package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	domain "github.com/home-sentry/home-sentry/internal/domain/security"
)

// schemaSQL creates the two tables the repository needs: a single-row table
// for the alarm/arming statuses and one row per sensor.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS system_state (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	alarm_status  TEXT NOT NULL,
	arming_status TEXT NOT NULL
);

INSERT OR IGNORE INTO system_state (id, alarm_status, arming_status)
VALUES (1, 'no_alarm', 'disarmed');

CREATE TABLE IF NOT EXISTS sensors (
	id     TEXT PRIMARY KEY,
	name   TEXT NOT NULL,
	type   TEXT NOT NULL,
	active INTEGER NOT NULL DEFAULT 0
);
`

// SQLiteRepository persists the monitoring state in a SQLite database so it
// survives daemon restarts.
type SQLiteRepository struct {
	// db is the open database handle.
	db *sql.DB
}

// NewSQLiteRepository opens (creating if necessary) the database at the
// provided path and ensures the schema exists.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}

	if err := os.MkdirAll(filepath.Dir(filepath.Clean(path)), 0o750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err = db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err = db.Exec(schemaSQL); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the underlying database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// AlarmStatus returns the current alarm status.
func (r *SQLiteRepository) AlarmStatus(ctx context.Context) (domain.AlarmStatus, error) {
	var name string
	if err := r.db.QueryRowContext(ctx,
		"SELECT alarm_status FROM system_state WHERE id = 1").Scan(&name); err != nil {
		return domain.NoAlarm, fmt.Errorf("read alarm status: %w", err)
	}

	return domain.ParseAlarmStatus(name)
}

// SetAlarmStatus stores the new alarm status.
func (r *SQLiteRepository) SetAlarmStatus(ctx context.Context, status domain.AlarmStatus) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE system_state SET alarm_status = ? WHERE id = 1", status.String()); err != nil {
		return fmt.Errorf("write alarm status: %w", err)
	}

	return nil
}

// ArmingStatus returns the current arming status.
func (r *SQLiteRepository) ArmingStatus(ctx context.Context) (domain.ArmingStatus, error) {
	var name string
	if err := r.db.QueryRowContext(ctx,
		"SELECT arming_status FROM system_state WHERE id = 1").Scan(&name); err != nil {
		return domain.Disarmed, fmt.Errorf("read arming status: %w", err)
	}

	return domain.ParseArmingStatus(name)
}

// SetArmingStatus stores the new arming status.
func (r *SQLiteRepository) SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE system_state SET arming_status = ? WHERE id = 1", status.String()); err != nil {
		return fmt.Errorf("write arming status: %w", err)
	}

	return nil
}

// Sensors returns every known sensor.
func (r *SQLiteRepository) Sensors(ctx context.Context) ([]*domain.Sensor, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, type, active FROM sensors ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("list sensors: %w", err)
	}
	defer rows.Close()

	var sensors []*domain.Sensor

	for rows.Next() {
		sensor, err := scanSensor(rows)
		if err != nil {
			return nil, err
		}

		sensors = append(sensors, sensor)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list sensors: %w", err)
	}

	return sensors, nil
}

// AddSensor registers a new sensor.
func (r *SQLiteRepository) AddSensor(ctx context.Context, sensor *domain.Sensor) error {
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO sensors (id, name, type, active) VALUES (?, ?, ?, ?)",
		sensor.ID.String(), sensor.Name, sensor.Type.String(), sensor.Active); err != nil {
		return fmt.Errorf("add sensor: %w", err)
	}

	return nil
}

// RemoveSensor deletes the sensor with the given identity.
func (r *SQLiteRepository) RemoveSensor(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM sensors WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("remove sensor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove sensor: %w", err)
	}

	if affected == 0 {
		return ErrSensorNotFound
	}

	return nil
}

// UpdateSensor persists the sensor's current field values.
func (r *SQLiteRepository) UpdateSensor(ctx context.Context, sensor *domain.Sensor) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE sensors SET name = ?, type = ?, active = ? WHERE id = ?",
		sensor.Name, sensor.Type.String(), sensor.Active, sensor.ID.String())
	if err != nil {
		return fmt.Errorf("update sensor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update sensor: %w", err)
	}

	if affected == 0 {
		return ErrSensorNotFound
	}

	return nil
}

// scanSensor builds a domain Sensor from the current result row.
func scanSensor(rows *sql.Rows) (*domain.Sensor, error) {
	var (
		id, name, typeName string
		active             bool
	)

	if err := rows.Scan(&id, &name, &typeName, &active); err != nil {
		return nil, fmt.Errorf("scan sensor: %w", err)
	}

	sensorID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse sensor id: %w", err)
	}

	sensorType, err := domain.ParseSensorType(typeName)
	if err != nil {
		return nil, err
	}

	return &domain.Sensor{
		ID:     sensorID,
		Name:   name,
		Type:   sensorType,
		Active: active,
	}, nil
}
