package state

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domain "github.com/home-sentry/home-sentry/internal/domain/security"
)

// Repository defines persistence operations for the monitoring state:
// the alarm and arming statuses plus the known sensor set.
type Repository interface {
	AlarmStatus(ctx context.Context) (domain.AlarmStatus, error)
	SetAlarmStatus(ctx context.Context, status domain.AlarmStatus) error
	ArmingStatus(ctx context.Context) (domain.ArmingStatus, error)
	SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error
	Sensors(ctx context.Context) ([]*domain.Sensor, error)
	AddSensor(ctx context.Context, sensor *domain.Sensor) error
	RemoveSensor(ctx context.Context, id uuid.UUID) error
	UpdateSensor(ctx context.Context, sensor *domain.Sensor) error
}

// ErrSensorNotFound is returned when the referenced sensor does not exist.
var ErrSensorNotFound = errors.New("sensor not found")
