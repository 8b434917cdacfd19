package state

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domain "github.com/home-sentry/home-sentry/internal/domain/security"
)

// MemoryRepository keeps the monitoring state in memory. It is the default
// backend when no database file is configured and the workhorse of the tests.
type MemoryRepository struct {
	// alarmStatus is the current threat assessment.
	alarmStatus domain.AlarmStatus
	// armingStatus is the current monitoring mode.
	armingStatus domain.ArmingStatus
	// sensors holds the known sensors keyed by identity.
	sensors map[uuid.UUID]*domain.Sensor
	// mu protects concurrent access to the state.
	mu sync.RWMutex
}

// NewMemoryRepository creates an empty in-memory repository with the system
// disarmed and no alarm.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sensors: make(map[uuid.UUID]*domain.Sensor),
	}
}

// AlarmStatus returns the current alarm status.
func (r *MemoryRepository) AlarmStatus(_ context.Context) (domain.AlarmStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.alarmStatus, nil
}

// SetAlarmStatus stores the new alarm status.
func (r *MemoryRepository) SetAlarmStatus(_ context.Context, status domain.AlarmStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.alarmStatus = status

	return nil
}

// ArmingStatus returns the current arming status.
func (r *MemoryRepository) ArmingStatus(_ context.Context) (domain.ArmingStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.armingStatus, nil
}

// SetArmingStatus stores the new arming status.
func (r *MemoryRepository) SetArmingStatus(_ context.Context, status domain.ArmingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.armingStatus = status

	return nil
}

// Sensors returns clones of every known sensor.
func (r *MemoryRepository) Sensors(_ context.Context) ([]*domain.Sensor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sensors := make([]*domain.Sensor, 0, len(r.sensors))
	for _, sensor := range r.sensors {
		sensors = append(sensors, sensor.Clone())
	}

	return sensors, nil
}

// AddSensor registers a new sensor.
func (r *MemoryRepository) AddSensor(_ context.Context, sensor *domain.Sensor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sensors[sensor.ID] = sensor.Clone()

	return nil
}

// RemoveSensor forgets the sensor with the given identity.
func (r *MemoryRepository) RemoveSensor(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sensors[id]; !ok {
		return ErrSensorNotFound
	}

	delete(r.sensors, id)

	return nil
}

// UpdateSensor persists the sensor's current field values.
func (r *MemoryRepository) UpdateSensor(_ context.Context, sensor *domain.Sensor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sensors[sensor.ID]; !ok {
		return ErrSensorNotFound
	}

	r.sensors[sensor.ID] = sensor.Clone()

	return nil
}
