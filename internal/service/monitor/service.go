package monitor

import (
	"context"
	"fmt"
	stdimage "image"
	"sync"

	"github.com/google/uuid"

	domain "github.com/home-sentry/home-sentry/internal/domain/security"
	"github.com/home-sentry/home-sentry/internal/logger"
	repo "github.com/home-sentry/home-sentry/internal/repository/state"
	"github.com/home-sentry/home-sentry/internal/service/image"
)

// catConfidenceThreshold is the fixed confidence (in percent) the engine
// demands from the classifier before treating a frame as containing a cat.
const catConfidenceThreshold float32 = 50.0

// Service is the decision core of the monitor. It owns no state of its own:
// alarm status, arming status and sensors live in the repository, frames are
// judged by the classifier, and registered listeners hear about every change.
//
// A single mutex serializes operations so that each one observes and mutates
// the repository atomically with respect to the others.
type Service struct {
	// repo persists alarm status, arming status and the sensor set.
	repo repo.Repository
	// classifier judges camera frames for cats.
	classifier image.Classifier
	// listeners is the set of registered notification sinks.
	listeners map[StatusListener]struct{}
	// mu serializes engine operations.
	mu sync.Mutex
}

// NewService creates the engine on top of the provided collaborators.
func NewService(repository repo.Repository, classifier image.Classifier) *Service {
	return &Service{
		repo:       repository,
		classifier: classifier,
		listeners:  make(map[StatusListener]struct{}),
	}
}

// SetArmingStatus switches the system's monitoring mode.
//
// Disarming forces the alarm status back to NoAlarm. Arming (home or away)
// silently resets every sensor to inactive: the reset bypasses the
// activation/deactivation rules so the alarm status cannot oscillate while
// the sensor set is cleared. Either way all listeners hear a sensor-status
// change, and the arming status itself is persisted last so a mid-call
// observer never sees the new mode paired with stale alarm or sensor state.
func (s *Service) SetArmingStatus(ctx context.Context, armingStatus domain.ArmingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if armingStatus == domain.Disarmed {
		if err := s.setAlarmStatus(ctx, domain.NoAlarm); err != nil {
			return err
		}
	} else {
		if err := s.resetSensors(ctx); err != nil {
			return err
		}
	}

	s.notify(func(l StatusListener) { l.OnSensorStatusChanged() })

	if err := s.repo.SetArmingStatus(ctx, armingStatus); err != nil {
		return fmt.Errorf("persist arming status: %w", err)
	}

	logger.InfoKV(ctx, "Arming status changed", "arming_status", armingStatus)

	return nil
}

// SetAlarmStatus unconditionally sets the alarm status, persisting it and then
// notifying every listener. Higher-level rules funnel through this setter.
func (s *Service) SetAlarmStatus(ctx context.Context, alarmStatus domain.AlarmStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setAlarmStatus(ctx, alarmStatus)
}

// setAlarmStatus is the unlocked form of SetAlarmStatus. Persist comes before
// notify: a failed write reaches no listener.
func (s *Service) setAlarmStatus(ctx context.Context, alarmStatus domain.AlarmStatus) error {
	if err := s.repo.SetAlarmStatus(ctx, alarmStatus); err != nil {
		return fmt.Errorf("persist alarm status: %w", err)
	}

	logger.InfoKV(ctx, "Alarm status changed", "alarm_status", alarmStatus)

	s.notify(func(l StatusListener) { l.OnAlarmStatusChanged(alarmStatus) })

	return nil
}

// resetSensors marks every known sensor inactive and persists it, without
// running the deactivation rules. Used when the system is armed.
func (s *Service) resetSensors(ctx context.Context) error {
	sensors, err := s.repo.Sensors(ctx)
	if err != nil {
		return fmt.Errorf("list sensors: %w", err)
	}

	for _, sensor := range sensors {
		sensor.Active = false
		if err = s.repo.UpdateSensor(ctx, sensor); err != nil {
			return fmt.Errorf("reset sensor %s: %w", sensor.ID, err)
		}
	}

	return nil
}

// SetSensorActive records a sensor's new active flag and applies the
// escalation rules.
//
// An established full alarm is sticky: sensor changes are persisted but do
// not move the alarm status. Otherwise an activation escalates one step
// (unless the system is disarmed) and a deactivation of a previously active
// sensor de-escalates one step. The decision always reads the sensor's state
// prior to this change; the flag is mutated and persisted only afterward.
func (s *Service) SetSensorActive(ctx context.Context, sensor *domain.Sensor, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alarmStatus, err := s.repo.AlarmStatus(ctx)
	if err != nil {
		return fmt.Errorf("read alarm status: %w", err)
	}

	if alarmStatus != domain.Alarm {
		switch {
		case active:
			err = s.handleSensorActivated(ctx)
		case sensor.Active:
			err = s.handleSensorDeactivated(ctx)
		}

		if err != nil {
			return err
		}
	}

	sensor.Active = active
	if err = s.repo.UpdateSensor(ctx, sensor); err != nil {
		return fmt.Errorf("persist sensor: %w", err)
	}

	return nil
}

// ReevaluateSensor re-applies the alarm rules for a sensor whose active flag
// was already changed externally.
//
// Two situations step the alarm down: a pending alarm whose sensor is now
// inactive, and a full alarm on a system that has since been disarmed. The
// latter deliberately steps to PendingAlarm rather than clearing outright;
// callers wanting a clean slate disarm through SetArmingStatus instead.
func (s *Service) ReevaluateSensor(ctx context.Context, sensor *domain.Sensor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alarmStatus, err := s.repo.AlarmStatus(ctx)
	if err != nil {
		return fmt.Errorf("read alarm status: %w", err)
	}

	armingStatus, err := s.repo.ArmingStatus(ctx)
	if err != nil {
		return fmt.Errorf("read arming status: %w", err)
	}

	switch {
	case alarmStatus == domain.PendingAlarm && !sensor.Active:
		err = s.handleSensorDeactivated(ctx)
	case alarmStatus == domain.Alarm && armingStatus == domain.Disarmed:
		err = s.handleSensorDeactivated(ctx)
	}

	if err != nil {
		return err
	}

	if err = s.repo.UpdateSensor(ctx, sensor); err != nil {
		return fmt.Errorf("persist sensor: %w", err)
	}

	return nil
}

// handleSensorActivated escalates the alarm one step on sensor activation.
// A disarmed system ignores its sensors.
func (s *Service) handleSensorActivated(ctx context.Context) error {
	armingStatus, err := s.repo.ArmingStatus(ctx)
	if err != nil {
		return fmt.Errorf("read arming status: %w", err)
	}

	if armingStatus == domain.Disarmed {
		return nil
	}

	alarmStatus, err := s.repo.AlarmStatus(ctx)
	if err != nil {
		return fmt.Errorf("read alarm status: %w", err)
	}

	switch alarmStatus {
	case domain.NoAlarm:
		return s.setAlarmStatus(ctx, domain.PendingAlarm)
	case domain.PendingAlarm:
		return s.setAlarmStatus(ctx, domain.Alarm)
	default:
		return nil
	}
}

// handleSensorDeactivated de-escalates the alarm one step on sensor deactivation.
func (s *Service) handleSensorDeactivated(ctx context.Context) error {
	alarmStatus, err := s.repo.AlarmStatus(ctx)
	if err != nil {
		return fmt.Errorf("read alarm status: %w", err)
	}

	switch alarmStatus {
	case domain.PendingAlarm:
		return s.setAlarmStatus(ctx, domain.NoAlarm)
	case domain.Alarm:
		return s.setAlarmStatus(ctx, domain.PendingAlarm)
	default:
		return nil
	}
}

// ProcessImage judges one camera frame and applies the cat rule: a cat seen
// while armed-home forces a full alarm; a cat-free frame clears the alarm if
// every sensor is quiet too. Listeners hear the verdict either way.
func (s *Service) ProcessImage(ctx context.Context, frame stdimage.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	detected, err := s.classifier.ContainsCat(ctx, frame, catConfidenceThreshold)
	if err != nil {
		return fmt.Errorf("classify frame: %w", err)
	}

	logger.DebugKV(ctx, "Frame classified", "cat_detected", detected)

	armingStatus, err := s.repo.ArmingStatus(ctx)
	if err != nil {
		return fmt.Errorf("read arming status: %w", err)
	}

	switch {
	case detected && armingStatus == domain.ArmedHome:
		err = s.setAlarmStatus(ctx, domain.Alarm)
	case !detected:
		var quiet bool

		quiet, err = s.allSensorsInactive(ctx)
		if err == nil && quiet {
			err = s.setAlarmStatus(ctx, domain.NoAlarm)
		}
	}

	if err != nil {
		return err
	}

	s.notify(func(l StatusListener) { l.OnCatDetected(detected) })

	return nil
}

// allSensorsInactive reports whether no known sensor is currently tripped.
func (s *Service) allSensorsInactive(ctx context.Context) (bool, error) {
	sensors, err := s.repo.Sensors(ctx)
	if err != nil {
		return false, fmt.Errorf("list sensors: %w", err)
	}

	for _, sensor := range sensors {
		if sensor.Active {
			return false, nil
		}
	}

	return true, nil
}

// AlarmStatus returns the current alarm status.
func (s *Service) AlarmStatus(ctx context.Context) (domain.AlarmStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.AlarmStatus(ctx)
}

// ArmingStatus returns the current arming status.
func (s *Service) ArmingStatus(ctx context.Context) (domain.ArmingStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.ArmingStatus(ctx)
}

// Sensors returns the full sensor set.
func (s *Service) Sensors(ctx context.Context) ([]*domain.Sensor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Sensors(ctx)
}

// AddSensor registers a new sensor with the repository.
func (s *Service) AddSensor(ctx context.Context, sensor *domain.Sensor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.AddSensor(ctx, sensor)
}

// RemoveSensor removes a sensor from the repository.
func (s *Service) RemoveSensor(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.RemoveSensor(ctx, id)
}
