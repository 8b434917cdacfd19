package monitor

import (
	domain "github.com/home-sentry/home-sentry/internal/domain/security"
)

// StatusListener receives notifications about monitoring state changes.
// Implementations must not call back into the Service from their hooks:
// notifications are delivered while the engine's operation is still running.
type StatusListener interface {
	// OnAlarmStatusChanged is called with the new alarm status whenever it changes.
	OnAlarmStatusChanged(status domain.AlarmStatus)
	// OnSensorStatusChanged signals that one or more sensors changed; the
	// receiver is expected to re-read the sensor set.
	OnSensorStatusChanged()
	// OnCatDetected reports the classifier verdict for every processed frame.
	OnCatDetected(detected bool)
}

// AddStatusListener registers a listener. Re-adding a present listener is a no-op.
func (s *Service) AddStatusListener(listener StatusListener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners[listener] = struct{}{}
}

// RemoveStatusListener unregisters a listener. Removing an absent listener is a no-op.
func (s *Service) RemoveStatusListener(listener StatusListener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.listeners, listener)
}

// notify delivers an event to a snapshot of the registered listeners.
// Broadcast order is unspecified. Callers must hold s.mu.
func (s *Service) notify(deliver func(StatusListener)) {
	snapshot := make([]StatusListener, 0, len(s.listeners))
	for listener := range s.listeners {
		snapshot = append(snapshot, listener)
	}

	for _, listener := range snapshot {
		deliver(listener)
	}
}
