package security

import (
	"fmt"

	"github.com/google/uuid"
)

// SensorType categorizes a sensor. The engine never branches on it;
// it exists for display and storage only.
type SensorType int

const (
	// Door sensors watch an entry door.
	Door SensorType = iota
	// Window sensors watch a window.
	Window
	// Motion sensors watch a room.
	Motion
)

var sensorTypeNames = map[SensorType]string{
	Door:   "door",
	Window: "window",
	Motion: "motion",
}

// String returns the stable name of the sensor type.
func (t SensorType) String() string {
	if name, ok := sensorTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("sensor_type(%d)", int(t))
}

// ParseSensorType converts a stable name back into a SensorType.
func ParseSensorType(name string) (SensorType, error) {
	for sensorType, typeName := range sensorTypeNames {
		if typeName == name {
			return sensorType, nil
		}
	}

	return Door, fmt.Errorf("unknown sensor type %q", name)
}

// Sensor is a single monitored device.
type Sensor struct {
	// ID uniquely identifies the sensor.
	ID uuid.UUID
	// Name is the human-assigned label.
	Name string
	// Type categorizes the sensor.
	Type SensorType
	// Active reports whether the sensor is currently tripped.
	Active bool
}

// NewSensor creates an inactive sensor with a fresh identity.
func NewSensor(name string, sensorType SensorType) *Sensor {
	return &Sensor{
		ID:   uuid.New(),
		Name: name,
		Type: sensorType,
	}
}

// Clone returns a copy of the sensor to avoid leaking internal references.
func (s *Sensor) Clone() *Sensor {
	if s == nil {
		return nil
	}

	cloned := *s

	return &cloned
}
