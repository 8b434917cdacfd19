package security

import "fmt"

// AlarmStatus is the system's current threat assessment.
type AlarmStatus int

// Alarm statuses, ordered by severity. The engine only ever moves
// one step at a time except for forced transitions.
const (
	// NoAlarm means the system is quiet.
	NoAlarm AlarmStatus = iota
	// PendingAlarm means a sensor tripped while armed and the system is
	// waiting for either a second trip or a reset.
	PendingAlarm
	// Alarm means the system is actively alarming.
	Alarm
)

// ArmingStatus says whether the system is actively monitoring.
type ArmingStatus int

const (
	// Disarmed means sensor and camera events are ignored.
	Disarmed ArmingStatus = iota
	// ArmedHome arms the system with occupants present.
	ArmedHome
	// ArmedAway arms the system with the home empty.
	ArmedAway
)

// alarmStatusNames are the stable wire/storage names of each alarm status.
var alarmStatusNames = map[AlarmStatus]string{
	NoAlarm:      "no_alarm",
	PendingAlarm: "pending_alarm",
	Alarm:        "alarm",
}

var armingStatusNames = map[ArmingStatus]string{
	Disarmed:  "disarmed",
	ArmedHome: "armed_home",
	ArmedAway: "armed_away",
}

// String returns the stable name of the alarm status.
func (s AlarmStatus) String() string {
	if name, ok := alarmStatusNames[s]; ok {
		return name
	}

	return fmt.Sprintf("alarm_status(%d)", int(s))
}

// Description returns a short human-readable summary for status lines.
func (s AlarmStatus) Description() string {
	switch s {
	case NoAlarm:
		return "Cool and Good"
	case PendingAlarm:
		return "I'm in Danger..."
	case Alarm:
		return "Awooga!"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s AlarmStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *AlarmStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseAlarmStatus(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// ParseAlarmStatus converts a stable name back into an AlarmStatus.
func ParseAlarmStatus(name string) (AlarmStatus, error) {
	for status, statusName := range alarmStatusNames {
		if statusName == name {
			return status, nil
		}
	}

	return NoAlarm, fmt.Errorf("unknown alarm status %q", name)
}

// String returns the stable name of the arming status.
func (s ArmingStatus) String() string {
	if name, ok := armingStatusNames[s]; ok {
		return name
	}

	return fmt.Sprintf("arming_status(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s ArmingStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ArmingStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseArmingStatus(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// ParseArmingStatus converts a stable name back into an ArmingStatus.
func ParseArmingStatus(name string) (ArmingStatus, error) {
	for status, statusName := range armingStatusNames {
		if statusName == name {
			return status, nil
		}
	}

	return Disarmed, fmt.Errorf("unknown arming status %q", name)
}
