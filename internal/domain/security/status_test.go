package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAlarmStatusRoundtrip verifies that every alarm status survives a
// String/Parse roundtrip and unknown names are rejected.
func TestAlarmStatusRoundtrip(t *testing.T) {
	t.Parallel()

	for _, status := range []AlarmStatus{NoAlarm, PendingAlarm, Alarm} {
		parsed, err := ParseAlarmStatus(status.String())
		require.NoError(t, err)
		require.Equal(t, status, parsed)
	}

	_, err := ParseAlarmStatus("panic")
	require.Error(t, err)
}

// TestArmingStatusRoundtrip verifies the same properties for arming statuses.
func TestArmingStatusRoundtrip(t *testing.T) {
	t.Parallel()

	for _, status := range []ArmingStatus{Disarmed, ArmedHome, ArmedAway} {
		parsed, err := ParseArmingStatus(status.String())
		require.NoError(t, err)
		require.Equal(t, status, parsed)
	}

	_, err := ParseArmingStatus("armed_sideways")
	require.Error(t, err)
}

// TestAlarmStatusText verifies the TextMarshaler/TextUnmarshaler pair used by
// the YAML config and storage layers.
func TestAlarmStatusText(t *testing.T) {
	t.Parallel()

	text, err := PendingAlarm.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "pending_alarm", string(text))

	var status AlarmStatus

	require.NoError(t, status.UnmarshalText(text))
	require.Equal(t, PendingAlarm, status)

	require.Error(t, status.UnmarshalText([]byte("nope")))
}
