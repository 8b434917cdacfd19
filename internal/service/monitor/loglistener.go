package monitor

import (
	"context"

	domain "github.com/home-sentry/home-sentry/internal/domain/security"
	"github.com/home-sentry/home-sentry/internal/logger"
)

// LogListener is a StatusListener that reports every notification through the
// logger. The daemon registers one so state changes are visible without any
// other sink attached.
type LogListener struct {
	// ctx carries the named logger used for output.
	ctx context.Context
}

// NewLogListener creates a listener logging with the context's logger.
func NewLogListener(ctx context.Context) *LogListener {
	return &LogListener{ctx: ctx}
}

// OnAlarmStatusChanged logs the new alarm status.
func (l *LogListener) OnAlarmStatusChanged(status domain.AlarmStatus) {
	logger.InfoKV(l.ctx, "Alarm status",
		"alarm_status", status,
		"description", status.Description())
}

// OnSensorStatusChanged logs that the sensor set changed.
func (l *LogListener) OnSensorStatusChanged() {
	logger.Info(l.ctx, "Sensor status changed")
}

// OnCatDetected logs the classifier verdict.
func (l *LogListener) OnCatDetected(detected bool) {
	logger.InfoKV(l.ctx, "Frame processed", "cat_detected", detected)
}
