package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/home-sentry/home-sentry/internal/config"
	"github.com/home-sentry/home-sentry/internal/logger"
	repo "github.com/home-sentry/home-sentry/internal/repository/state"
	"github.com/home-sentry/home-sentry/internal/service/image"
)

// Options controls the home-sentry daemon process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// DatabaseFile overrides the state database path from the config.
	DatabaseFile string
	// FramesDir overrides the camera frame spool directory from the config.
	FramesDir string
}

// Run starts the monitoring daemon and blocks until the context is canceled.
// Configuration is loaded first; command line overrides win over the file.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "home-sentry")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	databaseFile := cfg.DatabaseFile
	if opts.DatabaseFile != "" {
		databaseFile = opts.DatabaseFile
	}

	framesDir := cfg.FramesDir
	if opts.FramesDir != "" {
		framesDir = opts.FramesDir
	}

	repository, closeRepository, err := openRepository(databaseFile)
	if err != nil {
		return err
	}
	defer closeRepository()

	svc := NewService(repository, classifierFor(cfg.Classifier))
	svc.AddStatusListener(NewLogListener(ctx))

	logger.InfoKV(ctx, "Monitoring started",
		"database_file", databaseFile,
		"frames_dir", framesDir,
		"classifier", cfg.Classifier)

	watchErrs := make(chan error, 1)

	if framesDir != "" {
		go func() {
			watchErrs <- watchFrames(ctx, svc, framesDir)
		}()
	}

	ticker := time.NewTicker(cfg.StatusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Shutting down")

			return nil
		case err = <-watchErrs:
			if err != nil {
				return fmt.Errorf("watch frames: %w", err)
			}

			return nil
		case <-ticker.C:
			logStatus(ctx, svc)
		}
	}
}

// openRepository picks the storage backend: SQLite when a database file is
// configured, memory otherwise.
func openRepository(databaseFile string) (repo.Repository, func(), error) {
	if databaseFile == "" {
		return repo.NewMemoryRepository(), func() {}, nil
	}

	sqliteRepo, err := repo.NewSQLiteRepository(databaseFile)
	if err != nil {
		return nil, nil, fmt.Errorf("open state database: %w", err)
	}

	return sqliteRepo, func() { _ = sqliteRepo.Close() }, nil
}

// classifierFor maps the configured classifier name to an implementation.
func classifierFor(name string) image.Classifier {
	switch name {
	case config.ClassifierAlways:
		return &image.StaticClassifier{Detected: true}
	case config.ClassifierNever:
		return &image.StaticClassifier{Detected: false}
	default:
		return &image.RandomClassifier{}
	}
}

// logStatus writes the periodic status summary.
func logStatus(ctx context.Context, svc *Service) {
	alarmStatus, err := svc.AlarmStatus(ctx)
	if err != nil {
		logger.Errorf(ctx, "Failed to read alarm status: %v", err)

		return
	}

	armingStatus, err := svc.ArmingStatus(ctx)
	if err != nil {
		logger.Errorf(ctx, "Failed to read arming status: %v", err)

		return
	}

	sensors, err := svc.Sensors(ctx)
	if err != nil {
		logger.Errorf(ctx, "Failed to list sensors: %v", err)

		return
	}

	active := 0
	for _, sensor := range sensors {
		if sensor.Active {
			active++
		}
	}

	logger.InfoKV(ctx, "Status",
		"alarm_status", alarmStatus,
		"arming_status", armingStatus,
		"sensors", len(sensors),
		"active_sensors", active)
}
