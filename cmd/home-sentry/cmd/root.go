package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/home-sentry/home-sentry/internal/config"
	"github.com/home-sentry/home-sentry/internal/service/monitor"
	"github.com/home-sentry/home-sentry/internal/version"
)

var (
	// configPath is the path to the configuration YAML file.
	configPath string
	// databaseFile overrides the state database path.
	databaseFile string
	// framesDir overrides the camera frame spool directory.
	framesDir string

	// rootCmd represents the base command for running the monitoring daemon.
	rootCmd = &cobra.Command{
		Use:   "home-sentry",
		Short: "Run the home security monitoring daemon.",
		Long: `Starts the home security monitor: the daemon that tracks arming status,
sensor activity and camera-based cat detection, and turns them into an alarm status.

State is persisted to a SQLite database so the system picks up where it left off
after a restart. Camera frames dropped into the frames directory are classified
and fed into the alarm rules. Settings come from a YAML file; flags override it.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &monitor.Options{
				ConfigPath:   configPath,
				DatabaseFile: databaseFile,
				FramesDir:    framesDir,
			}

			return monitor.Run(ctx, options)
		},
	}
)

// Execute runs the home-sentry CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&databaseFile, "database", "d", "", "path to the state database (overrides config)")
	rootCmd.Flags().StringVarP(&framesDir, "frames-dir", "f", "", "camera frame spool directory (overrides config)")
}
