package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/edutrack/core/internal/adapters/repository"
	appcommands "github.com/edutrack/core/internal/application/commands"
	"github.com/edutrack/core/internal/application/services"
	"github.com/edutrack/core/internal/infrastructure/config"
	"github.com/edutrack/core/internal/infrastructure/logger"
	"github.com/edutrack/core/internal/infrastructure/metrics"
	"github.com/edutrack/core/internal/infrastructure/server"
)

// Build information, set with -ldflags "-X github.com/edutrack/core/cmd/api/commands.Version=..."
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// NewRootCommand builds the edutrack command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "edutrack",
		Short:         "EduTrack learning analytics service",
		Long:          `EduTrack answers reports about users, courses, comments and certificates kept in a single JSON data file, and applies the few updates the platform needs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("store", "", "Path to the data file (overrides STORE_PATH)")

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewCertificatesCommand())
	rootCmd.AddCommand(NewCoursesCommand())
	rootCmd.AddCommand(NewProgressCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewStatsCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the EduTrack API server",
		Long:  "Start the EduTrack API server with all configured routes and middleware",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd)
		},
	}
}

// NewCertificatesCommand creates the certificate management command
func NewCertificatesCommand() *cobra.Command {
	certificatesCmd := &cobra.Command{
		Use:   "certificates",
		Short: "Certificate commands",
	}

	certificatesCmd.AddCommand(&cobra.Command{
		Use:   "issue",
		Short: "Issue certificates for every course with progress of 90 or more",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			created, err := services.NewCertificateService(a.repo, appcommands.NewEngine(), a.logger, nil).IssueCertificates(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Certificates created: %d\n", created)
			return nil
		},
	})

	return certificatesCmd
}

// NewCoursesCommand creates the course management command
func NewCoursesCommand() *cobra.Command {
	coursesCmd := &cobra.Command{
		Use:   "courses",
		Short: "Course commands",
	}

	coursesCmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Remove every course without comments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			removed, err := services.NewCourseService(a.repo, appcommands.NewEngine(), a.logger, nil).DeleteCoursesWithoutComments(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Courses removed: %d\n", removed)
			return nil
		},
	})

	return coursesCmd
}

// NewProgressCommand creates the progress command
func NewProgressCommand() *cobra.Command {
	progressCmd := &cobra.Command{
		Use:   "progress",
		Short: "Progress commands",
	}

	incrementCmd := &cobra.Command{
		Use:   "increment",
		Short: "Advance a user's progress on a course by 10 points",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			courseID, _ := cmd.Flags().GetString("course")

			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			progress, err := services.NewUserService(a.repo, appcommands.NewEngine(), a.logger, nil).IncrementProgress(cmd.Context(), userID, courseID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Progress updated: %g\n", progress)
			return nil
		},
	}

	incrementCmd.Flags().String("user", "", "User ID (required)")
	incrementCmd.Flags().String("course", "", "Course ID (required)")
	_ = incrementCmd.MarkFlagRequired("user")
	_ = incrementCmd.MarkFlagRequired("course")

	progressCmd.AddCommand(incrementCmd)
	return progressCmd
}

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Print the whole dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")

			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			snapshot, err := services.NewDatasetService(a.repo).Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			return repository.Export(cmd.OutOrStdout(), snapshot, format)
		},
	}

	exportCmd.Flags().String("format", repository.FormatJSON, "Output format (json, yaml)")
	return exportCmd
}

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the number of records per collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			stats, err := services.NewDatasetService(a.repo).Stats(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print EduTrack version",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "EduTrack %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", Commit)
		},
	}
}

// app bundles what every command needs
type app struct {
	config *config.Config
	logger *logger.Logger
	repo   *repository.FileSnapshotRepository
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// bootstrap loads the configuration and opens the data file.
// One-shot commands log to stderr so their stdout stays machine readable.
func bootstrap(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if store, _ := cmd.Flags().GetString("store"); store != "" {
		cfg.Store.Path = store
	}

	if cmd.Name() != "serve" && cfg.Logger.Output != "file" {
		cfg.Logger.Output = "stderr"
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &app{
		config: cfg,
		logger: appLogger,
		repo:   repository.NewFileSnapshotRepository(cfg.Store.Path, appLogger, nil),
	}, nil
}

func runServer(cmd *cobra.Command) error {
	a, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	cfg := a.config
	m := metrics.New()
	repo := repository.NewFileSnapshotRepository(cfg.Store.Path, a.logger, m)

	srv, err := server.New(cfg, repo, a.logger, m)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Store.Watch {
		go func() {
			if err := repo.Watch(ctx, nil); err != nil {
				a.logger.Warnw("Data file watcher stopped", "error", err)
			}
		}()
	}

	a.logger.Infow("Starting EduTrack API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"store", cfg.Store.Path,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Server.Address())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.logger.Info("Server stopped")
	return nil
}
