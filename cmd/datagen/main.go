// Package main implements the entry point of the data generator, which
// simulates a multi-year student population and synthesizes the assessment
// outcomes those students produce.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/config"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/domain"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/events"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/generation"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/platform/logger"
)

// application holds the initialized collaborators of one run.
type application struct {
	cfg    *config.Config
	tables *config.Tables
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "datagen",
		Short: "Generate a simulated student population and its assessment outcomes",
		Long: `datagen builds a state of districts and schools, enrolls students with
demographic profiles, and simulates school years: every year each student
takes the assessments of their grade and then advances, repeats the grade,
transfers or drops out.

Settings come from defaults, an optional datagen.yaml (or --config), and
DATAGEN_* environment variables, in increasing precedence.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			app, err := initializeApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.run(ctx)
		},
	}

	rootCmd.PersistentFlags().String("config", os.Getenv(config.ConfigPathEnv), "Path to a YAML config file")
	rootCmd.AddCommand(newTablesCmd())
	return rootCmd
}

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables [path]",
		Short: "Validate statistics tables and print what they cover",
		Long: `Loads a statistics table document, or the built-in tables when no path
is given, validates it, and lists the grades and claims of every subject.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			tables, err := config.LoadTables(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tables: %s\n", tablesSource(path))
			for _, subject := range tables.SubjectNames() {
				st, _ := tables.Subject(subject)
				fmt.Fprintf(out, "%s: %d grades, %d claims, %d alt scores, %d blocks\n",
					subject, len(st.Grades), len(st.Claims), len(st.AltScores), len(st.Blocks))
			}
			return nil
		},
	}
}

// initializeApp loads configuration and statistics tables and sets up
// logging.
func initializeApp(configPath string) (*application, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := setupLogger(cfg.Logging)

	tables, err := config.LoadTables(cfg.Generation.TablesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load statistics tables: %w", err)
	}

	appLogger.Info("configuration loaded",
		"seed", cfg.Generation.Seed,
		"start_year", cfg.Generation.StartYear,
		"years", cfg.Generation.Years,
		"state", cfg.Hierarchy.StateCode,
		"districts", cfg.Hierarchy.Districts,
		"schools_per_district", cfg.Hierarchy.SchoolsPerDistrict,
		"workers", cfg.Generation.WorkerCount,
		"tables", tablesSource(cfg.Generation.TablesPath))

	return &application{cfg: cfg, tables: tables, logger: appLogger}, nil
}

// run executes one generation and logs its summary.
func (a *application) run(ctx context.Context) error {
	sink := generation.NewMemorySink()

	emitter := events.NewInMemoryEventEmitter(a.logger)
	counter := events.NewCounter()
	emitter.RegisterHandler(counter)

	runner, err := generation.NewRunner(a.cfg, a.tables, sink, emitter, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		a.logger.Warn("generation stopped early", "summary", summary)
		return err
	}

	kinds := map[domain.AssessmentKind]int{}
	for _, outcome := range sink.Outcomes() {
		kinds[outcome.Kind]++
	}

	a.logger.Info("generation complete",
		"summary", summary,
		"summative", kinds[domain.KindSummative],
		"interim", kinds[domain.KindInterim],
		"blocks", kinds[domain.KindBlock],
		"events", counter.Counts())
	return nil
}

// setupLogger installs the application logger. An unusable level is not
// fatal: the logger runs at info and the problem is logged.
func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	appLogger, err := logger.Setup(cfg)
	if err != nil {
		appLogger.Warn("logging at info level", "error", err)
	}
	return appLogger
}

func tablesSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
