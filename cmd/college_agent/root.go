package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/college-directory/internal/config"
	"github.com/jonathan/college-directory/internal/db"
	"github.com/jonathan/college-directory/internal/observability"
	"github.com/jonathan/college-directory/internal/reference"
	"github.com/jonathan/college-directory/internal/types"
)

var (
	verbose       bool
	configPath    string
	databaseURL   string
	referencePath string

	cfg    *config.Config
	logger = zap.NewNop()
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default $COLLEGE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Database URL: postgres://, file:, sqlite: or a .db path (default $DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&referencePath, "reference", "", "Path to reference data YAML (default: built-in tables)")
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		var loadErr *config.LoadError
		if errors.As(err, &loadErr) {
			return fmt.Errorf("configuration: %w", err)
		}
		return err
	}
	if cmd.Flags().Changed("database-url") {
		loaded.DatabaseURL = databaseURL
	}
	if cmd.Flags().Changed("reference") {
		loaded.ReferencePath = referencePath
	}
	cfg = loaded

	zapCfg := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	built, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built.With(zap.String("command", cmd.Name()))
	return nil
}

func teardown(_ *cobra.Command, _ []string) {
	if logger != nil {
		_ = logger.Sync()
	}
}

// loadReference returns the reference tables named by config, or the
// built-in defaults.
func loadReference() (*reference.Data, error) {
	ref, err := reference.Load(cfg.ReferencePath)
	if err != nil {
		return nil, err
	}
	logger.Debug("reference data loaded",
		zap.String("path", cfg.ReferencePath),
		zap.Strings("known_slugs", ref.KnownSlugs()),
		zap.Int("early_admission_policies", len(ref.EarlyAdmissionPolicies)))
	return ref, nil
}

// openStore connects to the configured database.
func openStore(ctx context.Context) (db.Store, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL not set: use --database-url or %s", config.EnvDatabaseURL)
	}
	store, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return store, nil
}

// listColleges fetches every record once; a store failure aborts the command.
func listColleges(ctx context.Context) ([]types.College, error) {
	store, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	colleges, err := store.ListColleges(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("colleges loaded", zap.Int("count", len(colleges)))
	return colleges, nil
}

func newPrinter(cmd *cobra.Command) *observability.Printer {
	return observability.NewPrinter(cmd.OutOrStdout())
}
