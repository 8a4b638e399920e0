// Package cli holds the campsite command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/campsite/internal/config"
	"github.com/mmynk/campsite/internal/storage"
	"github.com/mmynk/campsite/internal/storage/postgres"
	"github.com/mmynk/campsite/internal/storage/sqlite"
)

// Build metadata, set with -ldflags.
var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

// NewRootCmd returns the campsite root command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "campsite",
		Short:         "Availability and reservation server for a single campsite",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore opens the configured backend. Both backends apply their schema
// on open.
func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		store, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		slog.Info("Storage initialized", "driver", cfg.StorageDriver)
		return store, nil
	default:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		slog.Info("Storage initialized", "driver", cfg.StorageDriver, "database", cfg.DBPath)
		return store, nil
	}
}
