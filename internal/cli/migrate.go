package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/campsite/internal/config"
	"github.com/mmynk/campsite/pkg/logging"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the reservation schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Setup(cfg.LogLevel)

			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if err := store.Close(); err != nil {
				return err
			}

			slog.Info("Schema up to date", "driver", cfg.StorageDriver)
			return nil
		},
	}
}
