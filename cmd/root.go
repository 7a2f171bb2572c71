package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/parcel-cli/internal/config"
	"github.com/sells-group/parcel-cli/internal/failure"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "parcel-cli <address>",
	Short: "Fetch Vermont parcels around a street address",
	Long: "Geocodes a street address with the Google Geocoding API, queries the VCGI " +
		"standardized parcel layer for parcels intersecting the result's viewport, " +
		"and writes the raw response to parcels.geojson.",
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return failure.New(failure.KindConfig, "load config", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return failure.New(failure.KindConfig, "init logger", err)
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		_, err := runFetch(ctx, cfg, args[0], cmd.OutOrStdout())
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(failure.ExitCode(err))
	}
}
