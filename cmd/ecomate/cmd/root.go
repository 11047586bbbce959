package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ecomate/backend/config"
	"github.com/ecomate/backend/internal/app"
	"github.com/ecomate/backend/internal/delivery/cli"
	"github.com/ecomate/backend/internal/infrastructure/catalog"
	"github.com/ecomate/backend/internal/infrastructure/logging"
	"github.com/spf13/cobra"
)

var (
	catalogFlag string
	colorFlag   string
)

var rootCmd = &cobra.Command{
	Use:          "ecomate",
	Short:        "EcoMate: eco score lookup for everyday products",
	Long:         "Look products up in the EcoMate catalog and get an eco score card with greener alternatives.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", "", "catalog file path or http(s) URL (overrides ECOMATE_CATALOG_SOURCE)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", string(cli.ColorAuto), "color output: auto, always or never")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(samplesCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadApp reads configuration, applies flag overrides and loads the catalog
func loadApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if catalogFlag != "" {
		cfg.Catalog.Source = catalogFlag
	}

	logging.Init(cfg.Log.Level, cfg.Server.Environment)

	return app.New(cmd.Context(), cfg, catalog.NewLoader()), nil
}

func useColor(cmd *cobra.Command) bool {
	return cli.ResolveColor(cli.ColorMode(colorFlag), cmd.OutOrStdout())
}
