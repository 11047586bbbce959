package cmd

import (
	"fmt"

	"github.com/ecomate/backend/internal/delivery/cli"
	"github.com/ecomate/backend/internal/presenter"
	"github.com/spf13/cobra"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List the sample products in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runSamples,
}

func runSamples(cmd *cobra.Command, args []string) error {
	application, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	fmt.Fprint(cmd.OutOrStdout(), cli.FormatSamples(presenter.BuildSamples(application.Products().Samples())))
	return nil
}
