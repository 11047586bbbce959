package cmd

import (
	"fmt"
	"strings"

	"github.com/ecomate/backend/internal/delivery/cli"
	"github.com/ecomate/backend/internal/presenter"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <product name...>",
	Short: "Look a product up and print its eco score card",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	application, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	query := strings.Join(args, " ")
	analysis, err := application.Products().Analyze(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search %q: %w", query, err)
	}

	color := useColor(cmd)
	out := cmd.OutOrStdout()
	fmt.Fprint(out, cli.FormatCard(presenter.BuildCard(analysis.Product), color))
	fmt.Fprint(out, cli.FormatSuggestions(analysis.Query, presenter.BuildSuggestions(analysis.Alternatives), color))
	return nil
}
