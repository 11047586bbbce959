package cmd

import (
	"context"
	"errors"

	"github.com/ecomate/backend/internal/delivery/cli"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Search as you type, with delayed results and live alternatives",
	Args:    cobra.NoArgs,
	RunE:    runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	application, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	renderer := cli.NewTerminalRenderer(cmd.OutOrStdout(), useColor(cmd))
	session := application.NewSession(renderer)
	repl := cli.NewREPL(session, application.Products(), renderer)

	if err := repl.Run(cmd.Context(), cmd.InOrStdin()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
