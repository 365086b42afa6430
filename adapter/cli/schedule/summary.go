package schedule

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayline/adapter/cli"
	"github.com/felixgeelhaar/dayline/internal/planner/application/queries"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the outcome of the last import",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		summary, err := app.GetImportSummaryHandler.Handle(cli.Context(cmd), queries.GetImportSummaryQuery{})
		if err != nil {
			return fmt.Errorf("failed to get import summary: %w", err)
		}
		if summary == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing imported yet.")
			return nil
		}

		cli.PrintSummary(cmd.OutOrStdout(), summary)
		return nil
	},
}
