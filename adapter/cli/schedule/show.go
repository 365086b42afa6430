package schedule

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayline/adapter/cli"
	"github.com/felixgeelhaar/dayline/internal/planner/application/queries"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored schedule",
	Long: `Display every task with its start and end time.

Examples:
  dayline schedule show
  dayline schedule show --json`,
	Aliases: []string{"today", "view"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		schedule, err := app.GetScheduleHandler.Handle(cli.Context(cmd), queries.GetScheduleQuery{})
		if err != nil {
			return fmt.Errorf("failed to get schedule: %w", err)
		}

		if showJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(schedule)
		}
		cli.PrintSchedule(cmd.OutOrStdout(), schedule)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the schedule as JSON")
}
