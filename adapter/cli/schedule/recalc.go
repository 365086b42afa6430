package schedule

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayline/adapter/cli"
	"github.com/felixgeelhaar/dayline/internal/planner/application/commands"
)

var recalcCmd = &cobra.Command{
	Use:     "recalc",
	Aliases: []string{"recalculate"},
	Short:   "Recompute every task's times from the start time",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := cli.Timed(cmd, app, "schedule.recalculate", func() (*commands.ScheduleResult, error) {
			return app.RecalculateScheduleHandler.Handle(cli.Context(cmd), commands.RecalculateScheduleCommand{})
		})
		if err != nil {
			return fmt.Errorf("failed to recalculate schedule: %w", err)
		}

		cli.PrintResult(cmd.OutOrStdout(), result)
		return nil
	},
}
