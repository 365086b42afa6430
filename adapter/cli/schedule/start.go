package schedule

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayline/adapter/cli"
	"github.com/felixgeelhaar/dayline/internal/planner/application/commands"
)

var startCmd = &cobra.Command{
	Use:   "start <H:MM|now>",
	Short: "Set the time the first task starts",
	Long: `Save a new start time and reschedule every task from it.

Examples:
  dayline schedule start 8:30
  dayline schedule start now`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		command := commands.SetStartTimeCommand{StartTime: strings.TrimSpace(args[0])}
		if strings.EqualFold(command.StartTime, "now") {
			command = commands.SetStartTimeCommand{UseNow: true}
		}

		result, err := cli.Timed(cmd, app, "schedule.start", func() (*commands.ScheduleResult, error) {
			return app.SetStartTimeHandler.Handle(cli.Context(cmd), command)
		})
		if err != nil {
			return fmt.Errorf("failed to set start time: %w", err)
		}

		cli.PrintResult(cmd.OutOrStdout(), result)
		return nil
	},
}
