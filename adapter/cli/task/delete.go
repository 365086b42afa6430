package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayline/adapter/cli"
	"github.com/felixgeelhaar/dayline/internal/planner/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a task and close the gap",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := cli.Timed(cmd, app, "task.delete", func() (*commands.ScheduleResult, error) {
			return app.DeleteTaskHandler.Handle(cli.Context(cmd), commands.DeleteTaskCommand{TaskID: args[0]})
		})
		if err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		cli.PrintResult(cmd.OutOrStdout(), result)
		return nil
	},
}
