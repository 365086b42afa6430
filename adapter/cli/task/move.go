package task

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayline/adapter/cli"
	"github.com/felixgeelhaar/dayline/internal/planner/application/commands"
)

var moveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a task to another position",
	Long: `Move the task at one position to another and recalculate the day.
Positions start at 1, as in 'dayline schedule show'.

Examples:
  dayline task move 4 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		from, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		to, err := parsePosition(args[1])
		if err != nil {
			return err
		}

		result, err := cli.Timed(cmd, app, "task.move", func() (*commands.ScheduleResult, error) {
			return app.ReorderTaskHandler.Handle(cli.Context(cmd), commands.ReorderTaskCommand{From: from, To: to})
		})
		if err != nil {
			return fmt.Errorf("failed to move task: %w", err)
		}

		cli.PrintResult(cmd.OutOrStdout(), result)
		return nil
	},
}

// parsePosition turns a 1-based position into a zero-based index.
func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q: must be a number from 1", arg)
	}
	return n - 1, nil
}
