package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayline/adapter/cli"
	"github.com/felixgeelhaar/dayline/internal/planner/application/commands"
)

var notesCmd = &cobra.Command{
	Use:   "notes <id> [text...]",
	Short: "Replace a task's notes",
	Long: `Set the notes of a task. Without text the notes are cleared.

Examples:
  dayline task notes 3f2a9c1e "bring the printed agenda"
  dayline task notes 3f2a9c1e`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		command := commands.UpdateNotesCommand{
			TaskID: args[0],
			Notes:  strings.Join(args[1:], " "),
		}
		updated, err := app.UpdateNotesHandler.Handle(cli.Context(cmd), command)
		if err != nil {
			return fmt.Errorf("failed to update notes: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updated notes for %s [%s]\n", updated.Name(), cli.ShortID(updated.ID()))
		return nil
	},
}
