package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayline/internal/planner/application/commands"
	"github.com/felixgeelhaar/dayline/internal/planner/application/services"
)

var resetConfirmed bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all tasks, summaries and settings",
	Long: `Clear every store dayline writes to. Each store is attempted even when
an earlier one fails; the command fails if any store could not be cleared.

Examples:
  dayline reset --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		if !resetConfirmed {
			return errors.New("reset deletes all data; pass --yes to confirm")
		}

		result, _ := Timed(cmd, app, "reset", func() (services.ResetResult, error) {
			return app.ResetAllHandler.Handle(Context(cmd), commands.ResetAllCommand{}), nil
		})

		out := cmd.OutOrStdout()
		for _, name := range result.Backends {
			mark := "cleared"
			if !result.Cleared[name] {
				mark = "FAILED"
			}
			fmt.Fprintf(out, "  %-18s %s\n", name, mark)
		}
		if !result.Success {
			for _, e := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", e)
			}
			return fmt.Errorf("reset incomplete: %d of %d stores failed", len(result.Errors), len(result.Backends))
		}
		fmt.Fprintln(out, "All data cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetConfirmed, "yes", "y", false, "confirm deleting all data")
	rootCmd.AddCommand(resetCmd)
}
