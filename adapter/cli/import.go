package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayline/internal/planner/application/commands"
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import tasks from a spreadsheet",
	Long: `Replace the task list with the rows of an .xlsx file and schedule them.

Rows are read from the first sheet unless DAYLINE_SHEET_NAME names another.
Invalid rows are skipped and listed in the import summary. A start time in
the sheet's startTime column replaces the saved start time.

Examples:
  dayline import today.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		if app.Decoder == nil {
			return errors.New("spreadsheet import is not configured")
		}

		ctx := Context(cmd)
		path := args[0]
		result, err := Timed(cmd, app, "import", func() (*commands.ImportTasksResult, error) {
			rows, err := app.Decoder.DecodeFile(ctx, path)
			if err != nil {
				return nil, err
			}
			return app.ImportTasksHandler.Handle(ctx, commands.ImportTasksCommand{
				Source: filepath.Base(path),
				Rows:   rows,
			})
		})
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}

		out := cmd.OutOrStdout()
		PrintSummary(out, &result.Summary)
		fmt.Fprintln(out)
		PrintResult(out, result.Schedule)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
