package schedule

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayline/adapter/cli"
	"github.com/felixgeelhaar/dayline/internal/planner/application/queries"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/security"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Write the schedule to a spreadsheet",
	Long: `Write the stored tasks, with their start and end times, to an .xlsx
file that can be imported again.

Examples:
  dayline schedule export planned.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if app.ExportScheduleHandler == nil {
			return errors.New("spreadsheet export is not configured")
		}

		path := args[0]
		f, err := security.CreateWorkbook(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close %s: %w", path, cerr)
			}
		}()

		n, err := cli.Timed(cmd, app, "schedule.export", func() (int, error) {
			return app.ExportScheduleHandler.Handle(cli.Context(cmd), queries.ExportScheduleQuery{Output: f})
		})
		if err != nil {
			return fmt.Errorf("failed to export schedule: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", n, path)
		return nil
	},
}
