package schedule

import (
	"github.com/spf13/cobra"
)

// Cmd is the schedule command group
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "View and adjust the day's schedule",
	Long:  `Show the planned day, change its start time, recalculate it or export it.`,
}

func init() {
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(recalcCmd)
	Cmd.AddCommand(startCmd)
	Cmd.AddCommand(exportCmd)
	Cmd.AddCommand(summaryCmd)
}
