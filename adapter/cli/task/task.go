package task

import (
	"github.com/spf13/cobra"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Edit tasks in the schedule",
	Long:  `Reorder, annotate and remove tasks. Tasks are addressed by position or by the ID prefix shown in 'dayline schedule show'.`,
}

func init() {
	Cmd.AddCommand(moveCmd)
	Cmd.AddCommand(notesCmd)
	Cmd.AddCommand(deleteCmd)
}
