package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayline/pkg/observability"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"health"},
	Short:   "Check the storage and messaging backends",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		if app.Health == nil {
			return errors.New("health checks are not configured")
		}

		health := app.Health.GetOverallHealth(Context(cmd))
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "dayline %s: %s\n", Version, health.Status)
		for _, name := range app.Health.Names() {
			check := health.Checks[name]
			fmt.Fprintf(out, "  %-14s %-10s %s\n", name, check.Status, check.Message)
		}

		if health.Status == observability.HealthStatusUnhealthy {
			return errors.New("one or more required backends are unavailable")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
