package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// NewAnalyticsCmd creates the analytics command
func NewAnalyticsCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Summarize the past week of calendar events",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(debug)
			if err != nil {
				return err
			}
			defer a.close()

			report, err := a.events.WeeklyReport(context.Background())
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable model API debug logging")
	return cmd
}
