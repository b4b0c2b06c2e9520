package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geminidesk/geminidesk/cmd/deskctl/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "deskctl",
		Short: "Desk assistant CLI",
		Long:  "CLI for routing text and files through the desk assistant pipeline",
	}

	rootCmd.AddCommand(commands.NewRouteCmd())
	rootCmd.AddCommand(commands.NewExtractCmd())
	rootCmd.AddCommand(commands.NewEventCmd())
	rootCmd.AddCommand(commands.NewTaskCmd())
	rootCmd.AddCommand(commands.NewNoteCmd())
	rootCmd.AddCommand(commands.NewFinanceCmd())
	rootCmd.AddCommand(commands.NewEventsCmd())
	rootCmd.AddCommand(commands.NewScanCmd())
	rootCmd.AddCommand(commands.NewAnalyticsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
