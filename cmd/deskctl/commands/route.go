package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewRouteCmd creates the route command, the CLI face of the full
// pipeline: classify the input and hand it to the winning agent.
func NewRouteCmd() *cobra.Command {
	var file string
	var debug bool

	cmd := &cobra.Command{
		Use:   "route [text]",
		Short: "Classify input and dispatch it to the right agent",
		Long:  "Run text (or a file via --file) through extraction, classification, and dispatch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" && len(args) == 0 {
				return fmt.Errorf("provide text as an argument or a file via --file")
			}

			a, err := newApp(debug)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := context.Background()
			if file != "" {
				result, err := a.pipeline.RunFile(ctx, file)
				if err != nil {
					return err
				}
				return printJSON(result)
			}

			result, err := a.pipeline.RunText(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "route a file instead of literal text")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable model API debug logging")
	return cmd
}
