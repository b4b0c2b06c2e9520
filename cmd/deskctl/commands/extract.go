package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewExtractCmd creates the extract command
func NewExtractCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract text from a file without routing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(debug)
			if err != nil {
				return err
			}
			defer a.close()

			content, err := a.extractor.Extract(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("extract %s: %w", args[0], err)
			}
			fmt.Println(content.Text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable model API debug logging")
	return cmd
}
