package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geminidesk/geminidesk/internal/models"
)

// NewEventsCmd creates the events batch command. Each non-empty line of
// the input file becomes one calendar event; failed lines are reported
// and do not stop the batch.
func NewEventsCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "events <file>",
		Short: "Create calendar events from a file, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			a, err := newApp(debug)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := context.Background()
			var results []*models.EventInsertResult
			var failed int

			scanner := bufio.NewScanner(f)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				result := a.events.HandleEvent(ctx, line)
				if result.Error != "" {
					failed++
				}
				results = append(results, result)
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			if err := printJSON(results); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d events failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable model API debug logging")
	return cmd
}
