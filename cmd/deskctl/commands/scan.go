package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geminidesk/geminidesk/internal/pipeline"
)

// NewScanCmd creates the scan command: route every supported file in a
// directory through the pipeline. Unsupported files are skipped, not
// errors; a drop folder always has strays.
func NewScanCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Route every supported file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := os.ReadDir(args[0])
			if err != nil {
				return fmt.Errorf("read directory %s: %w", args[0], err)
			}

			a, err := newApp(debug)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := context.Background()
			outcomes := map[string]*pipeline.Result{}
			var failed int

			for _, entry := range entries {
				if entry.IsDir() || !supportedExtension(entry.Name()) {
					continue
				}
				path := filepath.Join(args[0], entry.Name())
				result, err := a.pipeline.RunFile(ctx, path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", entry.Name(), err)
					failed++
					continue
				}
				outcomes[entry.Name()] = result
			}

			if err := printJSON(outcomes); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d files failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable model API debug logging")
	return cmd
}

func supportedExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".csv", ".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".webp", ".pdf":
		return true
	default:
		return false
	}
}
