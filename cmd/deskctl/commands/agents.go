package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewEventCmd creates the event command, invoking the calendar agent
// directly without classification.
func NewEventCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "event <text>",
		Short: "Create a calendar event from text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(debug)
			if err != nil {
				return err
			}
			defer a.close()

			result := a.events.HandleEvent(context.Background(), strings.Join(args, " "))
			return printJSON(result)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable model API debug logging")
	return cmd
}

// NewTaskCmd creates the task command
func NewTaskCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "task <text>",
		Short: "Create a task database record from text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(debug)
			if err != nil {
				return err
			}
			defer a.close()

			if a.tasks == nil {
				return fmt.Errorf("task agent not configured (set NOTION_TOKEN and NOTION_TASK_DB_ID)")
			}
			result, err := a.tasks.HandleTask(context.Background(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable model API debug logging")
	return cmd
}

// NewNoteCmd creates the note command
func NewNoteCmd() *cobra.Command {
	var file string
	var category string
	var debug bool

	cmd := &cobra.Command{
		Use:   "note [text]",
		Short: "Archive text or a file in the notes database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" && len(args) == 0 {
				return fmt.Errorf("provide text as an argument or a file via --file")
			}

			a, err := newApp(debug)
			if err != nil {
				return err
			}
			defer a.close()

			if a.notes == nil {
				return fmt.Errorf("note agent not configured (set NOTION_TOKEN and NOTION_NOTES_DB_ID)")
			}

			ctx := context.Background()
			text := strings.Join(args, " ")
			if file != "" {
				content, err := a.extractor.Extract(ctx, file)
				if err != nil {
					return fmt.Errorf("extract %s: %w", file, err)
				}
				text = content.Text
			}

			result, err := a.notes.HandleNote(ctx, file, text, category)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "archive a file instead of literal text")
	cmd.Flags().StringVarP(&category, "category", "c", "", "notes database category")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable model API debug logging")
	return cmd
}

// NewFinanceCmd creates the finance command
func NewFinanceCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "finance <text>",
		Short: "Relay receipt or budget text to the finance agent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(debug)
			if err != nil {
				return err
			}
			defer a.close()

			if a.finance == nil {
				return fmt.Errorf("finance agent not configured (set FETCH_API_KEY and FETCH_FINANCE_AGENT_ADDRESS)")
			}
			payload := a.finance.HandleFinance(context.Background(), strings.Join(args, " "))
			return printJSON(payload)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable model API debug logging")
	return cmd
}
