// ABOUTME: Show command for displaying a single todo.
// ABOUTME: Renders the text body as markdown with glamour.

package main

import (
	"fmt"

	"github.com/harper/todo/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a todo",
	Long:  `Display a todo with its timestamps and rendered text.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		todo, err := findTodo(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get todo: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, ui.FormatTodoHeader(todo))
		text, _ := ui.FormatTextBody(todo.TextBody)
		fmt.Fprint(out, text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
