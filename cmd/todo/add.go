// ABOUTME: Add command for creating new todos.
// ABOUTME: Joins its arguments into the todo text.

package main

import (
	"fmt"
	"strings"

	"github.com/harper/todo/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a new todo",
	Long:  `Create a new todo. Multiple arguments are joined with spaces.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		todo, err := todoSvc.Create(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to create todo: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Created todo %s", todo.ShortID())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
