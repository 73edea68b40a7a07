// ABOUTME: Remove command for deleting todos.
// ABOUTME: Includes confirmation prompt before deletion.

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/harper/todo/internal/ui"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a todo",
	Long:  `Delete a todo.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		out := cmd.OutOrStdout()

		todo, err := findTodo(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get todo: %w", err)
		}

		if !force {
			fmt.Fprintf(out, "Delete todo %q (%s)? [y/N] ", todo.TextBody, todo.ShortID())
			reader := bufio.NewReader(cmd.InOrStdin())
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		removed, err := todoSvc.DeleteByID(cmd.Context(), todo.ID)
		if err != nil {
			return fmt.Errorf("failed to delete todo: %w", err)
		}
		if removed == nil {
			return fmt.Errorf("%w: %s", errTodoNotFound, args[0])
		}

		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Deleted todo %s", removed.ShortID())))
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
}
