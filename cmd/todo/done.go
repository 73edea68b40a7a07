// ABOUTME: Done command toggling a todo's completion flag.
// ABOUTME: Running it twice reopens the todo.

package main

import (
	"fmt"

	"github.com/harper/todo/internal/service"
	"github.com/harper/todo/internal/ui"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a todo's completion",
	Long:  `Mark an open todo as done, or reopen a done one.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := todoSvc.ResolveID(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to find todo: %w", err)
		}

		todo, err := todoSvc.Update(cmd.Context(), id, service.ToggleComplete{})
		if err != nil {
			return fmt.Errorf("failed to update todo: %w", err)
		}
		if todo == nil {
			return fmt.Errorf("%w: %s", errTodoNotFound, args[0])
		}

		verb := "Reopened"
		if todo.IsComplete {
			verb = "Completed"
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("%s todo %s", verb, todo.ShortID())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
