// ABOUTME: List command for displaying todos.
// ABOUTME: Prints check-marked items, or JSON/YAML for scripting.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/harper/todo/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Long:  `List all todos in the order they were created.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		yamlFlag, _ := cmd.Flags().GetBool("yaml")
		openFlag, _ := cmd.Flags().GetBool("open")
		out := cmd.OutOrStdout()

		todos, err := todoSvc.ReadAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list todos: %w", err)
		}

		switch {
		case jsonFlag:
			data, err := json.MarshalIndent(todos, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		case yamlFlag:
			data, err := yaml.Marshal(todos)
			if err != nil {
				return err
			}
			fmt.Fprint(out, string(data))
			return nil
		}

		if len(todos) == 0 {
			fmt.Fprintln(out, "No todos found.")
			return nil
		}

		for _, todo := range todos {
			if openFlag && todo.IsComplete {
				continue
			}
			fmt.Fprint(out, ui.FormatTodoListItem(todo))
		}
		fmt.Fprint(out, ui.FormatSummary(todos))
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("json", false, "output as JSON")
	listCmd.Flags().Bool("yaml", false, "output as YAML")
	listCmd.Flags().Bool("open", false, "hide completed todos")
	listCmd.MarkFlagsMutuallyExclusive("json", "yaml")
	rootCmd.AddCommand(listCmd)
}
