// ABOUTME: Edit command for replacing a todo's text.
// ABOUTME: Takes the new text inline or opens it in $EDITOR.

package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/harper/todo/internal/service"
	"github.com/harper/todo/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id> [text]",
	Short: "Edit a todo",
	Long:  `Replace a todo's text. Without text, the current text opens in $EDITOR.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		todo, err := findTodo(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get todo: %w", err)
		}

		var text string
		if len(args) > 1 {
			text = strings.Join(args[1:], " ")
		} else {
			text, err = openEditor(todo.TextBody)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			text = strings.TrimRight(text, "\r\n")
		}

		if text == todo.TextBody {
			fmt.Fprintln(cmd.OutOrStdout(), "No changes made.")
			return nil
		}

		updated, err := todoSvc.Update(cmd.Context(), todo.ID, service.TextUpdate{TextBody: text})
		if err != nil {
			return fmt.Errorf("failed to update todo: %w", err)
		}
		if updated == nil {
			return fmt.Errorf("%w: %s", errTodoNotFound, args[0])
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Updated todo %s", updated.ShortID())))
		return nil
	},
}

func openEditor(initial string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmpFile, err := os.CreateTemp("", "todo-*.md")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name()) // Best-effort cleanup
	}()

	if _, err := tmpFile.WriteString(initial); err != nil {
		_ = tmpFile.Close()
		return "", fmt.Errorf("failed to write initial text: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editor, tmpFile.Name()) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func init() {
	rootCmd.AddCommand(editCmd)
}
