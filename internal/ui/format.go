// ABOUTME: Terminal UI formatting for todo output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/todo/internal/models"
)

const timeLayout = "2006-01-02 15:04"

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

// CheckMark renders the completion state of a todo.
func CheckMark(done bool) string {
	if done {
		return green("[x]")
	}
	return faint("[ ]")
}

func FormatTodoListItem(todo *models.Todo) string {
	var sb strings.Builder

	text := bold(todo.TextBody)
	if todo.IsComplete {
		text = faint(todo.TextBody)
	}
	sb.WriteString(fmt.Sprintf("  %s  %s %s\n", faint(todo.ShortID()), CheckMark(todo.IsComplete), text))
	sb.WriteString(fmt.Sprintf("              %s %s\n",
		faint("Updated:"),
		faint(todo.UpdatedAt.Local().Format(timeLayout))))

	return sb.String()
}

// FormatTextBody renders a text body as markdown, falling back to the raw text.
func FormatTextBody(text string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return text, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(text)
	if err != nil {
		return text, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatTodoHeader(todo *models.Todo) string {
	var sb strings.Builder

	status := "open"
	if todo.IsComplete {
		status = "done"
	}

	sb.WriteString(fmt.Sprintf("%s %s\n", CheckMark(todo.IsComplete), bold(status)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(todo.ID)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(todo.CreatedAt.Local().Format(timeLayout))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(todo.UpdatedAt.Local().Format(timeLayout))))

	sb.WriteString(Separator())
	return sb.String()
}

// FormatSummary reports how many todos are open and done.
func FormatSummary(todos []*models.Todo) string {
	done := 0
	for _, todo := range todos {
		if todo.IsComplete {
			done++
		}
	}
	return faint(fmt.Sprintf("\n%d open, %d done\n", len(todos)-done, done))
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}
