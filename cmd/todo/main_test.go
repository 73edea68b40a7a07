// ABOUTME: End-to-end tests driving the CLI against a temporary SQLite store.
// ABOUTME: Each run re-opens the store the way separate invocations would.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/validate"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t  *testing.T
	db string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	return &cli{t: t, db: filepath.Join(t.TempDir(), "todo.db")}
}

// resetFlags restores every flag to its default so runs do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func (c *cli) runWithInput(input string, args ...string) (string, error) {
	c.t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(append([]string{"--store", "sqlite", "--db", c.db, "--log-level", "error"}, args...))

	err := Execute(context.Background())
	return out.String(), err
}

func (c *cli) run(args ...string) string {
	c.t.Helper()
	out, err := c.runWithInput("", args...)
	require.NoError(c.t, err, out)
	return out
}

func (c *cli) todos() []*models.Todo {
	c.t.Helper()
	var todos []*models.Todo
	require.NoError(c.t, json.Unmarshal([]byte(c.run("list", "--json")), &todos))
	return todos
}

var shortIDPattern = regexp.MustCompile(`Created todo ([0-9a-f]{6})`)

func TestAddListDoneRemove(t *testing.T) {
	c := newCLI(t)

	out := c.run("add", "Buy", "milk")
	match := shortIDPattern.FindStringSubmatch(out)
	require.Len(t, match, 2, out)
	short := match[1]

	todos := c.todos()
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy milk", todos[0].TextBody)
	assert.True(t, strings.HasSuffix(todos[0].ID, short))

	out = c.run("list")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "1 open, 0 done")

	out = c.run("done", short)
	assert.Contains(t, out, "Completed todo "+short)
	assert.True(t, c.todos()[0].IsComplete)

	out = c.run("done", short)
	assert.Contains(t, out, "Reopened todo "+short)

	out = c.run("edit", short, "Buy", "oat", "milk")
	assert.Contains(t, out, "Updated todo "+short)
	assert.Equal(t, "Buy oat milk", c.todos()[0].TextBody)

	out = c.run("show", todos[0].ID)
	assert.Contains(t, out, todos[0].ID)

	out, err := c.runWithInput("n\n", "rm", short)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Len(t, c.todos(), 1)

	out, err = c.runWithInput("y\n", "rm", short)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted todo "+short)
	assert.Empty(t, c.todos())
}

func TestAddRejectsLongText(t *testing.T) {
	c := newCLI(t)

	_, err := c.runWithInput("", "add", strings.Repeat("x", 256))
	assert.Error(t, err)
	assert.Empty(t, c.todos())
}

func TestMissingTodoFails(t *testing.T) {
	c := newCLI(t)

	_, err := c.runWithInput("", "show", "507f1f77bcf86cd799439011")
	assert.ErrorIs(t, err, errTodoNotFound)

	_, err = c.runWithInput("", "done", "507f1f77bcf86cd799439011")
	assert.ErrorIs(t, err, errTodoNotFound)

	_, err = c.runWithInput("", "rm", "-f", "abcdef")
	assert.Error(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	c := newCLI(t)
	c.run("add", "first")
	c.run("add", "second")
	c.run("done", c.todos()[1].ID)

	for _, name := range []string{"todos.json", "todos.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			format := strings.TrimPrefix(filepath.Ext(name), ".")
			src := &cli{t: t, db: c.db}
			src.run("export", "--format", format, "--output", path)

			_, err := os.Stat(path)
			require.NoError(t, err)

			target := &cli{t: t, db: filepath.Join(t.TempDir(), "import.db")}
			out := target.run("import", path)
			assert.Contains(t, out, "Imported 2 todos")

			todos := target.todos()
			require.Len(t, todos, 2)
			assert.Equal(t, "first", todos[0].TextBody)
			assert.False(t, todos[0].IsComplete)
			assert.Equal(t, "second", todos[1].TextBody)
			assert.True(t, todos[1].IsComplete)
		})
	}
}

func TestImportRejectsInvalidFileWithoutWriting(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(t.TempDir(), "todos.json")
	data := `{"version":"1.0","todos":[` +
		`{"id":"507f1f77bcf86cd799439011","textBody":"fine"},` +
		`{"id":"507f1f77bcf86cd799439012","textBody":"` + strings.Repeat("x", 256) + `"},` +
		`{"id":"507f1f77bcf86cd799439013","textBody":"never reached"}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := c.runWithInput("", "import", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrInvalidTextBody)
	assert.Contains(t, err.Error(), "todo 2 (507f1f77bcf86cd799439012)")
	assert.Empty(t, c.todos())
}

func TestCheckExportRejectsNullEntry(t *testing.T) {
	err := checkExport(&ExportData{Todos: []*models.Todo{models.NewTodo("ok"), nil}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "todo 2 is empty")

	assert.NoError(t, checkExport(&ExportData{Todos: []*models.Todo{models.NewTodo("ok")}}))
}

func TestConfigCommands(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	out := c.run("config", "init", "--config", path)
	assert.Contains(t, out, "Wrote "+path)

	_, err := c.runWithInput("", "config", "init", "--config", path)
	assert.Error(t, err, "init must not overwrite without --force")

	out = c.run("config", "--config", path)
	assert.Contains(t, out, "backend: sqlite")
	assert.Contains(t, out, "4000")
}
