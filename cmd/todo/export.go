// ABOUTME: Export and import commands for backing up todos.
// ABOUTME: Supports JSON and YAML documents in either direction.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/service"
	"github.com/harper/todo/internal/ui"
	"github.com/harper/todo/internal/validate"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const exportVersion = "1.0"

type ExportData struct {
	ExportedAt time.Time      `json:"exported_at" yaml:"exported_at"`
	Version    string         `json:"version" yaml:"version"`
	Todos      []*models.Todo `json:"todos" yaml:"todos"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export todos",
	Long:  `Export all todos to JSON or YAML.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		todos, err := todoSvc.ReadAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list todos: %w", err)
		}

		data, err := encodeExport(ExportData{
			ExportedAt: time.Now().UTC(),
			Version:    exportVersion,
			Todos:      todos,
		}, format)
		if err != nil {
			return err
		}

		if outputPath == "" || outputPath == "-" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}

		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Exported %d todos to %s", len(todos), outputPath)))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import todos",
	Long: `Import todos from an export file. Todos get new ids; completion is kept.

Every entry is validated before anything is written, so a bad file imports nothing.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		var r io.Reader = cmd.InOrStdin()
		if path != "-" {
			f, err := os.Open(path) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to open export: %w", err)
			}
			defer func() { _ = f.Close() }()
			r = f
		}

		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}

		export, err := decodeExport(data, formatFromPath(path))
		if err != nil {
			return err
		}

		if err := checkExport(export); err != nil {
			return fmt.Errorf("nothing imported: %w", err)
		}

		ctx := cmd.Context()
		total := len(export.Todos)
		for i, t := range export.Todos {
			todo, err := todoSvc.Create(ctx, t.TextBody)
			if err != nil {
				return fmt.Errorf("imported %d of %d todos, then todo %s failed: %w", i, total, t.ID, err)
			}
			if t.IsComplete {
				if _, err := todoSvc.Update(ctx, todo.ID, service.ToggleComplete{}); err != nil {
					return fmt.Errorf("imported %d of %d todos, then completing %s failed: %w", i+1, total, todo.ID, err)
				}
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Imported %d todos", len(export.Todos))))
		return nil
	},
}

func encodeExport(export ExportData, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(export)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func decodeExport(data []byte, format string) (*ExportData, error) {
	var export ExportData
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &export)
	default:
		err = json.Unmarshal(data, &export)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}
	return &export, nil
}

// checkExport validates every entry up front. Entries are numbered from 1.
func checkExport(export *ExportData) error {
	for i, t := range export.Todos {
		if t == nil {
			return fmt.Errorf("todo %d is empty", i+1)
		}
		if err := validate.TextBody(t.TextBody); err != nil {
			return fmt.Errorf("todo %d (%s): %w", i+1, t.ID, err)
		}
	}
	return nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func init() {
	exportCmd.Flags().String("format", "json", "export format: json or yaml")
	exportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
