// ABOUTME: Root command wiring configuration, logging, storage and the service.
// ABOUTME: Every subcommand shares the store opened in PersistentPreRunE.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harper/todo/internal/config"
	"github.com/harper/todo/internal/logging"
	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/service"
	"github.com/harper/todo/internal/store"
	"github.com/spf13/cobra"

	_ "github.com/harper/todo/internal/store/badgerdb"
	_ "github.com/harper/todo/internal/store/memory"
	_ "github.com/harper/todo/internal/store/mongodb"
	_ "github.com/harper/todo/internal/store/sqlite"
)

// Annotations marking commands that run without the store, or without any config.
const (
	skipStore  = "skip-store"
	skipConfig = "skip-config"
)

var errTodoNotFound = errors.New("todo not found")

var (
	cfgPath      string
	storeBackend string
	dbPath       string
	logLevel     string

	appCfg    *config.Config
	logger    *log.Logger
	todoStore store.Store
	todoSvc   *service.Service
)

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "A todo list with a REST API",
	Long: `Todo keeps a list of short text items with a completion flag.

Run "todo serve" for the HTTP API, "todo mcp" for AI agents, or use the
subcommands directly from the terminal.

Examples:
  todo add "Buy milk"
  todo list
  todo done 439011
  todo serve --addr :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $XDG_CONFIG_HOME/todo/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "store backend: memory, badger, sqlite or mongo")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "badger directory or sqlite file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// Execute runs the root command with ctx and closes the store afterwards,
// whether or not the command failed.
func Execute(ctx context.Context) error {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := closeStore(); err == nil {
		err = closeErr
	}
	return err
}

func setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipConfig] == "true" || cmd.Name() == "help" {
		return nil
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if storeBackend != "" {
		cfg.Store.Backend = storeBackend
	}
	if dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appCfg = cfg
	logger = logging.New(cfg.Log)

	if cmd.Annotations[skipStore] == "true" {
		return nil
	}

	todoStore, err = store.Open(cmd.Context(), cfg.Store)
	if err != nil {
		return err
	}
	logger.Debug("opened store", "backend", cfg.Store.Backend)

	todoSvc = service.New(todoStore, service.WithLogger(logger))
	return nil
}

func closeStore() error {
	if todoStore == nil {
		return nil
	}
	err := todoStore.Close()
	todoStore = nil
	todoSvc = nil
	if err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}

// findTodo resolves ref and loads the todo it names.
func findTodo(ctx context.Context, ref string) (*models.Todo, error) {
	id, err := todoSvc.ResolveID(ctx, ref)
	if err != nil {
		return nil, err
	}
	todo, err := todoSvc.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, fmt.Errorf("%w: %s", errTodoNotFound, ref)
	}
	return todo, nil
}
