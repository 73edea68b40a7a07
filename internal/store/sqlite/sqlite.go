// ABOUTME: SQLite-backed todo store using the pure-Go modernc driver.
// ABOUTME: Handles schema creation and ordered, transactional CRUD.

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harper/todo/internal/config"
	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/store"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS todos (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT UNIQUE NOT NULL,
    text_body TEXT NOT NULL CHECK (length(text_body) BETWEEN 1 AND 255),
    is_complete INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);
`

const selectColumns = `SELECT id, text_body, is_complete, created_at, updated_at FROM todos`

func init() {
	store.Register(config.BackendSQLite, func(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
		return Open(ctx, cfg.ResolvedPath())
	})
}

// Store implements store.Store on a SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating the file and schema if needed.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection serialises writers and keeps read-modify-write transactions simple.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(row scanner) (*models.Todo, error) {
	todo := &models.Todo{}
	err := row.Scan(&todo.ID, &todo.TextBody, &todo.IsComplete, &todo.CreatedAt, &todo.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *Store) Insert(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	stored := todo.Clone()
	stored.Stamp()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (id, text_body, is_complete, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		stored.ID, stored.TextBody, stored.IsComplete, stored.CreatedAt, stored.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return stored, nil
}

func (s *Store) FindAll(ctx context.Context) ([]*models.Todo, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	todos := make([]*models.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return todos, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	return scanTodo(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
}

func (s *Store) UpdateByID(ctx context.Context, id string, patch store.Patch) (*models.Todo, error) {
	var updated *models.Todo
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		todo, err := scanTodo(tx.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
		if err != nil {
			return err
		}
		patch.Apply(todo)

		if _, err := tx.ExecContext(ctx,
			`UPDATE todos SET text_body = ?, is_complete = ?, updated_at = ? WHERE id = ?`,
			todo.TextBody, todo.IsComplete, todo.UpdatedAt, id,
		); err != nil {
			return fmt.Errorf("update todo: %w", err)
		}
		updated = todo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) (*models.Todo, error) {
	var deleted *models.Todo
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		todo, err := scanTodo(tx.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete todo: %w", err)
		}
		deleted = todo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
