// Package sqlitestore provides a SQLite implementation of TaskRepository.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/runoshun/taskman/internal/domain"
)

// Ensure Store implements the domain ports.
var (
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

const schema = `CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'active'
)`

// Store implements domain.TaskRepository on a single SQLite table.
//
// The pool is capped at one connection and writes go through mu, so a
// toggle always reads and writes the same committed row.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// Open opens (or creates) the database file at path.
// The schema is not created until Initialize is called.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// IsInitialized reports whether the tasks table exists.
func (s *Store) IsInitialized() bool {
	var name string
	err := s.db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`).Scan(&name)
	return err == nil
}

// Initialize creates the tasks table if it does not exist.
// Returns true if the table was created.
func (s *Store) Initialize() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existed := s.IsInitialized()
	if _, err := s.db.Exec(schema); err != nil {
		return false, fmt.Errorf("create tasks table: %w", err)
	}
	return !existed, nil
}

// Create inserts a new active task and returns its ID.
func (s *Store) Create(description string) (int, error) {
	description, err := domain.NormalizeDescription(description)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	err = s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`INSERT INTO tasks (description, status) VALUES (?, ?)`, description, string(domain.StatusActive))
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("read task id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// List returns all tasks ordered by ID.
func (s *Store) List() ([]*domain.Task, error) {
	rows, err := s.db.Query(`SELECT id, description, status FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		var status string
		if err := rows.Scan(&task.ID, &task.Description, &status); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		task.Status = domain.Status(status)
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// Get retrieves a task by ID.
func (s *Store) Get(id int) (*domain.Task, error) {
	task := domain.Task{ID: id}
	var status string
	err := s.db.QueryRow(`SELECT description, status FROM tasks WHERE id = ?`, id).Scan(&task.Description, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query task: %w", err)
	}
	task.Status = domain.Status(status)
	return &task, nil
}

// SetStatus sets or toggles the status of each task in ids.
func (s *Store) SetStatus(ids []int, status *domain.Status) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withTx(func(tx *sql.Tx) error {
		for _, id := range domain.UniqueIDs(ids) {
			var current string
			err := tx.QueryRow(`SELECT status FROM tasks WHERE id = ?`, id).Scan(&current)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("task #%d: %w", id, domain.ErrTaskNotFound)
			}
			if err != nil {
				return fmt.Errorf("query status: %w", err)
			}

			next := domain.Status(current).Toggle()
			if status != nil {
				next = *status
			}
			if _, err := tx.Exec(`UPDATE tasks SET status = ? WHERE id = ?`, string(next), id); err != nil {
				return fmt.Errorf("update status: %w", err)
			}
		}
		return nil
	})
}

// Update overwrites description and status of a task.
func (s *Store) Update(id int, description string, status domain.Status) error {
	description, err := domain.NormalizeDescription(description)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE tasks SET description = ?, status = ? WHERE id = ?`, description, string(status), id)
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		if n == 0 {
			return domain.ErrTaskNotFound
		}
		return nil
	})
}

// Delete removes the given tasks. Missing IDs are ignored.
func (s *Store) Delete(ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withTx(func(tx *sql.Tx) error {
		for _, id := range ids {
			if _, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id); err != nil {
				return fmt.Errorf("delete task: %w", err)
			}
		}
		return nil
	})
}

// withTx runs fn in a transaction, committing on success.
func (s *Store) withTx(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
