// Package jsonstore provides a JSON file-based implementation of TaskRepository.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"syscall"

	"github.com/runoshun/taskman/internal/domain"
)

// Ensure Store implements the domain ports.
var (
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

// storeData represents the JSON file structure.
type storeData struct {
	Tasks map[string]*taskData `json:"tasks"`
	Meta  meta                 `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	NextTaskID int `json:"nextTaskID"`
}

// taskData is the JSON representation of a task (without ID, which is the map key).
type taskData = domain.Task

// Store implements domain.TaskRepository using a JSON file.
// Every operation reads the whole file under a flock; writes replace it atomically.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; Initialize creates it.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Create inserts a new active task and returns its ID.
func (s *Store) Create(description string) (int, error) {
	description, err := domain.NormalizeDescription(description)
	if err != nil {
		return 0, err
	}

	var id int
	err = s.withLockWrite(func(data *storeData) error {
		id = data.Meta.NextTaskID
		data.Meta.NextTaskID++
		data.Tasks[strconv.Itoa(id)] = &taskData{
			Description: description,
			Status:      domain.StatusActive,
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// List returns all tasks ordered by ID.
func (s *Store) List() ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := s.withLock(func(data *storeData) error {
		for key, t := range data.Tasks {
			id, err := strconv.Atoi(key)
			if err != nil {
				continue // Skip malformed keys
			}
			t.ID = id
			tasks = append(tasks, t)
		}
		return nil
	})

	// Sort by ID for consistent ordering
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return a.ID - b.ID
	})

	return tasks, err
}

// Get retrieves a task by ID.
func (s *Store) Get(id int) (*domain.Task, error) {
	var task *domain.Task
	err := s.withLock(func(data *storeData) error {
		t, ok := data.Tasks[strconv.Itoa(id)]
		if !ok {
			return domain.ErrTaskNotFound
		}
		task = t
		task.ID = id
		return nil
	})
	return task, err
}

// SetStatus sets or toggles the status of each task in ids.
func (s *Store) SetStatus(ids []int, status *domain.Status) error {
	if len(ids) == 0 {
		return nil
	}
	return s.withLockWrite(func(data *storeData) error {
		for _, id := range domain.UniqueIDs(ids) {
			t, ok := data.Tasks[strconv.Itoa(id)]
			if !ok {
				return fmt.Errorf("task #%d: %w", id, domain.ErrTaskNotFound)
			}
			if status != nil {
				t.Status = *status
			} else {
				t.Status = t.Status.Toggle()
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
	return s.withLockWrite(func(data *storeData) error {
		t, ok := data.Tasks[strconv.Itoa(id)]
		if !ok {
			return domain.ErrTaskNotFound
		}
		t.Description = description
		t.Status = status
		return nil
	})
}

// Delete removes the given tasks. Missing IDs are ignored.
func (s *Store) Delete(ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	return s.withLockWrite(func(data *storeData) error {
		for _, id := range ids {
			delete(data.Tasks, strconv.Itoa(id))
		}
		return nil
	})
}

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates an empty store file if it doesn't exist.
// Returns true if the file was created.
func (s *Store) Initialize() (bool, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("create directory: %w", err)
	}

	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return false, err
	}
	defer s.releaseLock(lock)

	if _, err := os.Stat(s.path); err == nil {
		return false, nil // Already exists
	}

	data := &storeData{
		Meta:  meta{NextTaskID: 1},
		Tasks: make(map[string]*taskData),
	}
	if err := s.write(data); err != nil {
		return false, err
	}
	return true, nil
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
// Nothing is written if fn returns an error.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}

	if data.Tasks == nil {
		data.Tasks = make(map[string]*taskData)
	}
	if data.Meta.NextTaskID < 1 {
		data.Meta.NextTaskID = nextIDFromTasks(data.Tasks)
	}

	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// nextIDFromTasks returns max(existing ID)+1, or 1 for an empty map.
func nextIDFromTasks(tasks map[string]*taskData) int {
	maxID := 0
	for key := range tasks {
		if id, err := strconv.Atoi(key); err == nil && id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}
