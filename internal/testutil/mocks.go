// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/runoshun/taskman/internal/domain"
)

// MockTaskRepository is an in-memory domain.TaskRepository.
// Each *Err field, when set, makes the matching method fail without side effects.
// Fields are ordered to minimize memory padding.
type MockTaskRepository struct {
	Tasks        map[int]*domain.Task
	CreateErr    error
	ListErr      error
	GetErr       error
	SetStatusErr error
	UpdateErr    error
	DeleteErr    error
	NextIDN      int
	CreateCalls  int
	ListCalls    int
	mu           sync.Mutex
}

// Ensure MockTaskRepository implements domain.TaskRepository interface.
var _ domain.TaskRepository = (*MockTaskRepository)(nil)

// NewMockTaskRepository creates a new MockTaskRepository with initialized maps.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		Tasks:   make(map[int]*domain.Task),
		NextIDN: 1,
	}
}

// Seed stores tasks with the given descriptions as active tasks and returns their IDs.
func (m *MockTaskRepository) Seed(descriptions ...string) []int {
	ids := make([]int, 0, len(descriptions))
	for _, d := range descriptions {
		id, _ := m.Create(d)
		ids = append(ids, id)
	}
	return ids
}

// Create inserts a new active task.
func (m *MockTaskRepository) Create(description string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	description, err := domain.NormalizeDescription(description)
	if err != nil {
		return 0, err
	}
	id := m.NextIDN
	m.NextIDN++
	m.Tasks[id] = &domain.Task{ID: id, Description: description, Status: domain.StatusActive}
	return id, nil
}

// List returns copies of all tasks ordered by ID.
func (m *MockTaskRepository) List() ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, id := range slices.Sorted(maps.Keys(m.Tasks)) {
		tasks = append(tasks, m.Tasks[id].Clone())
	}
	return tasks, nil
}

// Get returns a copy of the task.
func (m *MockTaskRepository) Get(id int) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	task, ok := m.Tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return task.Clone(), nil
}

// SetStatus sets or toggles the status of each task.
func (m *MockTaskRepository) SetStatus(ids []int, status *domain.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SetStatusErr != nil {
		return m.SetStatusErr
	}
	ids = domain.UniqueIDs(ids)
	for _, id := range ids {
		if _, ok := m.Tasks[id]; !ok {
			return fmt.Errorf("task #%d: %w", id, domain.ErrTaskNotFound)
		}
	}
	for _, id := range ids {
		t := m.Tasks[id]
		if status != nil {
			t.Status = *status
		} else {
			t.Status = t.Status.Toggle()
		}
	}
	return nil
}

// Update overwrites description and status.
func (m *MockTaskRepository) Update(id int, description string, status domain.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	description, err := domain.NormalizeDescription(description)
	if err != nil {
		return err
	}
	t, ok := m.Tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.Description = description
	t.Status = status
	return nil
}

// Delete removes tasks; missing IDs are ignored.
func (m *MockTaskRepository) Delete(ids []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for _, id := range ids {
		delete(m.Tasks, id)
	}
	return nil
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitErr     error
	Initialized bool
	InitCalls   int
}

// Ensure MockStoreInitializer implements domain.StoreInitializer interface.
var _ domain.StoreInitializer = (*MockStoreInitializer)(nil)

// Initialize marks the store as initialized.
func (m *MockStoreInitializer) Initialize() (bool, error) {
	m.InitCalls++
	if m.InitErr != nil {
		return false, m.InitErr
	}
	created := !m.Initialized
	m.Initialized = true
	return created, nil
}

// IsInitialized returns the initialized flag.
func (m *MockStoreInitializer) IsInitialized() bool {
	return m.Initialized
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
	GlobalErr    error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured global config, falling back to Config.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	if m.GlobalConfig != nil {
		return m.GlobalConfig, nil
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitGlobalErr    error
	InitConfig       *domain.Config
	GlobalInfo       domain.ConfigInfo
	LocalInfo        domain.ConfigInfo
	InitGlobalCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		GlobalInfo: domain.ConfigInfo{Path: "/home/test/.config/taskman/config.toml"},
		LocalInfo:  domain.ConfigInfo{Path: "/work/.taskman.toml"},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GlobalConfigInfo returns the configured global info.
func (m *MockConfigManager) GlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalInfo
}

// LocalConfigInfo returns the configured local info.
func (m *MockConfigManager) LocalConfigInfo() domain.ConfigInfo {
	return m.LocalInfo
}

// InitGlobalConfig records the call and returns InitGlobalErr.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	m.InitGlobalCalled = true
	m.InitConfig = cfg
	return m.InitGlobalErr
}

// LogEntry is a single entry captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	TaskID   int
}

// MockLogger records log entries in memory.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(level string, taskID int, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Info records an info entry.
func (m *MockLogger) Info(taskID int, category, msg string) { m.record("INFO", taskID, category, msg) }

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID int, category, msg string) { m.record("DEBUG", taskID, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(taskID int, category, msg string) { m.record("WARN", taskID, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(taskID int, category, msg string) { m.record("ERROR", taskID, category, msg) }

// Levels returns the level of every recorded entry in order.
func (m *MockLogger) Levels() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	levels := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		levels = append(levels, e.Level)
	}
	return levels
}
