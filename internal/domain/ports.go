package domain

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	// Returns true if anything was created.
	Initialize() (bool, error)

	// IsInitialized reports whether the store already exists.
	IsInitialized() bool
}

// TaskRepository manages task persistence.
// Every mutating method commits before it returns.
type TaskRepository interface {
	// Create inserts a new active task and returns its ID.
	// The description is trimmed; a blank one returns ErrEmptyDescription.
	Create(description string) (int, error)

	// List returns all tasks ordered by ID.
	List() ([]*Task, error)

	// Get retrieves a task by ID. Returns ErrTaskNotFound if absent.
	Get(id int) (*Task, error)

	// SetStatus changes the status of every task in ids.
	// ids is a set: a repeated ID is changed once.
	// A nil status flips each task from its own current status.
	// If any ID is missing nothing is written and ErrTaskNotFound is returned.
	SetStatus(ids []int, status *Status) error

	// Update overwrites description and status. Returns ErrTaskNotFound if absent
	// and ErrEmptyDescription for a blank description.
	Update(id int, description string, status Status) error

	// Delete removes the given tasks. Missing IDs are ignored.
	Delete(ids []int) error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (default <- global <- local).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager writes configuration files.
type ConfigManager interface {
	// GlobalConfigInfo returns information about the global config file.
	GlobalConfigInfo() ConfigInfo

	// LocalConfigInfo returns information about the local config file.
	LocalConfigInfo() ConfigInfo

	// InitGlobalConfig writes the config template rendered from cfg to the global path.
	// Returns ErrConfigExists if the file is already there.
	InitGlobalConfig(cfg *Config) error
}

// Logger writes operational logs.
// taskID 0 means the entry is not tied to a single task.
type Logger interface {
	Info(taskID int, category, msg string)
	Debug(taskID int, category, msg string)
	Warn(taskID int, category, msg string)
	Error(taskID int, category, msg string)
}

// NopLogger discards all log entries.
type NopLogger struct{}

func (NopLogger) Info(int, string, string)  {}
func (NopLogger) Debug(int, string, string) {}
func (NopLogger) Warn(int, string, string)  {}
func (NopLogger) Error(int, string, string) {}
