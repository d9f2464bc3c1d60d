// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/runoshun/taskman/internal/controller"
	"github.com/runoshun/taskman/internal/domain"
	"github.com/runoshun/taskman/internal/infra/config"
	"github.com/runoshun/taskman/internal/infra/gitstore"
	"github.com/runoshun/taskman/internal/infra/jsonstore"
	"github.com/runoshun/taskman/internal/infra/logging"
	"github.com/runoshun/taskman/internal/infra/sqlitestore"
	"github.com/runoshun/taskman/internal/usecase"
)

// Config holds the resolved application paths.
type Config struct {
	WorkDir   string // Directory searched for .taskman.toml (and the default git repo)
	DataDir   string // Directory for the default store and logs
	Backend   string // Store backend in use
	StorePath string // Store file; empty for the git backend
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks            domain.TaskRepository
	StoreInitializer domain.StoreInitializer
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager
	Logger           domain.Logger

	// Loaded settings
	AppConfig *domain.Config

	closers []io.Closer

	// Configuration
	Config Config
}

// New creates a Container for the working directory dir.
// Configuration is loaded here; the store is opened later by OpenStore so
// that command-line overrides can apply.
func New(dir string) (*Container, error) {
	dataDir, err := defaultDataDir()
	if err != nil {
		return nil, err
	}

	configLoader := config.NewLoader(dir)
	appConfig, err := configLoader.Load()
	if err != nil {
		// Keep running on defaults so that `config --init` can repair things
		appConfig = domain.NewDefaultConfig()
		appConfig.Warnings = append(appConfig.Warnings, err.Error())
	}

	logger := logging.New(dataDir, logging.ParseLevel(appConfig.Log.Level))

	return &Container{
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dir),
		Logger:        logger,
		AppConfig:     appConfig,
		closers:       []io.Closer{logger},
		Config: Config{
			WorkDir: dir,
			DataDir: dataDir,
			Backend: appConfig.Store.Backend,
		},
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, tasks domain.TaskRepository, storeInit domain.StoreInitializer, logger domain.Logger) *Container {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Container{
		Tasks:            tasks,
		StoreInitializer: storeInit,
		Logger:           logger,
		AppConfig:        domain.NewDefaultConfig(),
		Config:           cfg,
	}
}

// defaultDataDir returns $XDG_DATA_HOME/taskman or ~/.local/share/taskman.
func defaultDataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return domain.DataDir(dataHome), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return domain.DataDir(filepath.Join(home, ".local", "share")), nil
}

// OpenStore opens the configured task store.
// storePath, when non-empty, overrides store.path from the config.
// Calling OpenStore on a container that already has a store is a no-op.
func (c *Container) OpenStore(storePath string) error {
	if c.Tasks != nil {
		return nil
	}

	backend := c.AppConfig.Store.Backend
	if backend == "" {
		backend = domain.BackendSQLite
	}

	path := storePath
	if path == "" {
		path = c.AppConfig.Store.Path
	}
	if path == "" {
		path = domain.DefaultStorePath(c.Config.DataDir, backend)
	}

	switch backend {
	case domain.BackendSQLite:
		store, err := sqlitestore.Open(path)
		if err != nil {
			return err
		}
		c.Tasks = store
		c.StoreInitializer = store
		c.closers = append(c.closers, store)

	case domain.BackendJSON:
		store := jsonstore.New(path)
		c.Tasks = store
		c.StoreInitializer = store

	case domain.BackendGit:
		repo := c.AppConfig.Git.Repo
		if repo == "" {
			repo = c.Config.WorkDir
		}
		store, err := gitstore.New(repo, c.AppConfig.Git.Namespace)
		if err != nil {
			return err
		}
		c.Tasks = store
		c.StoreInitializer = store
		path = ""

	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownBackend, backend)
	}

	c.Config.Backend = backend
	c.Config.StorePath = path
	c.Logger.Debug(0, "app", fmt.Sprintf("opened %s store %s", backend, path))
	return nil
}

// Close releases the store and the log file.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// UseCase factory methods

// InitStoreUseCase returns a new InitStore use case.
func (c *Container) InitStoreUseCase() *usecase.InitStore {
	return usecase.NewInitStore(c.StoreInitializer, c.Logger)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Tasks, c.Logger)
}

// CreateTasksFromFileUseCase returns a new CreateTasksFromFile use case.
func (c *Container) CreateTasksFromFileUseCase() *usecase.CreateTasksFromFile {
	return usecase.NewCreateTasksFromFile(c.Tasks, c.Logger)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Tasks)
}

// ChangeStatusUseCase returns a new ChangeStatus use case.
func (c *Container) ChangeStatusUseCase() *usecase.ChangeStatus {
	return usecase.NewChangeStatus(c.Tasks, c.Logger)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Tasks, c.Logger)
}

// DeleteTasksUseCase returns a new DeleteTasks use case.
func (c *Container) DeleteTasksUseCase() *usecase.DeleteTasks {
	return usecase.NewDeleteTasks(c.Tasks, c.Logger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigLoader, c.ConfigManager)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// Controller returns a new Controller for interactive front ends.
func (c *Container) Controller() *controller.Controller {
	return controller.New(controller.UseCases{
		NewTask:      c.NewTaskUseCase(),
		ListTasks:    c.ListTasksUseCase(),
		ShowTask:     c.ShowTaskUseCase(),
		ChangeStatus: c.ChangeStatusUseCase(),
		EditTask:     c.EditTaskUseCase(),
		DeleteTasks:  c.DeleteTasksUseCase(),
	}, c.Logger)
}
