package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string    `toml:"-"`
	Store    StoreConfig `toml:"store"`
	Git      GitConfig   `toml:"git"`
	Log      LogConfig   `toml:"log"`
	UI       UIConfig    `toml:"ui"`
}

// StoreConfig holds settings from the [store] section.
type StoreConfig struct {
	Backend string `toml:"backend,omitempty"` // "sqlite" (default), "json" or "git"
	Path    string `toml:"path,omitempty"`    // Database or JSON file (default: <data dir>/tasks.db)
}

// GitConfig holds settings for the git backend from the [git] section.
type GitConfig struct {
	Repo      string `toml:"repo,omitempty"`      // Repository path (default: current directory)
	Namespace string `toml:"namespace,omitempty"` // Ref namespace (default: "taskman")
}

// LogConfig holds settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// UIConfig holds TUI settings from the [ui] section.
type UIConfig struct {
	ConfirmDelete bool `toml:"confirm_delete"` // Ask before deleting selected tasks
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
	BackendGit    = "git"
)

// Default configuration values.
const (
	DefaultLogLevel     = "info"
	DefaultGitNamespace = "taskman"
)

// Directory and file names for taskman.
const (
	AppDirName          = "taskman"       // Directory name under the XDG config/data homes
	ConfigFileName      = "config.toml"   // Global config file name
	LocalConfigFileName = ".taskman.toml" // Config file name in the working directory
	SQLiteFileName      = "tasks.db"      // Default SQLite database
	JSONFileName        = "tasks.json"    // Default JSON store
	LogFileName         = "taskman.log"   // Log file name
)

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// LocalConfigPath returns the config path inside dir.
func LocalConfigPath(dir string) string {
	return filepath.Join(dir, LocalConfigFileName)
}

// DataDir returns the data directory under dataHome
// (typically XDG_DATA_HOME or ~/.local/share).
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, AppDirName)
}

// LogPath returns the path of the log file inside dataDir.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", LogFileName)
}

// DefaultStorePath returns the default store file for a backend.
// The git backend keeps its data in the repository and has no file.
func DefaultStorePath(dataDir, backend string) string {
	switch backend {
	case BackendJSON:
		return filepath.Join(dataDir, JSONFileName)
	case BackendGit:
		return ""
	default:
		return filepath.Join(dataDir, SQLiteFileName)
	}
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendSQLite,
		},
		Git: GitConfig{
			Namespace: DefaultGitNamespace,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		UI: UIConfig{
			ConfirmDelete: true,
		},
	}
}

// IsValidBackend reports whether name is a supported store backend.
func IsValidBackend(name string) bool {
	switch name {
	case BackendSQLite, BackendJSON, BackendGit:
		return true
	default:
		return false
	}
}

// RenderConfigTemplate renders the commented config template with values from cfg.
func RenderConfigTemplate(cfg *Config) string {
	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
