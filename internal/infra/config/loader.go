// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/taskman/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	localDir      string // Directory holding .taskman.toml (usually the working directory)
	globalConfDir string // Path to global config directory (e.g., ~/.config/taskman)
}

// NewLoader creates a new Loader.
func NewLoader(localDir string) *Loader {
	return &Loader{
		localDir:      localDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(localDir, globalConfDir string) *Loader {
	return &Loader{
		localDir:      localDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration (default <- global <- local).
// Local config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.loadGlobalFile()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.loadLocalFile()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		global.applyTo(base)
	}
	if local != nil {
		local.applyTo(base)
	}
	return base, nil
}

// LoadGlobal returns the defaults overlaid with the global configuration only.
// Returns os.ErrNotExist if there is no global config file.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	global, err := l.loadGlobalFile()
	if err != nil {
		return nil, err
	}
	base := domain.NewDefaultConfig()
	global.applyTo(base)
	return base, nil
}

func (l *Loader) loadGlobalFile() (*fileConfig, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

func (l *Loader) loadLocalFile() (*fileConfig, error) {
	if l.localDir == "" {
		return nil, os.ErrNotExist
	}
	return loadFile(domain.LocalConfigPath(l.localDir))
}

// fileConfig holds the values set by a single config file.
// Unset keys stay zero (nil for booleans) so they do not override lower layers.
type fileConfig struct {
	confirmDelete *bool
	path          string
	backend       string
	storePath     string
	gitRepo       string
	gitNamespace  string
	logLevel      string
	warnings      []string
}

// loadFile loads a configuration from a file.
func loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	fc := convertRaw(raw)
	fc.path = path
	return fc, nil
}

// convertRaw converts the raw map to a fileConfig and collects warnings.
func convertRaw(raw map[string]any) *fileConfig {
	res := &fileConfig{}
	var warnings []string

	invalid := func(section, key string, v any) {
		warnings = append(warnings, fmt.Sprintf("invalid value for [%s].%s: %v", section, key, v))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}

		switch section {
		case "store":
			for k, v := range m {
				switch k {
				case "backend":
					if s, ok := v.(string); ok && domain.IsValidBackend(s) {
						res.backend = s
					} else {
						invalid(section, k, v)
					}
				case "path":
					if s, ok := v.(string); ok {
						res.storePath = s
					} else {
						invalid(section, k, v)
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [store]: %s", k))
				}
			}
		case "git":
			for k, v := range m {
				switch k {
				case "repo":
					if s, ok := v.(string); ok {
						res.gitRepo = s
					} else {
						invalid(section, k, v)
					}
				case "namespace":
					if s, ok := v.(string); ok {
						res.gitNamespace = s
					} else {
						invalid(section, k, v)
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [git]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.logLevel = s
					} else {
						invalid(section, k, v)
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		case "ui":
			for k, v := range m {
				switch k {
				case "confirm_delete":
					if b, ok := v.(bool); ok {
						res.confirmDelete = &b
					} else {
						invalid(section, k, v)
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [ui]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.warnings = warnings
	return res
}

// applyTo overlays the values set in fc onto cfg.
func (fc *fileConfig) applyTo(cfg *domain.Config) {
	for _, w := range fc.warnings {
		cfg.Warnings = append(cfg.Warnings, fc.path+": "+w)
	}

	if fc.backend != "" {
		cfg.Store.Backend = fc.backend
	}
	if fc.storePath != "" {
		cfg.Store.Path = fc.resolvePath(fc.storePath)
	}
	if fc.gitRepo != "" {
		cfg.Git.Repo = fc.resolvePath(fc.gitRepo)
	}
	if fc.gitNamespace != "" {
		cfg.Git.Namespace = fc.gitNamespace
	}
	if fc.logLevel != "" {
		cfg.Log.Level = fc.logLevel
	}
	if fc.confirmDelete != nil {
		cfg.UI.ConfirmDelete = *fc.confirmDelete
	}
}

// resolvePath makes relative paths relative to the config file's directory.
func (fc *fileConfig) resolvePath(p string) string {
	if filepath.IsAbs(p) || fc.path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(fc.path), p)
}
