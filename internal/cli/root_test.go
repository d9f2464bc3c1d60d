package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskman/internal/app"
	"github.com/runoshun/taskman/internal/domain"
)

// stubTUI replaces launchTUIFunc for the duration of the test.
func stubTUI(t *testing.T) *bool {
	t.Helper()
	original := launchTUIFunc
	t.Cleanup(func() { launchTUIFunc = original })

	called := new(bool)
	launchTUIFunc = func(context.Context, *app.Container) error {
		*called = true
		return nil
	}
	return called
}

// newRealContainer creates a container over temp XDG homes and a temp working directory.
func newRealContainer(t *testing.T) (*app.Container, string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dir := t.TempDir()

	c, err := app.New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, dir
}

func TestNewRootCommand_NoArgs_LaunchesTUI(t *testing.T) {
	called := stubTUI(t)

	root := NewRootCommand(nil, "test-version")
	root.SetArgs([]string{})
	err := root.Execute()

	assert.NoError(t, err)
	assert.True(t, *called, "launchTUIFunc should be called when no arguments are provided")
}

func TestNewRootCommand_TUISubcommand(t *testing.T) {
	called := stubTUI(t)

	root := NewRootCommand(nil, "test-version")
	root.SetArgs([]string{"tui"})

	assert.NoError(t, root.Execute())
	assert.True(t, *called)
}

func TestNewRootCommand_WithHelp_ShowsHelp(t *testing.T) {
	called := stubTUI(t)

	root := NewRootCommand(nil, "test-version")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})
	err := root.Execute()

	assert.NoError(t, err)
	assert.False(t, *called, "launchTUIFunc should not be called with --help")
	assert.Contains(t, buf.String(), "Task Commands:")
	assert.Contains(t, buf.String(), "toggle")
}

func TestNewRootCommand_Version(t *testing.T) {
	root := NewRootCommand(nil, "1.2.3")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "1.2.3")
}

func TestNewRootCommand_OpensAndInitializesStore(t *testing.T) {
	c, _ := newRealContainer(t)
	dbPath := filepath.Join(t.TempDir(), "tasks.db")

	root := NewRootCommand(c, "test")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--db", dbPath, "add", "hello", "world"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "Created task #1")
	assert.Equal(t, dbPath, c.Config.StorePath)

	task, err := c.Tasks.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "hello world", task.Description)
}

func TestNewRootCommand_InitReports(t *testing.T) {
	c, _ := newRealContainer(t)
	dbPath := filepath.Join(t.TempDir(), "tasks.db")

	root := NewRootCommand(c, "test")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--db", dbPath, "init"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "Initialized sqlite store in "+dbPath)

	buf.Reset()
	root.SetArgs([]string{"--db", dbPath, "init"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "already initialized")
}

func TestNewRootCommand_PrintsConfigWarnings(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(domain.LocalConfigPath(dir), []byte("[ui]\nbogus = 1\n"), 0o600))

	c, err := app.New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	root := NewRootCommand(c, "test")
	var stderr bytes.Buffer
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&stderr)
	root.SetArgs([]string{"config", "template"})

	require.NoError(t, root.Execute())
	assert.Contains(t, stderr.String(), "Warning:")
	assert.Contains(t, stderr.String(), "bogus")
	assert.Nil(t, c.Tasks, "config commands do not open the store")
}

func TestNewRootCommand_UnknownBackend(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(domain.LocalConfigPath(dir), []byte("[store]\nbackend = \"postgres\"\n"), 0o600))

	c, err := app.New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	// Invalid values are dropped with a warning, so the default backend is used
	root := NewRootCommand(c, "test")
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"list"})
	require.NoError(t, root.Execute())
	assert.Equal(t, domain.BackendSQLite, c.Config.Backend)
}
