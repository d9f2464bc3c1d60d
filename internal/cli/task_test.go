package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskman/internal/app"
	"github.com/runoshun/taskman/internal/domain"
	"github.com/runoshun/taskman/internal/testutil"
)

// newTestContainer creates an app.Container with mock dependencies.
func newTestContainer(repo *testutil.MockTaskRepository) *app.Container {
	return app.NewWithDeps(app.Config{}, repo, &testutil.MockStoreInitializer{}, nil)
}

// =============================================================================
// Add Command Tests
// =============================================================================

func TestNewAddCommand_CreateTask(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	container := newTestContainer(repo)

	cmd := newAddCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"Buy", "milk"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Created task #1")
	require.Contains(t, repo.Tasks, 1)
	assert.Equal(t, "Buy milk", repo.Tasks[1].Description)
	assert.Equal(t, domain.StatusActive, repo.Tasks[1].Status)
}

func TestNewAddCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		want string
		args []string
	}{
		{name: "no description", args: nil, want: "description is required"},
		{name: "blank description", args: []string{"   "}, want: domain.ErrEmptyDescription.Error()},
		{name: "dry-run without from", args: []string{"--dry-run", "x"}, want: "--dry-run requires --from"},
		{name: "description with from", args: []string{"--from", "f.yaml", "x"}, want: "cannot combine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockTaskRepository()
			cmd := newAddCommand(newTestContainer(repo))
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, repo.Tasks)
		})
	}
}

func TestNewAddCommand_FromFile(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	content := "- Buy milk\n- description: Write report\n  status: done\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cmd := newAddCommand(newTestContainer(repo))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--from", path})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Created task #1: Buy milk")
	assert.Contains(t, buf.String(), "Created task #2: Write report")
	require.Len(t, repo.Tasks, 2)
	assert.Equal(t, domain.StatusCompleted, repo.Tasks[2].Status)
}

func TestNewAddCommand_FromStdinDryRun(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	cmd := newAddCommand(newTestContainer(repo))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetIn(strings.NewReader("- one\n- two\n"))
	cmd.SetArgs([]string{"--from", "-", "--dry-run"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Dry run")
	assert.Contains(t, buf.String(), "1. [active] one")
	assert.Contains(t, buf.String(), "2. [active] two")
	assert.Empty(t, repo.Tasks)
}

func TestNewAddCommand_FromMissingFile(t *testing.T) {
	cmd := newAddCommand(newTestContainer(testutil.NewMockTaskRepository()))
	cmd.SetArgs([]string{"--from", filepath.Join(t.TempDir(), "missing.yaml")})

	err := cmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// =============================================================================
// List Command Tests
// =============================================================================

func TestNewListCommand_Table(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Seed("first", "second\nline")
	repo.Tasks[2].Status = domain.StatusCompleted

	cmd := newListCommand(newTestContainer(repo))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "DESCRIPTION")
	assert.Contains(t, lines[1], "active")
	assert.Contains(t, lines[1], "first")
	assert.Contains(t, lines[2], "completed")
	assert.Contains(t, lines[2], "second line")
}

func TestNewListCommand_StatusFilter(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Seed("first", "second")
	repo.Tasks[2].Status = domain.StatusCompleted

	cmd := newListCommand(newTestContainer(repo))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--status", "done"})

	require.NoError(t, cmd.Execute())
	assert.NotContains(t, buf.String(), "first")
	assert.Contains(t, buf.String(), "second")
}

func TestNewListCommand_InvalidStatus(t *testing.T) {
	cmd := newListCommand(newTestContainer(testutil.NewMockTaskRepository()))
	cmd.SetArgs([]string{"--status", "blocked"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestNewListCommand_JSON(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Seed("first")

	cmd := newListCommand(newTestContainer(repo))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--json"})

	require.NoError(t, cmd.Execute())

	var got []jsonTask
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []jsonTask{{ID: 1, Description: "first", Status: "active"}}, got)
}

func TestNewListCommand_JSONEmpty(t *testing.T) {
	cmd := newListCommand(newTestContainer(testutil.NewMockTaskRepository()))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--json"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "[]\n", buf.String())
}

// =============================================================================
// Show Command Tests
// =============================================================================

func TestNewShowCommand(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Seed("first")

	cmd := newShowCommand(newTestContainer(repo))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"#1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Task #1")
	assert.Contains(t, buf.String(), "Status:      active")
	assert.Contains(t, buf.String(), "Description: first")
}

func TestNewShowCommand_NotFound(t *testing.T) {
	cmd := newShowCommand(newTestContainer(testutil.NewMockTaskRepository()))
	cmd.SetArgs([]string{"9"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestNewShowCommand_InvalidID(t *testing.T) {
	cmd := newShowCommand(newTestContainer(testutil.NewMockTaskRepository()))
	cmd.SetArgs([]string{"abc"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid task ID")
}

// =============================================================================
// Toggle Command Tests
// =============================================================================

func TestNewToggleCommand_Flips(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Seed("first", "second")
	repo.Tasks[2].Status = domain.StatusCompleted

	cmd := newToggleCommand(newTestContainer(repo))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"1", "2"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, domain.StatusCompleted, repo.Tasks[1].Status)
	assert.Equal(t, domain.StatusActive, repo.Tasks[2].Status)
	assert.Contains(t, buf.String(), "Task #1 is now completed")
	assert.Contains(t, buf.String(), "Task #2 is now active")
}

func TestNewToggleCommand_RepeatedIDFlipsOnce(t *testing.T) {
	c, _ := newRealContainer(t)
	root := NewRootCommand(c, "test")
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--db", filepath.Join(t.TempDir(), "tasks.db"), "add", "a"})
	require.NoError(t, root.Execute())

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"toggle", "1", "1"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "Task #1 is now completed\n", buf.String())
	task, err := c.Tasks.Get(1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, task.Status)
}

func TestNewToggleCommand_ExplicitStatus(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Seed("first", "second")
	repo.Tasks[2].Status = domain.StatusCompleted

	cmd := newToggleCommand(newTestContainer(repo))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"1", "2", "--status", "completed"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, domain.StatusCompleted, repo.Tasks[1].Status)
	assert.Equal(t, domain.StatusCompleted, repo.Tasks[2].Status)
}

func TestNewToggleCommand_MissingTaskChangesNothing(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Seed("first")

	cmd := newToggleCommand(newTestContainer(repo))
	cmd.SetArgs([]string{"1", "5"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Equal(t, domain.StatusActive, repo.Tasks[1].Status)
}

// =============================================================================
// Edit Command Tests
// =============================================================================

func TestNewEditCommand(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Seed("first")

	cmd := newEditCommand(newTestContainer(repo))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"1", "--description", "renamed", "--status", "completed"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Updated task #1")
	assert.Equal(t, "renamed", repo.Tasks[1].Description)
	assert.Equal(t, domain.StatusCompleted, repo.Tasks[1].Status)
}

func TestNewEditCommand_Errors(t *testing.T) {
	tests := []struct {
		err  error
		name string
		args []string
	}{
		{name: "no fields", args: []string{"1"}, err: domain.ErrNoFieldsToUpdate},
		{name: "empty description", args: []string{"1", "-d", " "}, err: domain.ErrEmptyDescription},
		{name: "bad status", args: []string{"1", "-s", "later"}, err: domain.ErrInvalidStatus},
		{name: "missing task", args: []string{"2", "-d", "x"}, err: domain.ErrTaskNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockTaskRepository()
			repo.Seed("first")
			cmd := newEditCommand(newTestContainer(repo))
			cmd.SetArgs(tt.args)

			err := cmd.Execute()

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, "first", repo.Tasks[1].Description)
		})
	}
}

// =============================================================================
// Rm Command Tests
// =============================================================================

func TestNewRmCommand(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Seed("first", "second", "third")

	cmd := newRmCommand(newTestContainer(repo))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"1", "#3", "42"})

	require.NoError(t, cmd.Execute())
	assert.Len(t, repo.Tasks, 1)
	assert.Contains(t, repo.Tasks, 2)
	assert.Contains(t, buf.String(), "Deleted task #1")
}

func TestNewRmCommand_RequiresID(t *testing.T) {
	cmd := newRmCommand(newTestContainer(testutil.NewMockTaskRepository()))
	cmd.SetArgs([]string{})

	assert.Error(t, cmd.Execute())
}

// =============================================================================
// Helper Tests
// =============================================================================

func TestParseTaskID(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "1", want: 1},
		{input: "#12", want: 12},
		{input: "0", wantErr: true},
		{input: "-3", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseTaskID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSingleLine(t *testing.T) {
	assert.Equal(t, "a b c", singleLine("a\nb\r\n  c "))
}
