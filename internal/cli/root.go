// Package cli provides the command-line interface for taskman.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskman/internal/app"
	"github.com/runoshun/taskman/internal/tui"
	"github.com/runoshun/taskman/internal/usecase"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupTask  = "task"
)

// annotationStore marks commands that need an open task store.
const annotationStore = "taskman/store"

// storeAnnotation is attached to commands that read or write tasks.
var storeAnnotation = map[string]string{annotationStore: "true"}

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// launchTUI runs the interactive task list until the user quits.
func launchTUI(ctx context.Context, c *app.Container) error {
	return tui.Run(ctx, c.Controller(), c.AppConfig)
}

// NewRootCommand creates the root command for taskman.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:   "taskman",
		Short: "Local task manager",
		Long: `taskman keeps a list of tasks in a local database.

Running taskman without a command opens the interactive task list:
check tasks with space, then change their status, edit or delete them
from the action bar. The other commands do the same from scripts.`,
		Version:     version,
		Annotations: storeAnnotation,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}

			if cmd.Annotations[annotationStore] != "true" {
				return nil
			}
			if err := c.OpenStore(dbPath); err != nil {
				return err
			}
			// init reports on its own; everything else gets a ready store
			if cmd.Name() == "init" {
				return nil
			}
			if _, err := c.InitStoreUseCase().Execute(cmd.Context(), usecase.InitStoreInput{}); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(cmd.Context(), c)
		},
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "", "Task store file (overrides store.path)")

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Commands:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	// Task commands
	taskCmds := []*cobra.Command{
		newAddCommand(c),
		newListCommand(c),
		newShowCommand(c),
		newToggleCommand(c),
		newEditCommand(c),
		newRmCommand(c),
		newTUICommand(c),
	}
	for _, cmd := range taskCmds {
		cmd.GroupID = groupTask
	}

	root.AddCommand(initCmd, configCmd)
	root.AddCommand(taskCmds...)

	return root
}
