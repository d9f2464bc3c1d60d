package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/taskman/internal/app"
)

// newTUICommand creates the tui command for launching the interactive TUI.
// Same as running `taskman` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:         "tui",
		Short:       "Launch interactive TUI",
		Long:        `Launch the interactive terminal user interface for managing tasks.`,
		Args:        cobra.NoArgs,
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(cmd.Context(), c)
		},
	}
}
