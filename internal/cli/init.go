package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskman/internal/app"
	"github.com/runoshun/taskman/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the task store",
		Long: `Create the task store if it does not exist yet.

The backend is taken from store.backend in the configuration:
- sqlite: creates the tasks table in the database file
- json: creates an empty JSON store file
- git: writes the metadata refs into the repository

Other commands initialize the store on demand; init only reports
whether anything had to be created.`,
		Args:        cobra.NoArgs,
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitStoreUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitStoreInput{})
			if err != nil {
				return err
			}

			location := c.Config.StorePath
			if location == "" {
				location = "git refs"
			}
			if out.Created {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s store in %s\n", c.Config.Backend, location)
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task store already initialized in %s\n", location)
			}
			return nil
		},
	}
}
