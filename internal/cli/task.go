package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskman/internal/app"
	"github.com/runoshun/taskman/internal/domain"
	"github.com/runoshun/taskman/internal/usecase"
)

// jsonTask is the JSON shape of a task for --json output.
type jsonTask struct {
	Description string `json:"description"`
	Status      string `json:"status"`
	ID          int    `json:"id"`
}

func toJSONTask(t *domain.Task) jsonTask {
	return jsonTask{ID: t.ID, Description: t.Description, Status: string(t.Status)}
}

// newAddCommand creates the add command for creating tasks.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		From   string
		DryRun bool
	}

	cmd := &cobra.Command{
		Use:   "add [description...]",
		Short: "Create a new task",
		Long: `Create a new task with status 'active'.

All arguments are joined with spaces to form the description.

Examples:
  # Create a task
  taskman add Buy milk

  # Create tasks from a file
  taskman add --from tasks.yaml

  # Preview tasks from a file without creating
  taskman add --from tasks.yaml --dry-run

  # Read the file from stdin
  cat tasks.yaml | taskman add --from -

File format for --from (YAML list):
  - Buy milk
  - description: Write report
    status: completed`,
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.From != "" {
				if len(args) > 0 {
					return errors.New("cannot combine a description with --from")
				}
				return createTasksFromFile(cmd, c, opts.From, opts.DryRun)
			}
			if opts.DryRun {
				return errors.New("--dry-run requires --from")
			}
			if len(args) == 0 {
				return errors.New("description is required (or use --from)")
			}

			uc := c.NewTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.NewTaskInput{
				Description: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d\n", out.TaskID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "Create tasks from a YAML file (- for stdin)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Preview tasks without creating (requires --from)")

	return cmd
}

// createTasksFromFile creates tasks from a YAML file.
func createTasksFromFile(cmd *cobra.Command, c *app.Container, filePath string, dryRun bool) error {
	var (
		content []byte
		err     error
	)
	if filePath == "-" {
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		content, err = os.ReadFile(filePath)
	}
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	uc := c.CreateTasksFromFileUseCase()
	out, err := uc.Execute(cmd.Context(), usecase.CreateTasksFromFileInput{
		Content: string(content),
		DryRun:  dryRun,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if dryRun {
		_, _ = fmt.Fprintln(w, "Dry run - tasks that would be created:")
	}
	for i, task := range out.Tasks {
		if dryRun {
			_, _ = fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, task.Status, task.Description)
		} else {
			_, _ = fmt.Fprintf(w, "Created task #%d: %s\n", task.ID, task.Description)
		}
	}
	return nil
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Status string
		JSON   bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `Display all tasks ordered by ID.

Output format is tab-separated with columns:
  ID, STATUS, DESCRIPTION

Examples:
  # List all tasks
  taskman list

  # List only open tasks
  taskman list --status active

  # Machine-readable output
  taskman list --json`,
		Args:        cobra.NoArgs,
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := usecase.ListTasksInput{}
			if opts.Status != "" {
				status, err := parseStatus(opts.Status)
				if err != nil {
					return err
				}
				input.Status = &status
			}

			uc := c.ListTasksUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			if opts.JSON {
				return printTasksJSON(cmd.OutOrStdout(), out.Tasks)
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status (active, completed)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}

// printTaskList prints tasks in TSV format.
func printTaskList(w io.Writer, tasks []*domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tDESCRIPTION")
	for _, task := range tasks {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", task.ID, task.Status, singleLine(task.Description))
	}
}

func printTasksJSON(w io.Writer, tasks []*domain.Task) error {
	out := make([]jsonTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toJSONTask(t))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// singleLine flattens newlines for tabular output.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display task details",
		Long: `Display a single task.

Examples:
  taskman show 1
  taskman show "#1" --json`,
		Args:        cobra.ExactArgs(1),
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			uc := c.ShowTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(toJSONTask(out.Task))
			}

			_, _ = fmt.Fprintf(w, "Task #%d\n", out.Task.ID)
			_, _ = fmt.Fprintf(w, "Status:      %s\n", out.Task.Status)
			_, _ = fmt.Fprintf(w, "Description: %s\n", out.Task.Description)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

// newToggleCommand creates the toggle command for changing task status.
func newToggleCommand(c *app.Container) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "toggle <id>...",
		Short: "Flip or set the status of tasks",
		Long: `Flip each task between active and completed.

With --status, every task is set to that status instead.
Nothing is changed if any task does not exist.

Examples:
  # Complete or reopen tasks
  taskman toggle 1 2

  # Mark tasks as completed regardless of their current status
  taskman toggle 1 2 --status completed`,
		Args:        cobra.MinimumNArgs(1),
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseTaskIDs(args)
			if err != nil {
				return err
			}

			input := usecase.ChangeStatusInput{TaskIDs: ids}
			if status != "" {
				s, err := parseStatus(status)
				if err != nil {
					return err
				}
				input.Status = &s
			}

			uc := c.ChangeStatusUseCase()
			changed, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			// Report the resulting statuses
			show := c.ShowTaskUseCase()
			for _, id := range changed.TaskIDs {
				out, err := show.Execute(cmd.Context(), usecase.ShowTaskInput{TaskID: id})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task #%d is now %s\n", id, out.Task.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Set this status instead of toggling (active, completed)")

	return cmd
}

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Description string
		Status      string
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Change the description and/or status of a task.

At least one of --description or --status is required.

Examples:
  taskman edit 1 --description "Buy oat milk"
  taskman edit 1 --status completed`,
		Args:        cobra.ExactArgs(1),
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			input := usecase.EditTaskInput{TaskID: taskID}
			if cmd.Flags().Changed("description") {
				input.Description = &opts.Description
			}
			if cmd.Flags().Changed("status") {
				s, err := parseStatus(opts.Status)
				if err != nil {
					return err
				}
				input.Status = &s
			}

			uc := c.EditTaskUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&opts.Status, "status", "s", "", "New status (active, completed)")

	return cmd
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete tasks",
		Long: `Delete tasks from the store. IDs that do not exist are ignored.

Examples:
  taskman rm 1
  taskman rm 1 2 "#3"`,
		Args:        cobra.MinimumNArgs(1),
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseTaskIDs(args)
			if err != nil {
				return err
			}

			uc := c.DeleteTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.DeleteTasksInput{TaskIDs: ids})
			if err != nil {
				return err
			}

			for _, id := range out.TaskIDs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d\n", id)
			}
			return nil
		},
	}
}

// parseTaskID parses a task ID string to int.
func parseTaskID(s string) (int, error) {
	// Remove leading # if present
	s = strings.TrimPrefix(s, "#")
	var id int
	_, err := fmt.Sscanf(s, "%d", &id)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("task ID must be positive")
	}
	return id, nil
}

// parseTaskIDs parses every argument as a task ID.
func parseTaskIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseTaskID(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid task ID %q: %w", arg, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseStatus parses a --status value.
func parseStatus(s string) (domain.Status, error) {
	status, err := domain.ParseStatus(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q (use active or completed)", domain.ErrInvalidStatus, s)
	}
	return status, nil
}
