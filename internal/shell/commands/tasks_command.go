package commands

import (
	"context"
	"fmt"

	"escli/internal/cli"
	"escli/internal/cluster"
	pkgstrings "escli/pkg/strings"
)

// TasksCommand lists the tasks currently running in the cluster.
type TasksCommand struct {
	*BaseCommand
}

// NewTasksCommand creates a new tasks command
func NewTasksCommand(deps Deps) *TasksCommand {
	return &TasksCommand{BaseCommand: NewBaseCommand(deps)}
}

// Execute fetches /_tasks and prints one row per task.
func (t *TasksCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("usage: %s", t.Usage())
	}

	var resp *cluster.TasksResponse
	err := t.progress("Fetching tasks...").Run(func() (err error) {
		resp, err = t.client.Tasks(ctx)
		return err
	})
	if err != nil {
		return err
	}
	if resp.Count() == 0 {
		t.output.Warn("No active tasks")
		return nil
	}

	tbl := cli.NewTable(t.output.Writer(), fmt.Sprintf("Active Tasks (%d)", resp.Count()),
		"NODE", "TASK ID", "TYPE", "ACTION", "DESCRIPTION")
	for _, nodeID := range sortedKeys(resp.Nodes) {
		tasks := resp.Nodes[nodeID].Tasks
		for _, taskID := range sortedKeys(tasks) {
			task := tasks[taskID]
			tbl.AppendRow(
				pkgstrings.ShortID(nodeID, 8),
				taskID,
				orDefault(task.Type, "N/A"),
				orDefault(task.Action, "N/A"),
				pkgstrings.Truncate(orDefault(task.Description, "N/A"), pkgstrings.DefaultTruncateLen),
			)
		}
	}
	tbl.Render()
	return nil
}

// Usage returns the usage string
func (t *TasksCommand) Usage() string {
	return "tasks"
}

// Description returns the command description
func (t *TasksCommand) Description() string {
	return "List active cluster tasks"
}

// Completions returns possible completions
func (t *TasksCommand) Completions(input string) []string {
	return nil
}

// Aliases returns command aliases
func (t *TasksCommand) Aliases() []string {
	return nil
}
