package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"escli/internal/cli"
	"escli/internal/cluster"
	pkgstrings "escli/pkg/strings"
)

// NodesCommand lists cluster nodes with their resource usage.
type NodesCommand struct {
	*BaseCommand
}

// NewNodesCommand creates a new nodes command
func NewNodesCommand(deps Deps) *NodesCommand {
	return &NodesCommand{BaseCommand: NewBaseCommand(deps)}
}

// Execute fetches /_nodes/stats and prints one row per node, sorted by name.
func (n *NodesCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("usage: %s", n.Usage())
	}

	var stats *cluster.NodesStats
	err := n.progress("Fetching node stats...").Run(func() (err error) {
		stats, err = n.client.NodesStats(ctx)
		return err
	})
	if err != nil {
		return err
	}

	ids := sortedKeys(stats.Nodes)
	sort.SliceStable(ids, func(i, j int) bool {
		return stats.Nodes[ids[i]].Name < stats.Nodes[ids[j]].Name
	})

	tbl := cli.NewTable(n.output.Writer(), fmt.Sprintf("Nodes (%d)", len(ids)),
		"NAME", "ID", "ROLES", "CPU %", "MEMORY %", "DISK %")
	for _, id := range ids {
		node := stats.Nodes[id]
		tbl.AppendRow(
			node.Name,
			pkgstrings.ShortID(id, 8),
			strings.Join(node.Roles, ", "),
			percent(node.OS.CPU.Percent),
			percent(node.OS.Mem.UsedPercent),
			percent(node.DiskUsedPercent()),
		)
	}
	tbl.Render()
	return nil
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Usage returns the usage string
func (n *NodesCommand) Usage() string {
	return "nodes"
}

// Description returns the command description
func (n *NodesCommand) Description() string {
	return "List nodes with CPU, memory and disk usage"
}

// Completions returns possible completions
func (n *NodesCommand) Completions(input string) []string {
	return nil
}

// Aliases returns command aliases
func (n *NodesCommand) Aliases() []string {
	return nil
}
