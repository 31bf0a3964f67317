package commands

import (
	"context"
	"fmt"

	"escli/internal/cli"
	"escli/internal/cluster"
)

// HealthCommand shows the cluster health summary.
type HealthCommand struct {
	*BaseCommand
}

// NewHealthCommand creates a new health command
func NewHealthCommand(deps Deps) *HealthCommand {
	return &HealthCommand{BaseCommand: NewBaseCommand(deps)}
}

// Execute fetches and prints /_cluster/health.
func (h *HealthCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("usage: %s", h.Usage())
	}

	var health *cluster.Health
	err := h.progress("Fetching cluster health...").Run(func() (err error) {
		health, err = h.client.Health(ctx)
		return err
	})
	if err != nil {
		return err
	}

	tbl := cli.NewKeyValueTable(h.output.Writer(), "Cluster Health")
	tbl.AppendRow("Cluster Name", health.ClusterName)
	tbl.AppendRow("Status", cli.StatusColor(health.Status))
	tbl.AppendRow("Number of Nodes", health.NumberOfNodes)
	tbl.AppendRow("Data Nodes", health.NumberOfDataNodes)
	tbl.AppendRow("Active Shards", health.ActiveShards)
	tbl.AppendRow("Active Primary Shards", health.ActivePrimaryShards)
	tbl.AppendRow("Relocating Shards", health.RelocatingShards)
	tbl.AppendRow("Initializing Shards", health.InitializingShards)
	tbl.AppendRow("Unassigned Shards", health.UnassignedShards)
	tbl.AppendRow("Active Shards %", fmt.Sprintf("%.1f%%", health.ActiveShardsPercentAsNumber))
	tbl.Render()
	return nil
}

// Usage returns the usage string
func (h *HealthCommand) Usage() string {
	return "health"
}

// Description returns the command description
func (h *HealthCommand) Description() string {
	return "Show cluster health"
}

// Completions returns possible completions
func (h *HealthCommand) Completions(input string) []string {
	return nil
}

// Aliases returns command aliases
func (h *HealthCommand) Aliases() []string {
	return nil
}
