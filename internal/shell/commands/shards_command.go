package commands

import (
	"context"
	"fmt"
	"sort"

	"escli/internal/cli"
	"escli/internal/cluster"
)

// shardStateOrder is the display order of the well-known shard states.
// Other states follow in alphabetical order.
var shardStateOrder = []string{"STARTED", "RELOCATING", "INITIALIZING", "UNASSIGNED"}

// ShardsCommand shows shard allocation grouped by state.
type ShardsCommand struct {
	*BaseCommand
}

// NewShardsCommand creates a new shards command
func NewShardsCommand(deps Deps) *ShardsCommand {
	return &ShardsCommand{BaseCommand: NewBaseCommand(deps)}
}

// Execute prints one table per shard state.
func (s *ShardsCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("usage: %s", s.Usage())
	}

	var shards []cluster.CatShard
	err := s.progress("Fetching shards...").Run(func() (err error) {
		shards, err = s.client.CatShards(ctx)
		return err
	})
	if err != nil {
		return err
	}
	if len(shards) == 0 {
		s.output.OutputLine("No shards found")
		return nil
	}

	groups := groupShards(shards)
	for _, state := range shardStates(groups) {
		group := groups[state]
		tbl := cli.NewTable(s.output.Writer(), fmt.Sprintf("%s (%d)", cli.StatusColor(state), len(group)),
			"INDEX", "SHARD", "PRIREP", "NODE", "STORE", "DOCS")
		for _, shard := range group {
			tbl.AppendRow(
				shard.Index,
				shard.Shard,
				shard.PriRep,
				orDefault(shard.Node, "N/A"),
				orDefault(shard.Store, "0b"),
				orDefault(shard.Docs, "0"),
			)
		}
		tbl.Render()
	}
	return nil
}

// groupShards buckets shards by state, keeping the cluster's row order.
func groupShards(shards []cluster.CatShard) map[string][]cluster.CatShard {
	groups := make(map[string][]cluster.CatShard)
	for _, shard := range shards {
		state := orDefault(shard.State, "UNKNOWN")
		groups[state] = append(groups[state], shard)
	}
	return groups
}

// shardStates returns the states present in groups in display order.
func shardStates(groups map[string][]cluster.CatShard) []string {
	states := make([]string, 0, len(groups))
	known := make(map[string]bool, len(shardStateOrder))
	for _, state := range shardStateOrder {
		known[state] = true
		if _, ok := groups[state]; ok {
			states = append(states, state)
		}
	}
	var others []string
	for state := range groups {
		if !known[state] {
			others = append(others, state)
		}
	}
	sort.Strings(others)
	return append(states, others...)
}

// Usage returns the usage string
func (s *ShardsCommand) Usage() string {
	return "shards"
}

// Description returns the command description
func (s *ShardsCommand) Description() string {
	return "Show shards grouped by state"
}

// Completions returns possible completions
func (s *ShardsCommand) Completions(input string) []string {
	return nil
}

// Aliases returns command aliases
func (s *ShardsCommand) Aliases() []string {
	return nil
}
