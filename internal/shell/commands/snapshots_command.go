package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"escli/internal/cli"
	"escli/internal/cluster"
	pkgstrings "escli/pkg/strings"
)

// settingsCellLen bounds the repository settings column.
const settingsCellLen = 60

// SnapshotsCommand lists snapshot repositories and their snapshots.
type SnapshotsCommand struct {
	*BaseCommand
}

// NewSnapshotsCommand creates a new snapshots command
func NewSnapshotsCommand(deps Deps) *SnapshotsCommand {
	return &SnapshotsCommand{BaseCommand: NewBaseCommand(deps)}
}

// Execute lists repositories, or the snapshots of one repository.
func (s *SnapshotsCommand) Execute(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		return s.listRepositories(ctx)
	case 2:
		if strings.EqualFold(args[1], "list") {
			return s.listSnapshots(ctx, args[0])
		}
		return fmt.Errorf("unknown snapshots subcommand %q. Available: list", args[1])
	default:
		return fmt.Errorf("usage: %s", s.Usage())
	}
}

func (s *SnapshotsCommand) listRepositories(ctx context.Context) error {
	repos, err := s.client.SnapshotRepositories(ctx)
	if err != nil {
		return err
	}
	if len(repos) == 0 {
		s.output.OutputLine("No snapshot repositories registered")
		return nil
	}

	tbl := cli.NewTable(s.output.Writer(), "Snapshot Repositories", "REPOSITORY", "TYPE", "SETTINGS")
	for _, name := range sortedKeys(repos) {
		repo := repos[name]
		tbl.AppendRow(name, orDefault(repo.Type, "N/A"), compactJSON(repo.Settings))
	}
	tbl.Render()
	return nil
}

func (s *SnapshotsCommand) listSnapshots(ctx context.Context, repo string) error {
	var list *cluster.SnapshotList
	err := s.progress(fmt.Sprintf("Fetching snapshots of %s...", repo)).Run(func() (err error) {
		list, err = s.client.Snapshots(ctx, repo)
		return err
	})
	if err != nil {
		return err
	}
	if len(list.Snapshots) == 0 {
		s.output.OutputLine("No snapshots in repository '%s'", repo)
		return nil
	}

	tbl := cli.NewTable(s.output.Writer(), fmt.Sprintf("Snapshots in %s (%d)", repo, len(list.Snapshots)),
		"SNAPSHOT", "STATE", "INDICES", "SIZE", "STARTED")
	for _, snap := range list.Snapshots {
		tbl.AppendRow(
			snap.Snapshot,
			cli.StatusColor(orDefault(snap.State, "N/A")),
			len(snap.Indices),
			snapshotSize(snap),
			orDefault(snap.StartTime, "N/A"),
		)
	}
	tbl.Render()
	return nil
}

func snapshotSize(snap cluster.Snapshot) string {
	if snap.Stats.TotalSize != "" {
		return snap.Stats.TotalSize
	}
	if snap.Stats.Total.SizeInBytes > 0 {
		return pkgstrings.FormatBytesDefault(float64(snap.Stats.Total.SizeInBytes))
	}
	return "N/A"
}

func compactJSON(v map[string]interface{}) string {
	if len(v) == 0 {
		return "{}"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "N/A"
	}
	return pkgstrings.Truncate(string(b), settingsCellLen)
}

// Usage returns the usage string
func (s *SnapshotsCommand) Usage() string {
	return "snapshots [<repository> list]"
}

// Description returns the command description
func (s *SnapshotsCommand) Description() string {
	return "List snapshot repositories and snapshots"
}

// Help returns the long help text
func (s *SnapshotsCommand) Help() string {
	return `snapshots                   List registered snapshot repositories
snapshots <repository> list List the snapshots stored in a repository

Repositories are created through the Elasticsearch API or Kibana.`
}

// Completions returns possible completions
func (s *SnapshotsCommand) Completions(input string) []string {
	if pos, _ := completionPosition(input); pos == 1 {
		return []string{"list"}
	}
	return nil
}

// Aliases returns command aliases
func (s *SnapshotsCommand) Aliases() []string {
	return nil
}
