package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"escli/internal/cli"
	"escli/internal/cluster"
	pkgstrings "escli/pkg/strings"
)

// IndicesCommand lists indices, shows one index and runs index operations.
type IndicesCommand struct {
	*BaseCommand
}

// NewIndicesCommand creates a new indices command
func NewIndicesCommand(deps Deps) *IndicesCommand {
	return &IndicesCommand{BaseCommand: NewBaseCommand(deps)}
}

var indexSubcommands = []string{"delete", "open", "close", "settings", "forcemerge"}

var forceMergeModes = []string{string(cluster.ForceMergeSegments), string(cluster.ForceMergeExpunge)}

// Execute dispatches on the first argument. Anything that is not a subcommand
// is taken as an index name.
func (i *IndicesCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return i.list(ctx)
	}

	sub := strings.ToLower(args[0])
	switch sub {
	case "delete", "open", "close", "settings", "forcemerge":
		if len(args) < 2 {
			return fmt.Errorf("usage: indices %s <index>", sub)
		}
	default:
		return i.show(ctx, args[0])
	}

	index := args[1]
	switch sub {
	case "delete":
		return i.delete(ctx, index)
	case "open":
		if err := i.client.OpenIndex(ctx, index); err != nil {
			return err
		}
		i.output.Success("Index '%s' opened", index)
	case "close":
		if err := i.client.CloseIndex(ctx, index); err != nil {
			return err
		}
		i.output.Success("Index '%s' closed", index)
	case "settings":
		settings, err := i.client.IndexSettings(ctx, index)
		if err != nil {
			return err
		}
		return cli.JSONPanel(i.output.Writer(), "Settings: "+index, settings)
	case "forcemerge":
		return i.forceMerge(ctx, index, args[2:])
	}
	return nil
}

func (i *IndicesCommand) list(ctx context.Context) error {
	var rows []cluster.CatIndex
	err := i.progress("Fetching indices...").Run(func() (err error) {
		rows, err = i.client.CatIndices(ctx)
		return err
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		i.output.OutputLine("No indices found")
		return nil
	}

	sort.Slice(rows, func(a, b int) bool { return rows[a].Index < rows[b].Index })

	tbl := cli.NewTable(i.output.Writer(), fmt.Sprintf("Indices (%d)", len(rows)),
		"INDEX", "HEALTH", "DOCS", "SIZE", "PRI", "REP")
	for _, row := range rows {
		tbl.AppendRow(
			row.Index,
			cli.StatusColor(orDefault(row.Health, "N/A")),
			orDefault(row.DocsCount, "0"),
			orDefault(row.StoreSize, "0b"),
			orDefault(row.Primaries, "0"),
			orDefault(row.Replicas, "0"),
		)
	}
	tbl.Render()
	return nil
}

// show prints the detail view of one index. An alias resolving to a single
// index shows that index.
func (i *IndicesCommand) show(ctx context.Context, name string) error {
	var (
		indices  map[string]cluster.IndexInfo
		stats    *cluster.IndexStatsResponse
		sim      *cluster.SimulatedIndex
		simErr   error
		concrete string
	)
	err := i.progress(fmt.Sprintf("Loading index %s...", name)).Run(func() (err error) {
		if indices, err = i.client.GetIndex(ctx, name); err != nil {
			return err
		}
		if concrete, err = concreteIndex(name, indices); err != nil {
			return err
		}
		if stats, err = i.client.IndexStats(ctx, concrete); err != nil {
			return err
		}
		sim, simErr = i.client.SimulateIndex(ctx, concrete)
		return nil
	})
	if err != nil {
		return err
	}

	info := indices[concrete]
	totals := stats.For(concrete)

	tbl := cli.NewKeyValueTable(i.output.Writer(), "Index: "+concrete)
	if concrete != name {
		tbl.AppendRow("Requested As", name)
	}
	tbl.AppendRow("UUID", info.Setting("uuid"))
	tbl.AppendRow("Documents", humanize.Comma(totals.Docs.Count))
	tbl.AppendRow("Deleted Documents", humanize.Comma(totals.Docs.Deleted))
	tbl.AppendRow("Size", pkgstrings.FormatBytesDefault(float64(totals.Store.SizeInBytes)))
	tbl.AppendRow("Shards", info.Setting("number_of_shards"))
	tbl.AppendRow("Replicas", info.Setting("number_of_replicas"))
	if policy := info.LifecyclePolicy(); policy != "" {
		tbl.AppendRow("ILM Policy", cli.Highlight(policy))
	}
	switch {
	case simErr != nil:
		tbl.AppendRow("Templates", cli.Dim("unable to retrieve"))
	case len(sim.TemplateNames()) > 0:
		tbl.AppendRow("Templates", cli.Highlight(strings.Join(sim.TemplateNames(), ", ")))
	}
	tbl.Render()

	if aliases := info.AliasNames(); len(aliases) > 0 {
		sort.Strings(aliases)
		at := cli.NewTable(i.output.Writer(), "Aliases", "ALIAS")
		for _, alias := range aliases {
			at.AppendRow(alias)
		}
		at.Render()
	}

	if err := cli.JSONPanel(i.output.Writer(), "Settings", info.Settings.Index); err != nil {
		return err
	}
	return cli.JSONPanel(i.output.Writer(), "Mappings", info.Mappings)
}

// concreteIndex picks the entry of a GET /<name> response that name refers to.
func concreteIndex(name string, indices map[string]cluster.IndexInfo) (string, error) {
	if _, ok := indices[name]; ok {
		return name, nil
	}
	if len(indices) == 1 {
		for concrete := range indices {
			return concrete, nil
		}
	}
	if len(indices) == 0 {
		return "", fmt.Errorf("index %q not found", name)
	}
	return "", withHint(
		fmt.Errorf("%q matches %d indices", name, len(indices)),
		"Use one of: %s", strings.Join(sortedKeys(indices), ", "))
}

func (i *IndicesCommand) delete(ctx context.Context, index string) error {
	ok, err := i.confirm(fmt.Sprintf("Delete index '%s'? This cannot be undone.", index))
	if err != nil || !ok {
		return err
	}
	if err := i.client.DeleteIndex(ctx, index); err != nil {
		return err
	}
	i.output.Success("Index '%s' deleted", index)
	return nil
}

func (i *IndicesCommand) forceMerge(ctx context.Context, index string, rest []string) error {
	if len(rest) == 0 {
		return withHint(errors.New("usage: indices forcemerge <index> <segments|expunge>"),
			"Available types: %s", strings.Join(forceMergeModes, ", "))
	}

	opts := cluster.ForceMergeOptions{Mode: cluster.ForceMergeMode(strings.ToLower(rest[0]))}
	var question string
	switch opts.Mode {
	case cluster.ForceMergeSegments:
		question = fmt.Sprintf("Run forcemerge with max_num_segments on index '%s'?", index)
	case cluster.ForceMergeExpunge:
		question = fmt.Sprintf("Run forcemerge with only_expunge_deletes on index '%s'?", index)
	default:
		return withHint(fmt.Errorf("unknown forcemerge type %q", rest[0]),
			"Available types: %s", strings.Join(forceMergeModes, ", "))
	}

	ok, err := i.confirm(question)
	if err != nil || !ok {
		return err
	}

	if opts.Mode == cluster.ForceMergeSegments {
		answer, err := i.prompter.Ask("Number of segments (N)", "1")
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil || n < 1 {
			return fmt.Errorf("number of segments must be a positive integer, got %q", answer)
		}
		opts.MaxNumSegments = n
	}

	task, err := i.client.ForceMerge(ctx, index, opts)
	if err != nil {
		return err
	}

	if opts.Mode == cluster.ForceMergeSegments {
		i.output.Success("Forcemerge started for index '%s' with max_num_segments=%d", index, opts.MaxNumSegments)
	} else {
		i.output.Success("Forcemerge started for index '%s' with only_expunge_deletes=true", index)
	}
	if task != "" {
		i.output.Info("Task: %s", task)
	}
	return nil
}

// Usage returns the usage string
func (i *IndicesCommand) Usage() string {
	return "indices [<index>|delete|open|close|settings <index>|forcemerge <index> <segments|expunge>]"
}

// Description returns the command description
func (i *IndicesCommand) Description() string {
	return "List, inspect and manage indices"
}

// Help returns the long help text
func (i *IndicesCommand) Help() string {
	return `indices                             List all indices
indices <index>                     Show details of one index or alias
indices delete <index>              Delete an index after confirmation
indices open <index>                Open a closed index
indices close <index>               Close an index
indices settings <index>            Show index settings
indices forcemerge <index> segments Merge down to N segments (asks for N)
                                    _forcemerge?max_num_segments=N&wait_for_completion=false
indices forcemerge <index> expunge  Only expunge deleted documents
                                    _forcemerge?only_expunge_deletes=true&wait_for_completion=false

Examples:
  indices my-index
  indices forcemerge my-index segments
  indices forcemerge my-index expunge`
}

// Completions returns possible completions
func (i *IndicesCommand) Completions(input string) []string {
	pos, prev := completionPosition(input)
	switch {
	case pos == 0:
		return indexSubcommands
	case pos == 2 && strings.EqualFold(prev[0], "forcemerge"):
		return forceMergeModes
	}
	return nil
}

// Aliases returns command aliases
func (i *IndicesCommand) Aliases() []string {
	return nil
}
