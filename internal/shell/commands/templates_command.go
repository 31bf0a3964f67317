package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"escli/internal/cli"
)

var templateSubcommands = []string{"list", "show"}

// TemplatesCommand lists and shows composable index templates.
type TemplatesCommand struct {
	*BaseCommand
}

// NewTemplatesCommand creates a new templates command
func NewTemplatesCommand(deps Deps) *TemplatesCommand {
	return &TemplatesCommand{BaseCommand: NewBaseCommand(deps)}
}

// Execute runs list or show.
func (t *TemplatesCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("specify list or show <template>")
	}

	switch strings.ToLower(args[0]) {
	case "list":
		if len(args) > 1 {
			return errors.New("'templates list' takes no arguments")
		}
		return t.list(ctx)
	case "show":
		if len(args) != 2 {
			return errors.New("usage: templates show <template>")
		}
		return t.show(ctx, args[1])
	default:
		return fmt.Errorf("unknown templates subcommand %q. Available: %s", args[0], strings.Join(templateSubcommands, ", "))
	}
}

func (t *TemplatesCommand) list(ctx context.Context) error {
	entries, err := t.client.IndexTemplates(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		t.output.OutputLine("No index templates found")
		return nil
	}

	tbl := cli.NewTable(t.output.Writer(), fmt.Sprintf("Index Templates (%d)", len(entries)),
		"TEMPLATE", "PRIORITY", "PATTERNS")
	for _, entry := range entries {
		priority := "N/A"
		if p := entry.IndexTemplate.Priority; p != nil {
			priority = strconv.Itoa(*p)
		}
		tbl.AppendRow(entry.Name, priority, strings.Join(entry.IndexTemplate.IndexPatterns, ", "))
	}
	tbl.Render()
	return nil
}

func (t *TemplatesCommand) show(ctx context.Context, name string) error {
	entry, err := t.client.IndexTemplate(ctx, name)
	if err != nil {
		return withHint(err, "To see which templates apply to an index, use: indices %s", name)
	}
	return cli.JSONPanel(t.output.Writer(), "Template: "+name, entry.IndexTemplate)
}

// Usage returns the usage string
func (t *TemplatesCommand) Usage() string {
	return "templates <list|show <template>>"
}

// Description returns the command description
func (t *TemplatesCommand) Description() string {
	return "List and show index templates"
}

// Completions returns possible completions
func (t *TemplatesCommand) Completions(input string) []string {
	if pos, _ := completionPosition(input); pos == 0 {
		return templateSubcommands
	}
	return nil
}

// Aliases returns command aliases
func (t *TemplatesCommand) Aliases() []string {
	return nil
}
