package commands

import (
	"context"
	"fmt"
	"strings"

	"escli/internal/cli"
	escontext "escli/internal/context"
	"escli/internal/session"
)

// ContextCommand lists, switches, shows and deletes contexts.
type ContextCommand struct {
	*BaseCommand
}

// NewContextCommand creates a new context command
func NewContextCommand(deps Deps) *ContextCommand {
	return &ContextCommand{BaseCommand: NewBaseCommand(deps)}
}

// knownSubcommands lists all valid subcommands for typo detection.
var knownSubcommands = []string{"list", "ls", "use", "switch", "delete", "rm", "show", "current"}

// Execute runs the context command with the given arguments.
// Subcommands:
//   - (no args) or current: Show current context
//   - list/ls: List all available contexts
//   - use/switch <name>: Switch to a different context
//   - show <name>: Show one context
//   - delete/rm <name>: Remove a context
//
// A single unknown argument naming a context switches to it.
func (c *ContextCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.showCurrent()
	}

	subCmd := strings.ToLower(args[0])
	switch subCmd {
	case "current":
		return c.showCurrent()
	case "list", "ls":
		return c.listContexts()
	case "use", "switch":
		if len(args) < 2 {
			return fmt.Errorf("usage: context use <name>")
		}
		return c.switchContext(ctx, args[1])
	case "show":
		if len(args) < 2 {
			return fmt.Errorf("usage: context show <name>")
		}
		return c.showContext(args[1])
	case "delete", "rm":
		if len(args) < 2 {
			return fmt.Errorf("usage: context delete <name>")
		}
		return c.deleteContext(args[1])
	default:
		if c.session.HasContext(args[0]) {
			return c.switchContext(ctx, args[0])
		}
		if suggestion := findSimilar(subCmd, knownSubcommands); suggestion != "" {
			return fmt.Errorf("unknown subcommand %q - did you mean %q? Use 'context use %s' to switch to a context named %q",
				subCmd, suggestion, args[0], args[0])
		}
		return c.switchContext(ctx, args[0])
	}
}

func (c *ContextCommand) showCurrent() error {
	name := c.session.Current()
	if name == "" {
		c.output.OutputLine("No context set")
		c.output.OutputLine("")
		c.output.OutputLine("Use 'context list' to see available contexts")
		c.output.OutputLine("Use 'context use <name>' to switch context")
		return nil
	}
	c.output.OutputLine("Current context: %s (%s)", name, c.session.URL())
	return nil
}

func (c *ContextCommand) listContexts() error {
	names := c.session.ContextNames()
	if len(names) == 0 {
		c.output.OutputLine("No contexts configured")
		c.output.OutputLine("")
		c.output.OutputLine("Add one with:")
		c.output.OutputLine("  connect <name>")
		return nil
	}

	current := c.session.Current()
	tw := cli.NewPlainTableWriter(c.output.Writer())
	tw.SetHeaders("active", "name", "url", "user")
	for _, name := range names {
		entry, _ := c.session.Context(name)
		marker := ""
		if name == current {
			marker = "*"
		}
		tw.AppendRow(marker, name, entry.URL, entry.DisplayUser())
	}
	tw.Render()
	return nil
}

func (c *ContextCommand) lookup(name string) (escontext.Context, error) {
	entry, ok := c.session.Context(name)
	if ok {
		return entry, nil
	}
	names := c.session.ContextNames()
	notFound := &escontext.ContextNotFoundError{Name: name}
	if len(names) > 0 {
		return entry, withHint(notFound, "Available: %s", strings.Join(names, ", "))
	}
	return entry, withHint(notFound, "No contexts configured. Add one with 'connect <name>'.")
}

func (c *ContextCommand) switchContext(ctx context.Context, name string) error {
	entry, err := c.lookup(name)
	if err != nil {
		return err
	}

	spin := c.progress(fmt.Sprintf("Connecting to %s...", entry.URL))
	spin.Start()
	err = c.session.Switch(ctx, name)
	if err != nil && !session.IsPersistError(err) {
		spin.Fail(fmt.Sprintf("Could not connect to %s", entry.URL))
		return err
	}
	spin.Stop()

	c.output.Success("Switched to %s (%s)", name, entry.URL)
	return c.reportPersist(err)
}

func (c *ContextCommand) showContext(name string) error {
	entry, err := c.lookup(name)
	if err != nil {
		return err
	}

	tbl := cli.NewKeyValueTable(c.output.Writer(), "Context: "+name)
	tbl.AppendRow("URL", entry.URL)
	tbl.AppendRow("User", entry.DisplayUser())
	tbl.AppendRow("Password", passwordState(entry))
	tbl.AppendRow("Active", cli.YesNo(name == c.session.Current()))
	tbl.Render()
	return nil
}

func passwordState(entry escontext.Context) string {
	if entry.Password == "" {
		return "N/A"
	}
	return "(set)"
}

func (c *ContextCommand) deleteContext(name string) error {
	if _, err := c.lookup(name); err != nil {
		return err
	}

	question := fmt.Sprintf("Delete context '%s'?", name)
	if name == c.session.Current() {
		question = fmt.Sprintf("Delete context '%s'? It is the current context and you will be disconnected.", name)
	}
	ok, err := c.confirm(question)
	if err != nil || !ok {
		return err
	}

	err = c.session.Remove(name)
	if err != nil && !session.IsPersistError(err) {
		return err
	}
	c.output.Success("Deleted context '%s'", name)
	return c.reportPersist(err)
}

// Usage returns the usage string for the context command.
func (c *ContextCommand) Usage() string {
	return "context [list|use <name>|show <name>|delete <name>|current]"
}

// Description returns a brief description of what the command does.
func (c *ContextCommand) Description() string {
	return "List, switch, show and delete cluster contexts"
}

// Help returns the long help text
func (c *ContextCommand) Help() string {
	return `Subcommands:
  list, ls              List all contexts, * marks the current one
  use, switch <name>    Check the cluster and make it current
  show <name>           Show URL and user of a context
  delete, rm <name>     Remove a context after confirmation
  current               Show the current context (default)

'context <name>' is a shortcut for 'context use <name>'.`
}

// Completions returns possible completions for the context command.
func (c *ContextCommand) Completions(input string) []string {
	pos, prev := completionPosition(input)
	switch pos {
	case 0:
		return append([]string{"list", "use", "show", "delete", "current"}, c.session.ContextNames()...)
	case 1:
		switch strings.ToLower(prev[0]) {
		case "use", "switch", "show", "delete", "rm":
			return c.session.ContextNames()
		}
	}
	return nil
}

// Aliases returns alternative names for the context command.
func (c *ContextCommand) Aliases() []string {
	return []string{"ctx"}
}
