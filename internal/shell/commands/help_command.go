package commands

import (
	"context"
	"strings"

	"escli/internal/cli"
	pkgstrings "escli/pkg/strings"
)

// HelpCommand shows available commands and usage information
type HelpCommand struct {
	*BaseCommand
	registry *Registry
}

// NewHelpCommand creates a new help command
func NewHelpCommand(deps Deps, registry *Registry) *HelpCommand {
	return &HelpCommand{
		BaseCommand: NewBaseCommand(deps),
		registry:    registry,
	}
}

// Execute shows help information
func (h *HelpCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		h.showGeneralHelp()
		return nil
	}

	commandName := strings.ToLower(args[0])
	command, exists := h.registry.Get(commandName)
	if !exists {
		h.output.Error("Unknown command: %s", commandName)
		h.output.OutputLine("Use 'help' to see all available commands.")
		return nil
	}

	primary, _ := h.registry.Resolve(commandName)
	ShowCommandHelp(h.output, primary, command)
	return nil
}

func (h *HelpCommand) showGeneralHelp() {
	tbl := cli.NewTable(h.output.Writer(), "Available commands", "COMMAND", "ALIASES", "DESCRIPTION")
	for _, name := range h.registry.List() {
		cmd, _ := h.registry.Get(name)
		tbl.AppendRow(name, strings.Join(cmd.Aliases(), ", "),
			pkgstrings.TruncateDescription(cmd.Description(), pkgstrings.DefaultDescriptionMaxLen))
	}
	tbl.Render()

	h.output.OutputLine("")
	h.output.OutputLine("Type '<command> help' or 'help <command>' for details.")
	h.output.OutputLine("")
	h.output.OutputLine("Keyboard shortcuts:")
	h.output.OutputLine("  TAB                 - Auto-complete commands, subcommands and context names")
	h.output.OutputLine("  ↑/↓ (arrow keys)    - Navigate command history")
	h.output.OutputLine("  Ctrl+R              - Search command history")
	h.output.OutputLine("  Ctrl+C              - Cancel current line")
	h.output.OutputLine("  Ctrl+D              - Exit")
}

// ShowCommandHelp prints the usage, description, aliases and long help of cmd.
func ShowCommandHelp(out OutputLogger, name string, cmd Command) {
	out.OutputLine("Command: %s", name)
	out.OutputLine("Description: %s", cmd.Description())
	out.OutputLine("Usage: %s", cmd.Usage())
	if aliases := cmd.Aliases(); len(aliases) > 0 {
		out.OutputLine("Aliases: %s", strings.Join(aliases, ", "))
	}
	if helper, ok := cmd.(Helper); ok {
		out.OutputLine("")
		cli.Panel(out.Writer(), "Help: "+name, strings.TrimSpace(helper.Help()))
	}
}

// Usage returns the usage string
func (h *HelpCommand) Usage() string {
	return "help [command]"
}

// Description returns the command description
func (h *HelpCommand) Description() string {
	return "Show help information for commands"
}

// Completions returns possible completions
func (h *HelpCommand) Completions(input string) []string {
	if pos, _ := completionPosition(input); pos > 0 {
		return nil
	}
	return h.registry.List()
}

// Aliases returns command aliases
func (h *HelpCommand) Aliases() []string {
	return []string{"?"}
}
