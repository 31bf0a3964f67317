package commands

import (
	"context"
)

// ExitCommand ends the shell
type ExitCommand struct {
	*BaseCommand
}

// NewExitCommand creates a new exit command
func NewExitCommand(deps Deps) *ExitCommand {
	return &ExitCommand{BaseCommand: NewBaseCommand(deps)}
}

// Execute returns ErrExit so the shell loop stops.
func (e *ExitCommand) Execute(ctx context.Context, args []string) error {
	return ErrExit
}

// Usage returns the usage string
func (e *ExitCommand) Usage() string {
	return "exit"
}

// Description returns the command description
func (e *ExitCommand) Description() string {
	return "Exit the shell"
}

// Completions returns possible completions
func (e *ExitCommand) Completions(input string) []string {
	return nil
}

// Aliases returns command aliases
func (e *ExitCommand) Aliases() []string {
	return []string{"quit", "q"}
}
