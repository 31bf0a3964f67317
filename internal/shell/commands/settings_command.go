package commands

import (
	"context"
	"fmt"

	"escli/internal/cli"
)

// SettingsCommand prints the cluster settings.
type SettingsCommand struct {
	*BaseCommand
}

// NewSettingsCommand creates a new settings command
func NewSettingsCommand(deps Deps) *SettingsCommand {
	return &SettingsCommand{BaseCommand: NewBaseCommand(deps)}
}

// Execute fetches /_cluster/settings and prints it as JSON.
func (s *SettingsCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("usage: %s", s.Usage())
	}
	settings, err := s.client.ClusterSettings(ctx)
	if err != nil {
		return err
	}
	return cli.JSONPanel(s.output.Writer(), "Cluster Settings", settings)
}

// Usage returns the usage string
func (s *SettingsCommand) Usage() string {
	return "settings"
}

// Description returns the command description
func (s *SettingsCommand) Description() string {
	return "Show persistent and transient cluster settings"
}

// Completions returns possible completions
func (s *SettingsCommand) Completions(input string) []string {
	return nil
}

// Aliases returns command aliases
func (s *SettingsCommand) Aliases() []string {
	return nil
}
