package commands

import (
	"context"
	"fmt"
	"strings"

	escontext "escli/internal/context"
	"escli/internal/session"
)

// DefaultURL is offered when connect asks for the cluster address.
const DefaultURL = "http://localhost:9200"

// ConnectCommand creates or replaces a context and switches to it.
type ConnectCommand struct {
	*BaseCommand
}

// NewConnectCommand creates a new connect command
func NewConnectCommand(deps Deps) *ConnectCommand {
	return &ConnectCommand{BaseCommand: NewBaseCommand(deps)}
}

// Execute asks for the connection details and stores the context once the
// cluster answered.
func (c *ConnectCommand) Execute(ctx context.Context, args []string) error {
	parsed, err := c.parseArgs(args, 1, c.Usage())
	if err != nil {
		return err
	}
	name := parsed[0]
	if err := escontext.ValidateContextName(name); err != nil {
		return err
	}
	if c.prompter == nil {
		return fmt.Errorf("connect needs an interactive prompt")
	}

	overwrite := false
	if c.session.HasContext(name) {
		ok, err := c.confirm(fmt.Sprintf("Context '%s' already exists. Overwrite?", name))
		if err != nil || !ok {
			return err
		}
		overwrite = true
	}

	url, err := c.prompter.Ask("Elasticsearch URL", DefaultURL)
	if err != nil {
		return err
	}
	username, err := c.prompter.Ask("Username (leave empty for none)", "")
	if err != nil {
		return err
	}

	target := escontext.Context{
		URL:      strings.TrimSpace(url),
		Username: strings.TrimSpace(username),
	}
	if target.Username != "" {
		if target.Password, err = c.prompter.AskSecret("Password"); err != nil {
			return err
		}
	}
	if err := target.Validate(); err != nil {
		return err
	}

	spin := c.progress(fmt.Sprintf("Checking connection to %s...", target.URL))
	spin.Start()
	err = c.session.Add(ctx, name, target, overwrite)
	if err != nil && !session.IsPersistError(err) {
		spin.Fail(fmt.Sprintf("Could not connect to %s", target.URL))
		return err
	}
	spin.Stop()

	c.output.Success("Connected to %s as context '%s'", target.URL, name)
	return c.reportPersist(err)
}

// Usage returns the usage string
func (c *ConnectCommand) Usage() string {
	return "connect <name>"
}

// Description returns the command description
func (c *ConnectCommand) Description() string {
	return "Add a cluster connection and switch to it"
}

// Help returns the long help text
func (c *ConnectCommand) Help() string {
	return `Prompts for the cluster URL, an optional username and its password.
The context is saved only after the cluster answered, and becomes the
current context. Connecting with an existing name asks before replacing it.

Examples:
  connect local
  connect prod-eu`
}

// Completions returns existing context names, which connect would replace.
func (c *ConnectCommand) Completions(input string) []string {
	if pos, _ := completionPosition(input); pos == 0 {
		return c.session.ContextNames()
	}
	return nil
}

// Aliases returns command aliases
func (c *ConnectCommand) Aliases() []string {
	return nil
}
