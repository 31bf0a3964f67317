package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"escli/internal/cli"
	"escli/internal/cluster"
)

var ilmSubcommands = []string{"list", "show", "explain"}

// ILMCommand inspects index lifecycle management policies.
type ILMCommand struct {
	*BaseCommand
}

// NewILMCommand creates a new ilm command
func NewILMCommand(deps Deps) *ILMCommand {
	return &ILMCommand{BaseCommand: NewBaseCommand(deps)}
}

// Execute runs one of list, show or explain.
func (c *ILMCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("specify list, show <policy> or explain <index>")
	}

	sub := strings.ToLower(args[0])
	switch sub {
	case "list":
		if len(args) > 1 {
			return errors.New("'ilm list' takes no arguments")
		}
		return c.list(ctx)
	case "show":
		if len(args) != 2 {
			return errors.New("usage: ilm show <policy>")
		}
		return c.show(ctx, args[1])
	case "explain":
		if len(args) != 2 {
			return errors.New("usage: ilm explain <index>")
		}
		return c.explain(ctx, args[1])
	default:
		return fmt.Errorf("unknown ilm subcommand %q. Available: %s", args[0], strings.Join(ilmSubcommands, ", "))
	}
}

func (c *ILMCommand) list(ctx context.Context) error {
	policies, err := c.client.ILMPolicies(ctx)
	if err != nil {
		return err
	}
	if len(policies) == 0 {
		c.output.OutputLine("No ILM policies found")
		return nil
	}

	tbl := cli.NewTable(c.output.Writer(), fmt.Sprintf("ILM Policies (%d)", len(policies)),
		"POLICY", "VERSION", "MODIFIED")
	for _, name := range sortedKeys(policies) {
		p := policies[name]
		tbl.AppendRow(name, p.Version, orDefault(p.ModifiedDate, "N/A"))
	}
	tbl.Render()
	return nil
}

func (c *ILMCommand) show(ctx context.Context, name string) error {
	policy, err := c.client.ILMPolicy(ctx, name)
	if err != nil {
		return withHint(err, "If '%s' is an index, try: ilm explain %s", name, name)
	}
	return cli.JSONPanel(c.output.Writer(), "ILM Policy: "+name, policy.Policy)
}

func (c *ILMCommand) explain(ctx context.Context, index string) error {
	var status *cluster.ILMIndexStatus
	err := c.progress(fmt.Sprintf("Explaining lifecycle of %s...", index)).Run(func() (err error) {
		status, err = c.client.ILMExplain(ctx, index)
		return err
	})
	if err != nil {
		return err
	}

	title := "ILM Status: " + orDefault(status.Index, index)
	tbl := cli.NewKeyValueTable(c.output.Writer(), title)
	tbl.AppendRow("Managed", cli.YesNo(status.Managed))
	if !status.Managed {
		tbl.Render()
		return nil
	}
	tbl.AppendRow("Policy", orDefault(status.Policy, "N/A"))
	tbl.AppendRow("Phase", orDefault(status.Phase, "N/A"))
	tbl.AppendRow("Action", orDefault(status.Action, "N/A"))
	tbl.AppendRow("Step", orDefault(status.Step, "N/A"))
	tbl.Render()

	if len(status.StepInfo) > 0 {
		return cli.JSONPanel(c.output.Writer(), "Step Info", status.StepInfo)
	}
	return nil
}

// Usage returns the usage string
func (c *ILMCommand) Usage() string {
	return "ilm <list|show <policy>|explain <index>>"
}

// Description returns the command description
func (c *ILMCommand) Description() string {
	return "Inspect index lifecycle policies"
}

// Help returns the long help text
func (c *ILMCommand) Help() string {
	return `ilm list              List all ILM policies
ilm show <policy>     Show the JSON definition of a policy
ilm explain <index>   Show the lifecycle phase, action and step of an index

Examples:
  ilm list
  ilm show my-policy
  ilm explain my-index-2024.01.01`
}

// Completions returns possible completions
func (c *ILMCommand) Completions(input string) []string {
	if pos, _ := completionPosition(input); pos == 0 {
		return ilmSubcommands
	}
	return nil
}

// Aliases returns command aliases
func (c *ILMCommand) Aliases() []string {
	return nil
}
