package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"escli/internal/cli"
	escontext "escli/internal/context"
	"escli/internal/session"

	"github.com/spf13/cobra"
)

// contextDetails is the structured output of 'context show'. The password is
// never printed, only whether one is stored.
type contextDetails struct {
	Name        string `json:"name" yaml:"name"`
	URL         string `json:"url" yaml:"url"`
	Username    string `json:"username,omitempty" yaml:"username,omitempty"`
	PasswordSet bool   `json:"password_set" yaml:"password_set"`
	Current     bool   `json:"current" yaml:"current"`
}

// newContextCmd creates the non-interactive context command group. It shares
// the session with the shell, so 'use' and 'add' check connectivity first.
func newContextCmd(opts *rootOptions) *cobra.Command {
	contextCmd := &cobra.Command{
		Use:   "context",
		Short: "Manage escli contexts",
		Long: `Manage named contexts for different Elasticsearch clusters.

Examples:
  escli context                                   # List all contexts
  escli context current                           # Show current context
  escli context show prod -o json                 # Show a context as JSON
  escli context use prod                          # Switch to a context
  escli context add local --url http://localhost:9200
  escli context delete staging --force            # Remove without confirmation

Contexts are stored in ~/.elastic-cli/config.yml unless --config is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContextList(cmd, opts, false)
		},
	}

	contextCmd.AddCommand(
		newContextListCmd(opts),
		newContextCurrentCmd(opts),
		newContextShowCmd(opts),
		newContextUseCmd(opts),
		newContextAddCmd(opts),
		newContextDeleteCmd(opts),
	)
	return contextCmd
}

func newContextListCmd(opts *rootOptions) *cobra.Command {
	var noHeaders bool

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all contexts",
		Long:    `List all configured contexts. The current context is marked with an asterisk (*).`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContextList(cmd, opts, noHeaders)
		},
	}
	listCmd.Flags().BoolVar(&noHeaders, "no-headers", false, "Do not print the header row")
	return listCmd
}

func newContextCurrentCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show current context name",
		Long:  `Display the name of the current context. Prints nothing if no context is set.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			if name := sess.Current(); name != "" {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newContextShowCmd(opts *rootOptions) *cobra.Command {
	var output string

	showCmd := &cobra.Command{
		Use:     "show <name>",
		Aliases: []string{"describe"},
		Short:   "Show context details",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseOutputFormat(output)
			if err != nil {
				return err
			}
			sess, _, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			name := args[0]
			c, ok := sess.Context(name)
			if !ok {
				return &escontext.ContextNotFoundError{Name: name}
			}
			details := contextDetails{
				Name:        name,
				URL:         c.URL,
				Username:    c.Username,
				PasswordSet: c.Password != "",
				Current:     sess.Current() == name,
			}

			if format != cli.OutputFormatTable {
				return cli.WriteStructured(cmd.OutOrStdout(), format, details)
			}

			password := "N/A"
			if details.PasswordSet {
				password = "(set)"
			}
			table := cli.NewKeyValueTable(cmd.OutOrStdout(), "Context: "+name)
			table.AppendRow("URL", c.URL)
			table.AppendRow("User", c.DisplayUser())
			table.AppendRow("Password", password)
			table.AppendRow("Current", cli.YesNo(details.Current))
			table.Render()
			return nil
		},
	}
	showCmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")
	return showCmd
}

func newContextUseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "use <name>",
		Aliases: []string{"switch"},
		Short:   "Switch to a different context",
		Long: `Make the named context current. The cluster must answer the connectivity
check; otherwise no context is current afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			if err := persisted(cmd, sess.Switch(cmd.Context(), args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to context %q (%s)\n", args[0], sess.URL())
			return nil
		},
	}
}

func newContextAddCmd(opts *rootOptions) *cobra.Command {
	var (
		url      string
		username string
		password string
		force    bool
	)

	addCmd := &cobra.Command{
		Use:   "add <name> --url <url>",
		Short: "Add a new context",
		Long: `Add a named context and make it current. The context is saved only if
the cluster answers the connectivity check.

Context names start with a letter or digit and contain only letters,
digits, '.', '_' and '-' (at most 63 characters).

Examples:
  escli context add local --url http://localhost:9200
  escli context add prod --url https://es.example.com:9200 --username elastic --password secret`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := escontext.ValidateContextName(name); err != nil {
				return err
			}
			target := escontext.Context{URL: url, Username: username, Password: password}
			if err := target.Validate(); err != nil {
				return err
			}

			sess, _, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			if err := persisted(cmd, sess.Add(cmd.Context(), name, target, force)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Context %q added and set as current.\n", name)
			return nil
		},
	}

	addCmd.Flags().StringVar(&url, "url", "", "Elasticsearch URL (required)")
	addCmd.Flags().StringVar(&username, "username", "", "username for basic authentication")
	addCmd.Flags().StringVar(&password, "password", "", "password for basic authentication")
	addCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing context")
	_ = addCmd.MarkFlagRequired("url")
	return addCmd
}

func newContextDeleteCmd(opts *rootOptions) *cobra.Command {
	var force bool

	deleteCmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a context",
		Long: `Remove a context by name. Deleting the current context leaves no context set.

By default, this command asks for confirmation. Use --force to skip the prompt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			name := args[0]
			if !sess.HasContext(name) {
				return &escontext.ContextNotFoundError{Name: name}
			}
			wasCurrent := sess.Current() == name

			if !force {
				prompt := fmt.Sprintf("Delete context %q?", name)
				if wasCurrent {
					prompt = fmt.Sprintf("Delete context %q (current context)?", name)
				}
				if !confirmAction(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := persisted(cmd, sess.Remove(name)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Context %q deleted.\n", name)
			if wasCurrent {
				fmt.Fprintln(cmd.OutOrStdout(), "Note: This was the current context. Current context is now unset.")
			}
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return deleteCmd
}

func runContextList(cmd *cobra.Command, opts *rootOptions, noHeaders bool) error {
	sess, _, err := newSession(cmd, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	names := sess.ContextNames()
	if len(names) == 0 {
		fmt.Fprintln(out, "No contexts configured yet.")
		fmt.Fprintln(out, "")
		fmt.Fprintln(out, "Get started by adding your first context:")
		fmt.Fprintln(out, "  escli context add local --url http://localhost:9200")
		return nil
	}

	current := sess.Current()
	w := cli.NewPlainTableWriter(out)
	w.SetHeaders("current", "name", "url", "user")
	w.SetNoHeaders(noHeaders)
	for _, name := range names {
		c, _ := sess.Context(name)
		marker := ""
		if name == current {
			marker = "*"
		}
		w.AppendRow(marker, name, c.URL, c.DisplayUser())
	}
	w.Render()
	return nil
}

// persisted turns a save failure into a warning: the change is in effect for
// this process even though the file was not written.
func persisted(cmd *cobra.Command, err error) error {
	if err == nil || !session.IsPersistError(err) {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	return nil
}

// confirmAction prompts the user for confirmation and returns true if they confirm.
func confirmAction(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
