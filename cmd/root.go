package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"escli/internal/cli"
	"escli/internal/config"
	"escli/internal/connection"
	escontext "escli/internal/context"
	"escli/internal/session"
	"escli/internal/shell"
	"escli/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
)

// appVersion is injected by main through SetVersion.
var appVersion = "dev"

// rootOptions holds the persistent flags shared by all commands.
type rootOptions struct {
	configFile     string
	contextName    string
	checkTimeout   time.Duration
	requestTimeout time.Duration
	logLevel       string
	verbose        bool
	noColor        bool
}

// SetVersion sets the version reported by 'escli version' and sent in the
// User-Agent header.
func SetVersion(v string) {
	appVersion = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return appVersion
}

// newRootCmd builds the command tree. Running the root command without a
// subcommand starts the interactive shell.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "escli",
		Short: "Interactive shell for managing Elasticsearch clusters",
		Long: `escli is an interactive shell for inspecting and administering
Elasticsearch clusters.

Cluster endpoints are saved as named contexts in ~/.elastic-cli/config.yml.
Start the shell and add one with 'connect <name>', or manage contexts
non-interactively with 'escli context'.`,
		Version: appVersion,
		Args:    cobra.NoArgs,
		// Errors are printed by Execute together with their hint.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}
	rootCmd.SetVersionTemplate(`{{printf "escli version %s\n" .Version}}`)

	bindRootFlags(rootCmd, opts)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newContextCmd(opts))

	return rootCmd
}

func bindRootFlags(cmd *cobra.Command, opts *rootOptions) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "contexts file (default ~/.elastic-cli/config.yml)")
	flags.StringVar(&opts.contextName, "context", "", "context to use instead of the saved current context")
	flags.DurationVar(&opts.checkTimeout, "check-timeout", connection.DefaultCheckTimeout, "timeout of the connectivity check")
	flags.DurationVar(&opts.requestTimeout, "timeout", connection.DefaultRequestTimeout, "timeout of cluster requests")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "diagnostic log level (debug, info, warn, error)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "show debug output")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
}

// Execute is the main entry point for the CLI application. It is called by
// main.main() and exits the process on failure.
func Execute() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(ExitCodeError)
	}
}

// run executes the command line in args and prints a failure with its hint.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		if hint := cli.Hint(err); hint != "" {
			fmt.Fprintf(errOut, "Hint: %s\n", hint)
		}
	}
	return err
}

// resolveSettings layers explicitly set flags over defaults, .env and the
// environment.
func resolveSettings(cmd *cobra.Command, opts *rootOptions) (config.Settings, error) {
	settings, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		return config.Settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("config") {
		settings.ConfigFile = opts.configFile
	}
	if flags.Changed("context") {
		settings.Context = opts.contextName
	}
	if flags.Changed("check-timeout") {
		settings.CheckTimeout = opts.checkTimeout
	}
	if flags.Changed("timeout") {
		settings.RequestTimeout = opts.requestTimeout
	}
	if flags.Changed("log-level") {
		settings.LogLevel = opts.logLevel
	} else if opts.verbose {
		settings.LogLevel = "debug"
	}
	if flags.Changed("no-color") {
		settings.NoColor = opts.noColor
	}

	if err := settings.Validate(); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

// newSession sets up logging and colors and returns a loaded session.
// A configuration file that cannot be read or parsed is reported and replaced
// by an empty configuration.
func newSession(cmd *cobra.Command, opts *rootOptions) (*session.Session, config.Settings, error) {
	settings, err := resolveSettings(cmd, opts)
	if err != nil {
		return nil, config.Settings{}, err
	}

	logging.InitForCLI(settings.Level(), cmd.ErrOrStderr())
	cli.SetColorEnabled(!settings.NoColor)

	var store *escontext.Storage
	if settings.ConfigFile != "" {
		store = escontext.NewStorageWithFile(settings.ConfigFile)
	} else {
		store, err = escontext.NewStorage()
		if err != nil {
			return nil, config.Settings{}, err
		}
	}

	conn := connection.NewManager(connection.Options{
		CheckTimeout:   settings.CheckTimeout,
		RequestTimeout: settings.RequestTimeout,
		UserAgent:      "escli/" + appVersion,
	})

	sess := session.New(store, conn)
	if err := sess.Load(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\nContinuing with an empty configuration.\n", err)
	}
	return sess, settings, nil
}

func runShell(cmd *cobra.Command, opts *rootOptions) error {
	sess, settings, err := newSession(cmd, opts)
	if err != nil {
		return err
	}

	logger := shell.NewLoggerWithWriters(opts.verbose, cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx := cmd.Context()

	if err := sess.Restore(ctx, settings.Context); err != nil {
		logger.Warn("Could not restore context: %v", err)
		if hint := cli.Hint(err); hint != "" {
			logger.OutputLine("%s", cli.Dim("Hint: "+hint))
		}
	}

	repl := shell.NewREPL(sess, logger, shell.Options{
		HistoryFile:  settings.HistoryFile,
		ShowProgress: true,
	})
	return repl.Run(ctx)
}
