package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"escli/internal/cli"
	"escli/internal/session"
	"escli/internal/shell/commands"
	"escli/pkg/logging"

	"github.com/chzyer/readline"
)

// maxContextNameLength is the maximum length for context names in the prompt.
// Longer names keep their start and end around an ellipsis.
const maxContextNameLength = 28

// commandExecutionTimeout bounds a single command, including its prompts.
const commandExecutionTimeout = 5 * time.Minute

const subsystem = "Shell"

// Options configures a REPL.
type Options struct {
	// HistoryFile stores the command history. Empty disables history.
	HistoryFile string
	// ShowProgress shows spinners while waiting on the cluster.
	ShowProgress bool
}

// DefaultHistoryFile returns ~/.elastic-cli/history.
func DefaultHistoryFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".elastic-cli", "history"), nil
}

// REPL is the interactive Elasticsearch shell.
//
// Lines are split on whitespace; the first word selects a command by name or
// alias and the rest are its arguments. Command errors are printed with a
// recovery hint and never end the loop. exit, quit, q and Ctrl+D do.
type REPL struct {
	session         *session.Session
	logger          *Logger
	prompter        *Prompter
	rl              *readline.Instance
	commandRegistry *commands.Registry
	opts            Options
	currentContext  string
	mu              sync.RWMutex
}

// NewREPL creates a shell over sess and registers all commands. The prompt
// follows the session's current context.
func NewREPL(sess *session.Session, logger *Logger, opts Options) *REPL {
	r := &REPL{
		session:         sess,
		logger:          logger,
		commandRegistry: commands.NewRegistry(),
		opts:            opts,
		currentContext:  sess.Current(),
	}
	r.prompter = NewPrompter(nil, r.buildPrompt)
	sess.SetOnContextChange(r.setCurrentContext)
	r.registerCommands()
	return r
}

func (r *REPL) registerCommands() {
	deps := commands.Deps{
		Session:      r.session,
		Output:       r.logger,
		Prompter:     r.prompter,
		ShowProgress: r.opts.ShowProgress,
	}

	r.commandRegistry.Register("help", commands.NewHelpCommand(deps, r.commandRegistry))
	r.commandRegistry.Register("connect", commands.NewConnectCommand(deps))
	r.commandRegistry.Register("context", commands.NewContextCommand(deps))
	r.commandRegistry.Register("health", commands.NewHealthCommand(deps))
	r.commandRegistry.Register("nodes", commands.NewNodesCommand(deps))
	r.commandRegistry.Register("indices", commands.NewIndicesCommand(deps))
	r.commandRegistry.Register("shards", commands.NewShardsCommand(deps))
	r.commandRegistry.Register("tasks", commands.NewTasksCommand(deps))
	r.commandRegistry.Register("settings", commands.NewSettingsCommand(deps))
	r.commandRegistry.Register("snapshots", commands.NewSnapshotsCommand(deps))
	r.commandRegistry.Register("ilm", commands.NewILMCommand(deps))
	r.commandRegistry.Register("templates", commands.NewTemplatesCommand(deps))
	r.commandRegistry.Register("exit", commands.NewExitCommand(deps))
}

// buildPrompt returns "(<context>) escli> " or "(no context) escli> ".
func (r *REPL) buildPrompt() string {
	r.mu.RLock()
	name := r.currentContext
	r.mu.RUnlock()

	if name == "" {
		return "(no context) escli> "
	}
	return fmt.Sprintf("(%s) escli> ", truncateContextName(name))
}

// truncateContextName shortens long names to maxContextNameLength, keeping
// 60% of the space for the start and 40% for the end.
// Example: "production-us-east-1-cluster-01" becomes "production-us-e...cluster-01"
func truncateContextName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxContextNameLength {
		return name
	}

	ellipsis := "..."
	available := maxContextNameLength - len(ellipsis)
	startLen := (available * 3) / 5
	endLen := available - startLen

	return string(runes[:startLen]) + ellipsis + string(runes[len(runes)-endLen:])
}

func (r *REPL) setCurrentContext(name string) {
	r.mu.Lock()
	r.currentContext = name
	r.mu.Unlock()

	if r.rl != nil {
		r.rl.SetPrompt(r.buildPrompt())
	}
}

// executeCommand parses and runs one input line.
func (r *REPL) executeCommand(ctx context.Context, input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	commandName := strings.ToLower(parts[0])
	args := parts[1:]

	command, exists := r.commandRegistry.Get(commandName)
	if !exists {
		return fmt.Errorf("unknown command: %s. Type 'help' for available commands", parts[0])
	}

	if len(args) == 1 && commands.IsHelpArg(args[0]) {
		primary, _ := r.commandRegistry.Resolve(commandName)
		commands.ShowCommandHelp(r.logger, primary, command)
		return nil
	}

	commandCtx, cancel := context.WithTimeout(ctx, commandExecutionTimeout)
	defer cancel()

	logging.Debug(subsystem, "Running %s %v", commandName, args)
	return command.Execute(commandCtx, args)
}

// reportError prints a command error and its hint.
func (r *REPL) reportError(err error) {
	r.logger.Error("Error: %v", err)
	if hint := cli.Hint(err); hint != "" {
		r.logger.OutputLine("%s", cli.Dim("Hint: "+hint))
	}
}

func (r *REPL) printWelcome() {
	status := "Not connected. Use 'connect <name>' or 'context use <name>'."
	if name := r.session.Current(); name != "" {
		status = fmt.Sprintf("Connected to %s (%s)", name, r.session.URL())
	}
	cli.Panel(r.logger.Writer(), "escli",
		"Interactive Elasticsearch shell\n"+
			status+"\n"+
			"Type 'help' for available commands. Use TAB for completion.")
}

func (r *REPL) readlineConfig() *readline.Config {
	historyFile := r.opts.HistoryFile
	if historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(historyFile), 0700); err != nil {
			logging.Warn(subsystem, "Command history disabled: %v", err)
			historyFile = ""
		}
	}

	return &readline.Config{
		Prompt:          r.buildPrompt(),
		HistoryFile:     historyFile,
		AutoComplete:    NewCompleter(r.commandRegistry),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	}
}

// Run reads and executes commands until exit, EOF or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	rl, err := readline.NewEx(r.readlineConfig())
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()
	r.rl = rl
	r.prompter.rl = rl

	r.printWelcome()

	for {
		select {
		case <-ctx.Done():
			r.logger.OutputLine("Goodbye!")
			return nil
		default:
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if errors.Is(err, io.EOF) {
			r.logger.OutputLine("Goodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if err := r.executeCommand(ctx, input); err != nil {
			if errors.Is(err, commands.ErrExit) {
				r.logger.OutputLine("Goodbye!")
				return nil
			}
			if errors.Is(err, ErrCancelled) {
				r.logger.OutputLine("Cancelled")
			} else {
				r.reportError(err)
			}
		}

		r.logger.OutputLine("")
	}
}

// filterInput blocks Ctrl+Z, which would suspend the shell mid-line.
func filterInput(r rune) (rune, bool) {
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}
