// Package commands implements the escli shell commands.
//
// Every command implements Command and is registered in a Registry under its
// name and aliases. Commands parse their own arguments, talk to the cluster
// through cluster.Client and print through an OutputLogger, so they can be
// tested without a terminal.
package commands

import (
	"context"
	"errors"
	"io"
	"sort"

	"escli/internal/connection"
	escontext "escli/internal/context"
)

// ErrExit is returned by the exit command to end the shell loop.
var ErrExit = errors.New("exit")

// Command represents a shell command that can be executed interactively.
type Command interface {
	// Execute runs the command with the given arguments
	Execute(ctx context.Context, args []string) error

	// Usage returns the usage string for the command
	Usage() string

	// Description returns a brief description of what the command does
	Description() string

	// Completions returns candidates for the word being typed. input is the
	// text after the command name.
	Completions(input string) []string

	// Aliases returns alternative names for this command
	Aliases() []string
}

// Helper is implemented by commands with a longer help text than their usage line.
type Helper interface {
	Help() string
}

// OutputLogger separates user-facing output from diagnostic logging.
type OutputLogger interface {
	// User-facing output without decoration
	Output(format string, args ...interface{})
	OutputLine(format string, args ...interface{})

	// Status messages
	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Success(format string, args ...interface{})

	// Writer receives tables and panels.
	Writer() io.Writer
}

// Prompter asks the user for input. Implementations block until answered.
type Prompter interface {
	// Ask reads a line; an empty answer yields def.
	Ask(prompt, def string) (string, error)
	// AskSecret reads a line without echoing it.
	AskSecret(prompt string) (string, error)
	// Confirm asks a yes/no question that defaults to no.
	Confirm(prompt string) (bool, error)
}

// SessionInterface is the context and connection state commands operate on.
// session.Session implements it.
type SessionInterface interface {
	Current() string
	Context(name string) (escontext.Context, bool)
	HasContext(name string) bool
	ContextNames() []string
	ConfigPath() string
	URL() string
	Switch(ctx context.Context, name string) error
	Add(ctx context.Context, name string, c escontext.Context, overwrite bool) error
	Remove(name string) error
	Do(ctx context.Context, method, path string, body interface{}) (*connection.Result, error)
}

// Registry manages available commands for the shell.
type Registry struct {
	commands map[string]Command
	aliases  map[string]string // alias -> primary command name
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command to the registry.
func (r *Registry) Register(name string, cmd Command) {
	r.commands[name] = cmd
	for _, alias := range cmd.Aliases() {
		r.aliases[alias] = name
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) (Command, bool) {
	if cmd, exists := r.commands[name]; exists {
		return cmd, true
	}
	if primary, exists := r.aliases[name]; exists {
		cmd, exists := r.commands[primary]
		return cmd, exists
	}
	return nil, false
}

// Resolve returns the primary name for name or one of its aliases.
func (r *Registry) Resolve(name string) (string, bool) {
	if _, exists := r.commands[name]; exists {
		return name, true
	}
	primary, exists := r.aliases[name]
	return primary, exists
}

// List returns all registered command names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllCompletions returns all command names and aliases, sorted.
func (r *Registry) AllCompletions() []string {
	completions := r.List()
	for alias := range r.aliases {
		completions = append(completions, alias)
	}
	sort.Strings(completions)
	return completions
}
