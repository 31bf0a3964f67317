package commands

import (
	"fmt"
	"sort"
	"strings"

	"escli/internal/cli"
	"escli/internal/cluster"
	"escli/internal/session"
)

// Deps are the dependencies shared by all commands.
type Deps struct {
	Session  SessionInterface
	Output   OutputLogger
	Prompter Prompter
	// ShowProgress enables spinners while waiting on the cluster.
	ShowProgress bool
}

// BaseCommand provides common functionality for all shell commands.
type BaseCommand struct {
	session      SessionInterface
	client       *cluster.Client
	output       OutputLogger
	prompter     Prompter
	showProgress bool
}

// NewBaseCommand creates a base command from deps.
func NewBaseCommand(deps Deps) *BaseCommand {
	return &BaseCommand{
		session:      deps.Session,
		client:       cluster.NewClient(deps.Session),
		output:       deps.Output,
		prompter:     deps.Prompter,
		showProgress: deps.ShowProgress,
	}
}

// parseArgs checks that at least minArgs arguments were given.
func (b *BaseCommand) parseArgs(args []string, minArgs int, usage string) ([]string, error) {
	if len(args) < minArgs {
		return nil, fmt.Errorf("usage: %s", usage)
	}
	return args, nil
}

// progress returns a spinner writing to the command output.
func (b *BaseCommand) progress(msg string) *cli.Progress {
	return cli.NewProgress(b.output.Writer(), msg, b.showProgress)
}

// confirm asks a yes/no question and reports a declined answer.
func (b *BaseCommand) confirm(question string) (bool, error) {
	if b.prompter == nil {
		return false, fmt.Errorf("confirmation required but no prompt is available")
	}
	ok, err := b.prompter.Confirm(question)
	if err != nil {
		return false, err
	}
	if !ok {
		b.output.OutputLine("Cancelled")
	}
	return ok, nil
}

// reportPersist turns a failed save into a warning. The change already took
// effect in memory, so the command still succeeds.
func (b *BaseCommand) reportPersist(err error) error {
	if err == nil {
		return nil
	}
	if session.IsPersistError(err) {
		b.output.Warn("%v", err)
		b.output.Warn("The change applies to this session only")
		return nil
	}
	return err
}

// hintError attaches a suggestion to an error.
type hintError struct {
	err  error
	hint string
}

func (e *hintError) Error() string { return e.err.Error() }
func (e *hintError) Unwrap() error { return e.err }
func (e *hintError) Hint() string  { return e.hint }

func withHint(err error, format string, args ...interface{}) error {
	return &hintError{err: err, hint: fmt.Sprintf(format, args...)}
}

// IsHelpArg reports whether arg asks for a command's help.
func IsHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	}
	return false
}

// completionPosition returns the index of the argument being completed and
// the arguments before it.
func completionPosition(input string) (int, []string) {
	fields := strings.Fields(input)
	if input == "" || strings.HasSuffix(input, " ") {
		return len(fields), fields
	}
	return len(fields) - 1, fields[:len(fields)-1]
}

// sortedKeys returns the keys of m in order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// orDefault returns s, or def when s is empty.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// findSimilar returns the known word input most likely mistypes, or "".
func findSimilar(input string, known []string) string {
	for _, word := range known {
		if len(input) == len(word) && countDifferentChars(input, word) <= 2 {
			return word
		}
		if absDiff(len(input), len(word)) == 1 && hasCommonPrefix(input, word, 2) {
			return word
		}
	}
	return ""
}

// countDifferentChars counts how many characters differ between two strings of equal length.
func countDifferentChars(a, b string) int {
	diff := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			diff++
		}
	}
	return diff
}

// hasCommonPrefix checks if two strings share at least n common prefix characters.
func hasCommonPrefix(a, b string, n int) bool {
	minLen := min(len(a), len(b))
	if minLen < n {
		return false
	}
	common := 0
	for i := 0; i < minLen && a[i] == b[i]; i++ {
		common++
	}
	return common >= n
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
