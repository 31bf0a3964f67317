package shell

import (
	"strings"

	"escli/internal/shell/commands"
)

// Completer completes command names and delegates arguments to the command
// being typed. It implements readline.AutoCompleter.
type Completer struct {
	registry *commands.Registry
}

// NewCompleter creates a completer over registry.
func NewCompleter(registry *commands.Registry) *Completer {
	return &Completer{registry: registry}
}

// Do returns the suffixes that complete the word under the cursor and the
// length of that word.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	typed := strings.TrimLeft(string(line[:pos]), " ")

	var word string
	var candidates []string

	name, rest, hasArgs := strings.Cut(typed, " ")
	if !hasArgs {
		word = name
		candidates = c.registry.AllCompletions()
	} else {
		cmd, ok := c.registry.Get(strings.ToLower(name))
		if !ok {
			return nil, 0
		}
		rest = strings.TrimLeft(rest, " ")
		if i := strings.LastIndex(rest, " "); i >= 0 {
			word = rest[i+1:]
		} else {
			word = rest
		}
		candidates = cmd.Completions(rest)
	}

	var out [][]rune
	seen := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		if seen[candidate] || !strings.HasPrefix(candidate, word) {
			continue
		}
		seen[candidate] = true
		out = append(out, []rune(candidate[len(word):]+" "))
	}
	return out, len([]rune(word))
}
