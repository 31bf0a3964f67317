// Package cli holds the presentation helpers shared by the interactive shell
// and the cobra commands.
//
// # Tables
//
// Table wraps a go-pretty writer with the rounded style and cyan headers used
// throughout escli. NewKeyValueTable builds the two-column PARAMETER/VALUE
// layout used for single-object views such as cluster health. PlainTableWriter
// prints borderless kubectl-style columns for scripted use.
//
// # Panels
//
// Panel and JSONPanel draw a lipgloss rounded border around text or indented
// JSON. They are used for settings, mappings, policies and templates.
//
// # Progress and errors
//
// Progress wraps a briandowns spinner and can be disabled for non-interactive
// runs. Hint maps connection, status and context errors to a one-line
// suggestion printed below the error.
//
// # Structured output
//
// WriteStructured prints values as JSON or YAML for the --output flag.
package cli
