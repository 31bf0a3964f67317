package cli

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how cobra commands print results.
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// ParseOutputFormat validates an --output flag value. Empty means table.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", OutputFormatTable:
		return OutputFormatTable, nil
	case OutputFormatJSON, OutputFormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, json or yaml)", s)
	}
}

// WriteStructured prints v as JSON or YAML.
func WriteStructured(out io.Writer, format OutputFormat, v interface{}) error {
	switch format {
	case OutputFormatJSON:
		s, err := MarshalJSON(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, s)
		return err
	case OutputFormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not a structured format", format)
	}
}
