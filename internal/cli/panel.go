package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#42E7FF")).
			Padding(0, 1)

	panelTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7F6DFF"))
)

// MarshalJSON renders v as JSON indented by two spaces, without escaping HTML
// characters and without a trailing newline.
func MarshalJSON(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Panel writes body inside a rounded border with title above it.
func Panel(out io.Writer, title, body string) {
	if title != "" {
		fmt.Fprintln(out, panelTitle.Render(title))
	}
	fmt.Fprintln(out, panelBorder.Render(body))
}

// JSONPanel writes v as indented JSON inside a panel.
func JSONPanel(out io.Writer, title string, v interface{}) error {
	body, err := MarshalJSON(v)
	if err != nil {
		return err
	}
	Panel(out, title, body)
	return nil
}
