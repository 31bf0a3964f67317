package cli

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// SetColorEnabled turns ANSI colors on or off for all go-pretty output.
func SetColorEnabled(enabled bool) {
	if enabled {
		text.EnableColors()
		return
	}
	text.DisableColors()
}

// StatusColor colors a cluster, index or shard status: green, yellow and red
// health values and the STARTED, RELOCATING, INITIALIZING and UNASSIGNED shard
// states. Other values are returned unchanged.
func StatusColor(status string) string {
	switch strings.ToLower(status) {
	case "green", "started", "success":
		return text.FgGreen.Sprint(status)
	case "yellow", "relocating", "initializing", "in_progress", "partial":
		return text.FgYellow.Sprint(status)
	case "red", "unassigned", "failed":
		return text.FgRed.Sprint(status)
	default:
		return status
	}
}

// YesNo renders a boolean as a colored Yes or No.
func YesNo(v bool) string {
	if v {
		return text.FgGreen.Sprint("Yes")
	}
	return text.FgRed.Sprint("No")
}

// Highlight renders s in bold cyan.
func Highlight(s string) string {
	return text.Colors{text.Bold, text.FgHiCyan}.Sprint(s)
}

// Dim renders s faint, for secondary information.
func Dim(s string) string {
	return text.Faint.Sprint(s)
}
