// Package logging provides diagnostic logging for escli.
//
// Diagnostics are kept apart from command output: the interactive shell prints
// results through its own writer, while this package records what happened
// underneath (HTTP requests, configuration loading, context switches).
//
// The handler is a charmbracelet/log logger with colored level labels. It also
// implements slog.Handler and is installed as the slog default, so any code
// using log/slog directly shares the same output and level.
//
// # Log Levels
//   - Debug: request tracing and internal state changes
//   - Info: lifecycle messages (configuration loaded, context switched)
//   - Warn: recoverable problems (unparsable config file, failed save)
//   - Error: failures reported with an attached error
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Session", "Switched to context %s", name)
//	logging.Debug("Connection", "GET %s", url)
//	logging.Error("Store", err, "Failed to save %s", path)
//
// Each entry carries a subsystem attribute so output can be filtered by area.
// Messages below the configured level are dropped before formatting.
//
// RestyLogger adapts the HTTP client's logger interface to this package.
package logging
