package shell

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Logger writes user-facing shell output. Command results go to the output
// writer undecorated; status messages are prefixed and colored. Colors follow
// the global go-pretty setting, see cli.SetColorEnabled.
type Logger struct {
	verbose bool
	out     io.Writer
	err     io.Writer
}

// NewLogger creates a logger writing to stdout and stderr.
func NewLogger(verbose bool) *Logger {
	return NewLoggerWithWriters(verbose, os.Stdout, os.Stderr)
}

// NewLoggerWithWriters creates a logger with custom writers
func NewLoggerWithWriters(verbose bool, out, errOut io.Writer) *Logger {
	return &Logger{verbose: verbose, out: out, err: errOut}
}

// SetVerbose sets the verbose mode
func (l *Logger) SetVerbose(verbose bool) {
	l.verbose = verbose
}

// Writer returns the output writer, for tables and panels.
func (l *Logger) Writer() io.Writer {
	return l.out
}

// Output writes user-facing output without a trailing newline
func (l *Logger) Output(format string, args ...interface{}) {
	fmt.Fprintf(l.out, format, args...)
}

// OutputLine writes user-facing output with a newline
func (l *Logger) OutputLine(format string, args ...interface{}) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

// Info writes an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	fmt.Fprintln(l.out, text.FgCyan.Sprint(fmt.Sprintf(format, args...)))
}

// Debug writes a timestamped message in verbose mode only
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.err, "[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), text.FgHiBlack.Sprint(msg))
}

// Warn writes a warning
func (l *Logger) Warn(format string, args ...interface{}) {
	fmt.Fprintln(l.out, text.FgYellow.Sprint("⚠ "+fmt.Sprintf(format, args...)))
}

// Error writes an error to the error writer
func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Fprintln(l.err, text.FgRed.Sprint(fmt.Sprintf(format, args...)))
}

// Success writes a success message
func (l *Logger) Success(format string, args ...interface{}) {
	fmt.Fprintln(l.out, text.FgGreen.Sprint("✓ "+fmt.Sprintf(format, args...)))
}
