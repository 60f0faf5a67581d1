// Package logger provides charmbracelet/log loggers preconfigured for wordhint's binaries.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a new default charm log on stdout.
func New(prefix string) *log.Logger {
	return NewWithWriter(prefix, os.Stdout)
}

// NewWithWriter creates a default charm log writing to w. IPC mode passes
// stderr here since stdout carries protocol frames.
func NewWithWriter(prefix string, w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(w io.Writer, prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// UseStderr points the package-level charm logger at stderr.
func UseStderr() {
	log.SetOutput(os.Stderr)
}
