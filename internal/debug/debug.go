// Package debug provides opt-in diagnostic logging for easyowl.
// Output is enabled with OWL_DEBUG=1 or the --verbose flag and goes to stderr,
// plus an optional size-rotated log file.
package debug

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu      sync.Mutex
	enabled = os.Getenv("OWL_DEBUG") != ""
	verbose bool
	stderr  io.Writer = os.Stderr
	file    *lumberjack.Logger
)

// FileOptions configures the rotating log file sink.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Enabled reports whether debug output is on.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled || verbose
}

// SetVerbose toggles debug output independently of OWL_DEBUG.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

// SetOutput redirects console output. Intended for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	stderr = w
	mu.Unlock()
}

// SetLogFile mirrors every debug line into a rotating file.
// An empty path closes and detaches the current file.
func SetLogFile(opts FileOptions) error {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
		file = nil
	}
	if opts.Path == "" {
		return nil
	}
	file = &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	return nil
}

// Logf writes a formatted line when debug output is enabled.
// The log file, when configured, receives every line regardless.
func Logf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	if enabled || verbose {
		_, _ = io.WriteString(stderr, msg)
	}
	if file != nil {
		_, _ = fmt.Fprintf(file, "%s %s", time.Now().Format(time.RFC3339), msg)
	}
}
