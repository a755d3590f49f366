// Where: internal/infra/logging/logging.go
// What: Diagnostic logger construction.
// Why: Command lines, probed versions and module sets are logged at debug level behind --verbose.
package logging

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/poruru-code/jlinkasm/internal/meta"
)

// New returns a logger writing to w. Debug output is enabled by verbose.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: meta.Slug,
		Level:  level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OrDiscard returns logger, or a discarding logger when it is nil.
func OrDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}
