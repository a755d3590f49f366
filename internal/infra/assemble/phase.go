// Where: internal/infra/assemble/phase.go
// What: Per-platform phase progress reporting.
// Why: Keep user-facing phase output separate from assembly orchestration logic.
package assemble

import (
	"fmt"
	"io"
	"sync"
	"time"
)

type phaseReporter struct {
	out   io.Writer
	emoji bool
	mu    *sync.Mutex
}

func newPhaseReporter(out io.Writer, emoji bool) phaseReporter {
	if out == nil {
		out = io.Discard
	}
	return phaseReporter{out: out, emoji: emoji, mu: &sync.Mutex{}}
}

func (p phaseReporter) Run(label string, fn func() error) error {
	start := time.Now()
	err := fn()
	duration := time.Since(start)
	ok := err == nil
	status := "ok"
	if !ok {
		status = "failed"
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%s%s ... %s (%s)\n", p.prefix(ok), label, status, formatDuration(duration))
	return err
}

func (p phaseReporter) prefix(ok bool) string {
	if p.emoji {
		if ok {
			return "✅ "
		}
		return "❌ "
	}
	if ok {
		return "[ok] "
	}
	return "[fail] "
}

func formatDuration(duration time.Duration) string {
	if duration < time.Minute {
		return fmt.Sprintf("%.1fs", duration.Seconds())
	}
	total := int(duration.Seconds())
	mins := total / 60
	secs := total % 60
	return fmt.Sprintf("%dm%02ds", mins, secs)
}
