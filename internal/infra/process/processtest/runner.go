// Where: internal/infra/process/processtest/runner.go
// What: Scripted CommandRunner for tests of packages that shell out.
// Why: Share one fake across the gate, resolver, linker and command tests.
package processtest

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/poruru-code/jlinkasm/internal/infra/process"
)

// Response is returned by Runner for a matching executable.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
	// Effect runs before the response is returned, e.g. to create the
	// directory a real tool would have produced.
	Effect func(cmd process.Command) error
}

// Runner records every command and answers by executable base name
// (without any ".exe" suffix).
type Runner struct {
	mu        sync.Mutex
	Responses map[string]Response
	Calls     []process.Command
}

// NewRunner returns an empty Runner.
func NewRunner() *Runner {
	return &Runner{Responses: map[string]Response{}}
}

// On registers the response for a tool name such as "jdeps".
func (f *Runner) On(tool string, response Response) *Runner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses[tool] = response
	return f
}

func (f *Runner) Run(_ context.Context, cmd process.Command) (process.Result, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, process.Command{
		Executable: cmd.Executable,
		Args:       append([]string(nil), cmd.Args...),
		Dir:        cmd.Dir,
	})
	response, ok := f.Responses[toolName(cmd.Executable)]
	f.mu.Unlock()
	if !ok {
		return process.Result{}, nil
	}
	if response.Effect != nil {
		if err := response.Effect(cmd); err != nil {
			return process.Result{ExitCode: -1}, err
		}
	}
	return process.Result{
		Stdout:   []byte(response.Stdout),
		Stderr:   []byte(response.Stderr),
		Combined: []byte(response.Stdout + response.Stderr),
		ExitCode: response.ExitCode,
	}, response.Err
}

// CallsTo returns the recorded invocations of tool.
func (f *Runner) CallsTo(tool string) []process.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []process.Command
	for _, call := range f.Calls {
		if toolName(call.Executable) == tool {
			out = append(out, call)
		}
	}
	return out
}

func toolName(executable string) string {
	base := filepath.Base(filepath.FromSlash(executable))
	return strings.TrimSuffix(base, ".exe")
}
