// Where: internal/infra/process/runner.go
// What: Narrow interface for running external tools with captured output.
// Why: The gate, resolver and linker are tested against a fake runner instead of real JDKs.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

var errExecutableRequired = errors.New("executable is required")

// Command is a single external process invocation.
type Command struct {
	Executable string
	Args       []string
	Dir        string
}

// String renders the command line for diagnostics.
func (c Command) String() string {
	parts := append([]string{c.Executable}, c.Args...)
	return strings.Join(parts, " ")
}

// Result holds the captured output of a finished process.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	Combined []byte
	ExitCode int
}

// Success reports whether the process exited with code 0.
func (r Result) Success() bool { return r.ExitCode == 0 }

// Output returns the combined output as a string.
func (r Result) Output() string { return string(r.Combined) }

// CommandRunner runs a command to completion and captures its output.
// A non-zero exit is reported through Result.ExitCode, not as an error;
// the error is reserved for processes that could not run or were canceled.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner is a concrete implementation of CommandRunner using os/exec.
type ExecRunner struct{}

func (r ExecRunner) Run(ctx context.Context, command Command) (Result, error) {
	if strings.TrimSpace(command.Executable) == "" {
		return Result{}, errExecutableRequired
	}
	cmd := exec.CommandContext(ctx, command.Executable, command.Args...)
	cmd.Dir = command.Dir

	var stdout, stderr bytes.Buffer
	combined := &lockedBuffer{}
	cmd.Stdout = &teeWriter{primary: &stdout, combined: combined}
	cmd.Stderr = &teeWriter{primary: &stderr, combined: combined}

	err := cmd.Run()
	result := Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Combined: combined.Bytes(),
	}
	if err == nil {
		return result, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		return result, fmt.Errorf("run %s: %w", command.Executable, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	result.ExitCode = -1
	return result, fmt.Errorf("run %s: %w", command.Executable, err)
}

// lockedBuffer serializes writes from the stdout and stderr copiers.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}

type teeWriter struct {
	primary  *bytes.Buffer
	combined *lockedBuffer
}

func (w *teeWriter) Write(p []byte) (int, error) {
	n, err := w.primary.Write(p)
	if err != nil {
		return n, err
	}
	return w.combined.Write(p)
}
