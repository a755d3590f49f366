// Where: internal/command/error_helpers.go
// What: Shared CLI error output.
// Why: Keep failure output and exit codes consistent across commands.
package command

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/poruru-code/jlinkasm/internal/infra/ui"
)

// exitWithError prints an error message to the output writer and returns
// exit code 1 for CLI error handling.
func exitWithError(out io.Writer, err error) int {
	plainUI(out).Warn(fmt.Sprintf("✗ %v", err))
	return 1
}

// exitWithSuggestion prints a message followed by next steps.
func exitWithSuggestion(out io.Writer, message string, suggestions []string) int {
	console := ui.New(out)
	console.Header("⚠️ ", message)
	if len(suggestions) > 0 {
		console.Info("Next steps:")
		for _, suggestion := range suggestions {
			console.ItemPlain("- " + suggestion)
		}
	}
	return 1
}

// exitWithSuggestionAndAvailable also lists the valid choices.
func exitWithSuggestionAndAvailable(out io.Writer, message string, suggestions, available []string) int {
	exitWithSuggestion(out, message, suggestions)
	if len(available) > 0 {
		console := ui.New(out)
		console.Info("Available:")
		for _, item := range available {
			console.ItemPlain("- " + item)
		}
	}
	return 1
}

// reportFailures prints every error joined into err, one per line.
func reportFailures(u ui.UserInterface, err error) {
	for _, single := range flattenErrors(err) {
		lines := strings.Split(strings.TrimRight(single.Error(), "\n"), "\n")
		u.Error(lines[0])
		for _, line := range lines[1:] {
			u.Info("   " + line)
		}
	}
}

func flattenErrors(err error) []error {
	if err == nil {
		return nil
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var out []error
	for _, inner := range joined.Unwrap() {
		out = append(out, flattenErrors(inner)...)
	}
	return out
}

var (
	errUnknownAssembler    = errors.New("unknown assembler")
	errNoPlatformSelected  = errors.New("no target platform selected")
	errRunnerNotConfigured = errors.New("assemble: command runner is not configured")
)
