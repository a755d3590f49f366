// Where: internal/command/app_test.go
// What: Tests for CLI run behavior.
// Why: Ensure command routing remains stable.
package command

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRunNoArgsUsesBrandName(t *testing.T) {
	t.Setenv("CLI_CMD", "acme")

	var buf bytes.Buffer
	if code := Run(nil, Dependencies{Out: &buf}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	output := buf.String()
	if !strings.Contains(output, "acme assemble") {
		t.Fatalf("expected brand name in usage output, got: %q", output)
	}
	if strings.Contains(output, "jlinkasm assemble") {
		t.Fatalf("unexpected default brand in output: %q", output)
	}
}

func TestRunVersion(t *testing.T) {
	var buf bytes.Buffer
	if code := Run([]string{"version"}, Dependencies{Out: &buf}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if strings.TrimSpace(buf.String()) == "" {
		t.Fatalf("expected version output")
	}
}

func TestRunUnknownFlag(t *testing.T) {
	var buf bytes.Buffer
	if code := Run([]string{"assemble", "--bogus"}, Dependencies{Out: &buf, ErrOut: &buf}); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "✗") {
		t.Fatalf("expected error marker, got %q", buf.String())
	}
}

func TestHandleParseErrorMissingConfigValue(t *testing.T) {
	t.Setenv("CLI_CMD", "")
	var buf bytes.Buffer
	code := handleParseError(nil, errors.New("--config: expected string value but got EOL"), &buf)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "jlinkasm assemble -c ./jlinkasm.yml") {
		t.Fatalf("expected config example, got %q", buf.String())
	}
}

func TestHandleParseErrorGeneric(t *testing.T) {
	var buf bytes.Buffer
	code := handleParseError([]string{"assemble"}, errors.New("some other error"), &buf)
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "✗ some other error") {
		t.Errorf("expected error to be printed: %s", buf.String())
	}
}
