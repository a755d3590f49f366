// Where: cmd/jlinkasm/cli_test.go
// What: Tests for CLI dependency wiring.
// Why: Ensure buildDependencies is deterministic.
package main

import (
	"errors"
	"testing"
)

func TestBuildDependenciesSuccess(t *testing.T) {
	origGetwd := getwd
	t.Cleanup(func() { getwd = origGetwd })
	getwd = func() (string, error) {
		return "/project", nil
	}

	deps, err := buildDependencies()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	cwd, err := deps.Getwd()
	if err != nil || cwd != "/project" {
		t.Fatalf("unexpected working dir: %q, %v", cwd, err)
	}
	if deps.Runner == nil || deps.Prompter == nil || deps.LookupEnv == nil {
		t.Fatalf("expected runner, prompter and env lookup to be wired")
	}
}

func TestBuildDependenciesGetwdError(t *testing.T) {
	origGetwd := getwd
	t.Cleanup(func() { getwd = origGetwd })
	getwd = func() (string, error) {
		return "", errors.New("boom")
	}

	if _, err := buildDependencies(); err == nil {
		t.Fatalf("expected error on getwd failure")
	}
}
