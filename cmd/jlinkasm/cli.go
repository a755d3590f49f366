// Where: cmd/jlinkasm/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"

	"github.com/poruru-code/jlinkasm/internal/command"
	"github.com/poruru-code/jlinkasm/internal/infra/interaction"
	"github.com/poruru-code/jlinkasm/internal/infra/process"
)

var getwd = os.Getwd

// buildDependencies constructs the runtime dependencies of the CLI.
// The working directory is resolved once so config discovery and relative
// output paths agree.
func buildDependencies() (command.Dependencies, error) {
	cwd, err := getwd()
	if err != nil {
		return command.Dependencies{}, err
	}

	return command.Dependencies{
		Out:       os.Stdout,
		ErrOut:    os.Stderr,
		In:        os.Stdin,
		Prompter:  interaction.HuhPrompter{},
		Runner:    process.ExecRunner{},
		Getwd:     func() (string, error) { return cwd, nil },
		LookupEnv: os.LookupEnv,
	}, nil
}
