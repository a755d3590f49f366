// Where: internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/poruru-code/jlinkasm/internal/infra/interaction"
	"github.com/poruru-code/jlinkasm/internal/infra/process"
	"github.com/poruru-code/jlinkasm/internal/version"
)

// Dependencies holds everything a command needs from the outside world.
// Runner and Prompter are wired by main; the remaining fields default to
// the process environment.
type Dependencies struct {
	Out       io.Writer
	ErrOut    io.Writer
	In        *os.File
	Prompter  interaction.Prompter
	Runner    process.CommandRunner
	Getwd     func() (string, error)
	LookupEnv func(string) (string, bool)
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	EnvFile  string      `name:"env-file" help:"Path to .env file"`
	Assemble AssembleCmd `cmd:"" help:"Assemble runtime images and archives"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// VersionCmd prints the CLI version.
type VersionCmd struct{}

// Run is the main entry point for CLI command execution.
// It parses args, loads the env file and dispatches to the command
// handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	deps = deps.withDefaults()
	out := deps.Out

	if len(args) == 0 {
		return runNoArgs(out)
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(cliName()),
		kong.Description("Assemble jlink runtime images into reproducible archives."),
		kong.Writers(out, deps.ErrOut),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return handleParseError(args, err, out)
	}

	loadEnvFile(cli.EnvFile, out)

	if exitCode, handled := dispatchCommand(ctx.Command(), cli, deps); handled {
		return exitCode
	}

	plainUI(out).Warn("unknown command")
	return 1
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.ErrOut == nil {
		d.ErrOut = os.Stderr
	}
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Getwd == nil {
		d.Getwd = os.Getwd
	}
	if d.LookupEnv == nil {
		d.LookupEnv = os.LookupEnv
	}
	return d
}

// loadEnvFile loads the --env-file, or .env from the working directory
// when present. Variables already set in the environment win.
func loadEnvFile(path string, out io.Writer) {
	ui := plainUI(out)
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			ui.Warn(fmt.Sprintf("Warning: failed to load env file %s: %v", path, err))
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			ui.Warn(fmt.Sprintf("Warning: failed to load .env: %v", err))
		}
	}
}

type commandHandler func(CLI, Dependencies) int

func dispatchCommand(command string, cli CLI, deps Dependencies) (int, bool) {
	handlers := map[string]commandHandler{
		"assemble": runAssemble,
		"version":  func(_ CLI, deps Dependencies) int { return runVersion(deps.Out) },
	}

	if handler, ok := handlers[command]; ok {
		return handler(cli, deps), true
	}
	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	plainUI(out).Info(version.GetVersion())
	return 0
}

// runNoArgs prints a short usage hint.
func runNoArgs(out io.Writer) int {
	ui := plainUI(out)
	cmd := cliName()
	ui.Info("Usage:")
	ui.Info(fmt.Sprintf("  %s assemble [--config <path>] [--assembler <name>] [--select-platform <platform>] [flags]", cmd))
	ui.Info("")
	ui.Info(fmt.Sprintf("Try: %s assemble --help", cmd))
	return 0
}

// handleParseError provides user-friendly error messages for parse failures.
func handleParseError(args []string, err error, out io.Writer) int {
	_ = args
	msg := err.Error()
	if strings.Contains(msg, "expected") && strings.Contains(msg, "value") {
		ui := plainUI(out)
		cmd := cliName()
		switch {
		case strings.Contains(msg, "--config"):
			ui.Warn("`-c/--config` expects a value. Provide a path or omit it to search for " + configFileHint() + ".")
			ui.Info(fmt.Sprintf("Example: %s assemble -c ./jlinkasm.yml", cmd))
			return 1
		case strings.Contains(msg, "--parallel"):
			ui.Warn("`-j/--parallel` expects a number of platforms to build at once.")
			ui.Info(fmt.Sprintf("Example: %s assemble -j 4", cmd))
			return 1
		case strings.Contains(msg, "--timeout"):
			ui.Warn("`--timeout` expects a duration.")
			ui.Info(fmt.Sprintf("Example: %s assemble --timeout 10m", cmd))
			return 1
		case strings.Contains(msg, "--env-file"):
			ui.Warn("`--env-file` expects a value. Provide a file path.")
			ui.Info(fmt.Sprintf("Example: %s --env-file .env.release assemble", cmd))
			return 1
		}
	}
	return exitWithError(out, err)
}
