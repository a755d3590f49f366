// Where: internal/command/assemble.go
// What: Assemble command entry and orchestration.
// Why: Load the config once, then run every selected assembler and report all results together.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	domain "github.com/poruru-code/jlinkasm/internal/domain/assemble"
	"github.com/poruru-code/jlinkasm/internal/infra/assemble"
	"github.com/poruru-code/jlinkasm/internal/infra/config"
	"github.com/poruru-code/jlinkasm/internal/infra/interaction"
	"github.com/poruru-code/jlinkasm/internal/infra/logging"
	"github.com/poruru-code/jlinkasm/internal/infra/ui"
	"github.com/poruru-code/jlinkasm/internal/meta"
)

// AssembleCmd defines the assemble command flags.
type AssembleCmd struct {
	Config          string        `short:"c" help:"Path to jlinkasm.yml (default: search upward from the working directory)"`
	OutputDirectory string        `short:"o" name:"output-directory" env:"JLINKASM_OUTPUT_DIR" help:"Output directory (default: out/jlinkasm next to the config file)"`
	Assembler       []string      `short:"a" sep:"," help:"Assembler name(s) to run (repeatable or comma-separated, default: all)"`
	SelectPlatform  []string      `name:"select-platform" sep:"," env:"JLINKASM_SELECT_PLATFORMS" help:"Only assemble these platforms (exact or OS prefix such as linux)"`
	RejectPlatform  []string      `name:"reject-platform" sep:"," env:"JLINKASM_REJECT_PLATFORMS" help:"Skip these platforms"`
	Parallel        int           `short:"j" default:"1" env:"JLINKASM_PARALLEL" help:"Platforms built concurrently"`
	Timeout         time.Duration `help:"Abort the run after this duration (0 disables)"`
	Interactive     bool          `short:"i" help:"Choose assemblers and platforms interactively"`
	Verbose         bool          `short:"v" help:"Verbose output"`
	Emoji           bool          `name:"emoji" help:"Enable emoji output (default: auto)"`
	NoEmoji         bool          `name:"no-emoji" help:"Disable emoji output"`
}

// runAssemble executes the 'assemble' command.
func runAssemble(cli CLI, deps Dependencies) int {
	out := deps.Out
	flags := cli.Assemble

	emojiEnabled, err := resolveEmojiEnabled(out, flags.Emoji, flags.NoEmoji)
	if err != nil {
		return exitWithError(out, err)
	}
	if deps.Runner == nil {
		return exitWithError(out, errRunnerNotConfigured)
	}
	if flags.Parallel < 1 {
		return exitWithError(out, fmt.Errorf("assemble: --parallel must be at least 1, got %d", flags.Parallel))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if flags.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, flags.Timeout)
		defer cancelTimeout()
	}

	cmd := assembleCommand{
		deps:   deps,
		flags:  flags,
		ui:     ui.NewAssembleUI(out, emojiEnabled),
		out:    out,
		emoji:  emojiEnabled,
		logger: logging.New(deps.ErrOut, flags.Verbose),
	}
	plan, err := cmd.plan()
	if err != nil {
		var unknown *unknownAssemblerError
		if errors.As(err, &unknown) {
			return exitWithSuggestionAndAvailable(out,
				unknown.Error(),
				[]string{fmt.Sprintf("%s assemble --assembler <name>", cliName())},
				unknown.available,
			)
		}
		return exitWithError(out, err)
	}
	if err := cmd.run(ctx, plan); err != nil {
		return 1
	}
	return 0
}

type assembleCommand struct {
	deps   Dependencies
	flags  AssembleCmd
	ui     ui.UserInterface
	out    io.Writer
	emoji  bool
	logger *log.Logger
}

// assemblePlan is the resolved input of one run.
type assemblePlan struct {
	config     *config.Config
	configPath string
	outputDir  string
	modTime    time.Time
	jlink      []*config.JlinkAssembler
	archive    []*config.ArchiveAssembler
	filter     domain.PlatformFilter
}

func (c assembleCommand) plan() (assemblePlan, error) {
	cwd, err := c.deps.Getwd()
	if err != nil {
		return assemblePlan{}, fmt.Errorf("resolve working directory: %w", err)
	}
	path, err := config.ResolveConfigPath(c.flags.Config, cwd)
	if err != nil {
		return assemblePlan{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return assemblePlan{}, err
	}
	if err := config.Validate(cfg); err != nil {
		return assemblePlan{}, err
	}
	modTime, err := config.ArchiveTimestamp(cfg.Project, c.deps.LookupEnv)
	if err != nil {
		return assemblePlan{}, err
	}
	c.logger.Debug("config loaded", "path", path, "archiveTimestamp", modTime.Format(time.RFC3339))

	plan := assemblePlan{
		config:     cfg,
		configPath: path,
		outputDir:  resolveOutputDir(c.flags.OutputDirectory, cwd, cfg.BaseDir),
		modTime:    modTime,
		filter: domain.PlatformFilter{
			Selected: trimAll(c.flags.SelectPlatform),
			Rejected: trimAll(c.flags.RejectPlatform),
		},
	}

	names, err := c.selectAssemblers(cfg)
	if err != nil {
		return assemblePlan{}, err
	}
	for _, name := range names {
		if asm, ok := cfg.Assemble.Jlink[name]; ok {
			plan.jlink = append(plan.jlink, asm)
		}
		if asm, ok := cfg.Assemble.Archive[name]; ok {
			plan.archive = append(plan.archive, asm)
		}
	}

	if c.interactive() && len(plan.jlink) > 0 {
		selected, err := c.promptPlatforms(plan.jlink, plan.filter)
		if err != nil {
			return assemblePlan{}, err
		}
		plan.filter.Selected = selected
	}
	return plan, nil
}

func (c assembleCommand) run(ctx context.Context, plan assemblePlan) error {
	c.ui.Block("🛠️", "Assemble plan", []ui.KeyValue{
		{Key: "Config", Value: plan.configPath},
		{Key: "Output", Value: plan.outputDir},
		{Key: "Assemblers", Value: strings.Join(planNames(plan), ", ")},
		{Key: "Platforms", Value: describeFilter(plan.filter)},
		{Key: "Archive timestamp", Value: plan.modTime.UTC().Format(time.RFC3339)},
	})

	var (
		results  []assemble.Result
		archives []archiveResult
		errs     []error
	)
	for _, asm := range plan.jlink {
		runner := assemble.JlinkAssembler{
			Runner:   c.deps.Runner,
			Host:     assemble.CurrentHost(),
			Logger:   c.logger,
			Out:      c.out,
			Emoji:    c.emoji,
			Parallel: c.flags.Parallel,
		}
		result, err := runner.Assemble(ctx, assemble.Request{
			Config:    plan.config,
			Assembler: asm,
			OutputDir: plan.outputDir,
			Filter:    plan.filter,
			ModTime:   plan.modTime,
		})
		results = append(results, result)
		if err != nil {
			errs = append(errs, err)
		}
	}
	for _, asm := range plan.archive {
		written, err := assemble.ArchiveAssembler{Logger: c.logger}.Assemble(ctx, assemble.ArchiveRequest{
			Config:    plan.config,
			Assembler: asm,
			OutputDir: plan.outputDir,
			ModTime:   plan.modTime,
		})
		archives = append(archives, archiveResult{name: asm.Name, paths: written})
		if err != nil {
			errs = append(errs, err)
		}
	}

	c.printSummary(plan.outputDir, results, archives)
	if len(errs) > 0 {
		err := errors.Join(errs...)
		reportFailures(c.ui, err)
		return err
	}
	c.ui.Success("Assemble complete")
	return nil
}

func (c assembleCommand) interactive() bool {
	if !c.flags.Interactive {
		return false
	}
	if c.deps.Prompter == nil {
		c.ui.Warn("--interactive ignored: no prompter configured")
		return false
	}
	if !interaction.IsTerminal(c.deps.In) {
		c.ui.Warn("--interactive ignored: stdin is not a terminal")
		return false
	}
	return true
}

// resolveOutputDir returns flag (relative to cwd) or the default output
// directory next to the config file.
func resolveOutputDir(flag, cwd, baseDir string) string {
	flag = strings.TrimSpace(flag)
	if flag == "" {
		return filepath.Join(baseDir, filepath.FromSlash(meta.DefaultOutputDir))
	}
	if filepath.IsAbs(flag) {
		return filepath.Clean(flag)
	}
	return filepath.Join(cwd, flag)
}

func planNames(plan assemblePlan) []string {
	var names []string
	for _, asm := range plan.jlink {
		names = append(names, asm.Name)
	}
	for _, asm := range plan.archive {
		names = append(names, asm.Name)
	}
	return names
}

func describeFilter(filter domain.PlatformFilter) string {
	desc := "all"
	if len(filter.Selected) > 0 {
		desc = strings.Join(filter.Selected, ", ")
	}
	if len(filter.Rejected) > 0 {
		desc += " (except " + strings.Join(filter.Rejected, ", ") + ")"
	}
	return desc
}

func trimAll(values []string) []string {
	var out []string
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}
