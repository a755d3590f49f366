// Where: internal/infra/assemble/modules.go
// What: Module set resolution through explicit names or jdeps.
// Why: jlink needs the exact module list; jdeps output is accepted only in its one-line form.
package assemble

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	domain "github.com/poruru-code/jlinkasm/internal/domain/assemble"
	"github.com/poruru-code/jlinkasm/internal/domain/template"
	"github.com/poruru-code/jlinkasm/internal/infra/config"
	"github.com/poruru-code/jlinkasm/internal/infra/jdk"
	"github.com/poruru-code/jlinkasm/internal/infra/logging"
	"github.com/poruru-code/jlinkasm/internal/infra/process"
)

// Resolver determines the modules to link for one platform.
type Resolver struct {
	Runner process.CommandRunner
	Host   Host
	Logger *log.Logger
}

// ResolveRequest carries what the resolver needs for one platform.
type ResolveRequest struct {
	Assembler  string
	Platform   string
	BuildJdk   string
	JarsDir    string
	Resolution domain.ModuleResolution
	Jdeps      config.Jdeps
	Additional []string
	MainModule string
	Context    template.Context
}

// Resolve returns the merged module set: resolved names, additional names
// and the main module.
func (r Resolver) Resolve(ctx context.Context, req ResolveRequest) (domain.ModuleSet, error) {
	logger := logging.OrDiscard(r.Logger)

	var names []string
	switch resolution := req.Resolution.(type) {
	case domain.ExplicitModules:
		names = resolution.Names
	default:
		analyzed, err := r.analyze(ctx, req)
		if err != nil {
			return domain.ModuleSet{}, err
		}
		names = analyzed
	}

	modules := domain.NewModuleSet(names...)
	logger.Debug("resolved module names", "platform", req.Platform, "strategy", strategyOf(req.Resolution), "modules", modules)
	modules.Add(req.Additional...)
	modules.Add(req.MainModule)
	if modules.IsEmpty() {
		return modules, domain.NewError(domain.KindNoModulesResolved, req.Assembler, req.Platform,
			"no module names were resolved", nil)
	}
	logger.Debug("module names", "platform", req.Platform, "modules", modules)
	return modules, nil
}

func strategyOf(resolution domain.ModuleResolution) string {
	if resolution == nil {
		return domain.ClassPathAnalysis{}.Strategy()
	}
	return resolution.Strategy()
}

func (r Resolver) analyze(ctx context.Context, req ResolveRequest) ([]string, error) {
	args, err := r.jdepsArgs(req)
	if err != nil {
		return nil, domain.NewError(domain.KindDependencyAnalysisFailed, req.Assembler, req.Platform,
			"build jdeps arguments", err)
	}
	cmd := process.Command{
		Executable: jdk.ToolPath(req.BuildJdk, "jdeps", r.Host.orDefault().GOOS),
		Args:       args,
		Dir:        req.JarsDir,
	}
	logging.OrDiscard(r.Logger).Debug(cmd.String())

	result, err := r.Runner.Run(ctx, cmd)
	if err != nil {
		return nil, domain.NewError(domain.KindDependencyAnalysisFailed, req.Assembler, req.Platform,
			"run jdeps", err).WithOutput(result.Output())
	}
	if !result.Success() {
		return nil, domain.NewError(domain.KindDependencyAnalysisFailed, req.Assembler, req.Platform,
			fmt.Sprintf("jdeps exited with code %d", result.ExitCode), nil).WithOutput(result.Output())
	}
	names, err := parseModuleDeps(string(result.Stdout))
	if err != nil {
		return nil, domain.NewError(domain.KindDependencyAnalysisFailed, req.Assembler, req.Platform,
			err.Error(), nil).WithOutput(string(result.Stdout) + string(result.Stderr))
	}
	return names, nil
}

func (r Resolver) jdepsArgs(req ResolveRequest) ([]string, error) {
	var args []string
	if release := strings.TrimSpace(req.Jdeps.MultiRelease); release != "" {
		args = append(args, "--multi-release", release)
	}
	if req.Jdeps.IgnoreMissingDeps {
		args = append(args, "--ignore-missing-deps")
	}
	args = append(args, "--print-module-deps")

	paths := ModulePath{JarsDir: req.JarsDir, Platform: req.Platform, Host: r.Host}
	switch resolution := req.Resolution.(type) {
	case domain.MainModuleAnalysis:
		joined, err := paths.Join()
		if err != nil {
			return nil, err
		}
		args = append(args, "--module", resolution.Module, "--module-path", joined)
	case domain.TargetAnalysis:
		classPath := paths.Wildcard()
		if !resolution.Wildcard {
			joined, err := paths.Join()
			if err != nil {
				return nil, err
			}
			classPath = joined
		}
		args = append(args, "--class-path", classPath)
		for _, target := range resolution.Targets {
			rendered, err := template.Render(target, req.Context)
			if err != nil {
				return nil, fmt.Errorf("jdeps target %s: %w", target, err)
			}
			if strings.TrimSpace(rendered) == "" {
				continue
			}
			args = append(args, r.Host.adjust(strings.TrimSpace(rendered)))
		}
	default:
		jars, err := paths.List()
		if err != nil {
			return nil, err
		}
		args = append(args, "--class-path", strings.Join(jars, r.Host.orDefault().ListSeparator))
		args = append(args, jars...)
	}
	return args, nil
}

// parseModuleDeps accepts exactly one non-blank line of comma separated
// module names. CRLF and LF both end a line.
func parseModuleDeps(stdout string) ([]string, error) {
	normalized := strings.ReplaceAll(stdout, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	trimmed := strings.TrimSpace(normalized)
	if trimmed == "" {
		return nil, fmt.Errorf("jdeps printed no module names")
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) != 1 {
		return nil, fmt.Errorf("jdeps printed %d lines, expected exactly one line of module names", len(lines))
	}
	var names []string
	for _, name := range strings.Split(lines[0], ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("jdeps printed no module names")
	}
	return names, nil
}
