// Where: internal/domain/assemble/resolution.go
// What: Module resolution intent as a closed set of variants.
// Why: The strategy is chosen once during validation instead of being re-derived per call.
package assemble

import "strings"

// ModuleResolution is one of ExplicitModules, MainModuleAnalysis,
// TargetAnalysis or ClassPathAnalysis.
type ModuleResolution interface {
	isModuleResolution()
	// Strategy returns a short name used in diagnostics.
	Strategy() string
}

type (
	// ExplicitModules returns the configured names without running jdeps.
	ExplicitModules struct {
		Names []string
	}

	// MainModuleAnalysis runs jdeps against the main module on a module path.
	MainModuleAnalysis struct {
		Module string
	}

	// TargetAnalysis runs jdeps on explicit targets with a class path made of
	// either a wildcard pattern or the enumerated jars.
	TargetAnalysis struct {
		Targets  []string
		Wildcard bool
	}

	// ClassPathAnalysis runs jdeps over every staged jar.
	ClassPathAnalysis struct{}
)

func (ExplicitModules) isModuleResolution()    {}
func (MainModuleAnalysis) isModuleResolution() {}
func (TargetAnalysis) isModuleResolution()     {}
func (ClassPathAnalysis) isModuleResolution()  {}

func (ExplicitModules) Strategy() string    { return "explicit" }
func (MainModuleAnalysis) Strategy() string { return "main-module" }
func (TargetAnalysis) Strategy() string     { return "targets" }
func (ClassPathAnalysis) Strategy() string  { return "class-path" }

// SelectResolution applies the priority order: explicit names, main module,
// explicit jdeps targets, full class path.
func SelectResolution(moduleNames []string, mainModule string, targets []string, wildcard bool) ModuleResolution {
	if names := nonBlank(moduleNames); len(names) > 0 {
		return ExplicitModules{Names: names}
	}
	if module := strings.TrimSpace(mainModule); module != "" {
		return MainModuleAnalysis{Module: module}
	}
	if t := nonBlank(targets); len(t) > 0 {
		return TargetAnalysis{Targets: t, Wildcard: wildcard}
	}
	return ClassPathAnalysis{}
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}
