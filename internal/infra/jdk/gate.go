// Where: internal/infra/jdk/gate.go
// What: Compatibility gate between the build JDK and each target JDK.
// Why: jlink only links jmods of its own feature release, so mismatches must stop before staging.
package jdk

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/poruru-code/jlinkasm/internal/domain/assemble"
	"github.com/poruru-code/jlinkasm/internal/infra/config"
	"github.com/poruru-code/jlinkasm/internal/infra/logging"
)

// Gate probes JDK installations and compares major versions.
type Gate struct {
	Prober Prober
	Logger *log.Logger
}

// TargetCheck is the outcome for one target JDK. Err is an
// *assemble.Error of kind ToolchainIncompatible when the target must be
// skipped.
type TargetCheck struct {
	Target  config.Target
	Version Version
	Err     error
}

// Check probes the build JDK and every target. Targets are all checked
// before returning; the returned error is only set when the build JDK
// itself cannot be probed.
func (g Gate) Check(ctx context.Context, assembler string, buildJdk config.Target, targets []config.Target) (Version, []TargetCheck, error) {
	logger := logging.OrDiscard(g.Logger)

	buildVersion, err := g.Prober.Probe(ctx, buildJdk.Path)
	if err != nil {
		return Version{}, nil, assemble.NewError(assemble.KindToolchainIncompatible, assembler, "",
			fmt.Sprintf("unable to determine build JDK version at %s", buildJdk.Path), err)
	}
	logger.Debug("build jdk", "assembler", assembler, "version", buildVersion, "path", buildJdk.Path)

	checks := make([]TargetCheck, 0, len(targets))
	for _, target := range targets {
		check := TargetCheck{Target: target}
		version, err := g.Prober.Probe(ctx, target.Path)
		if err != nil {
			check.Err = assemble.NewError(assemble.KindToolchainIncompatible, assembler, target.Platform,
				fmt.Sprintf("unable to determine target JDK version at %s", target.Path), err)
			checks = append(checks, check)
			continue
		}
		check.Version = version
		logger.Debug("target jdk", "assembler", assembler, "platform", target.Platform, "version", version, "path", target.Path)
		if version.Major() != buildVersion.Major() {
			check.Err = assemble.NewError(assemble.KindToolchainIncompatible, assembler, target.Platform,
				fmt.Sprintf("target JDK %s (major %d) is not compatible with build JDK %s (major %d)",
					version, version.Major(), buildVersion, buildVersion.Major()), nil)
		}
		checks = append(checks, check)
	}
	return buildVersion, checks, nil
}
