// Where: internal/infra/config/validate.go
// What: Defaulting and semantic checks for assemblers.
// Why: Downstream code receives fully resolved settings and one report of every problem.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/poruru-code/jlinkasm/internal/domain/assemble"
)

const (
	defaultImageName        = "{{distributionName}}-{{projectVersion}}"
	defaultArchiveName      = "{{distributionName}}-{{projectVersion}}"
	defaultMultiRelease     = "base"
	defaultDistributionType = "BINARY"
)

// ValidationError lists every configuration problem found.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid configuration: " + e.Problems[0]
	}
	var b strings.Builder
	b.WriteString("invalid configuration:")
	for _, problem := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(problem)
	}
	return b.String()
}

type problems []string

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

// Validate applies defaults in place and returns a *ValidationError when
// anything is wrong.
func Validate(cfg *Config) error {
	var errs problems
	if cfg == nil {
		errs.addf("configuration is empty")
		return &ValidationError{Problems: errs}
	}
	if len(cfg.Assemble.Jlink) == 0 && len(cfg.Assemble.Archive) == 0 {
		errs.addf("assemble must define at least one jlink or archive assembler")
	}
	if _, err := ArchiveTimestamp(cfg.Project, func(string) (string, bool) { return "", false }); err != nil {
		errs.addf("project.archiveTimestamp: %v", err)
	}

	for _, name := range cfg.JlinkNames() {
		validateJlink(cfg, cfg.Assemble.Jlink[name], &errs)
	}
	for _, name := range cfg.ArchiveNames() {
		validateArchive(cfg.Assemble.Archive[name], &errs)
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

func validateJlink(cfg *Config, asm *JlinkAssembler, errs *problems) {
	if strings.TrimSpace(asm.Name) == "" {
		errs.addf("jlink.name must not be blank")
		return
	}
	prefix := "jlink." + asm.Name

	if strings.TrimSpace(asm.Jdk.Path) == "" {
		errs.addf("%s.jdk.path must not be blank", prefix)
	} else {
		asm.Jdk.Path = resolvePath(cfg.BaseDir, asm.Jdk.Path)
	}

	if len(asm.TargetJdks) == 0 {
		errs.addf("%s.targetJdks must not be empty", prefix)
	}
	seen := map[string]bool{}
	for i := range asm.TargetJdks {
		target := &asm.TargetJdks[i]
		target.Platform = strings.TrimSpace(target.Platform)
		switch {
		case target.Platform == "":
			errs.addf("%s.targetJdks[%d].platform must not be blank", prefix, i)
		case seen[target.Platform]:
			errs.addf("%s.targetJdks[%d].platform %q is duplicated", prefix, i, target.Platform)
		}
		seen[target.Platform] = true
		if strings.TrimSpace(target.Path) == "" {
			errs.addf("%s.targetJdks[%d].path must not be blank", prefix, i)
		} else {
			target.Path = resolvePath(cfg.BaseDir, target.Path)
		}
		if override := target.ArchiveFormatOverride(); override != "" {
			if _, err := assemble.ParseArchiveFormat(override); err != nil {
				errs.addf("%s.targetJdks[%d].extraProperties.archiveFormat: %v", prefix, i, err)
			}
		}
	}

	if strings.TrimSpace(asm.Executable) == "" {
		asm.Executable = asm.Name
	}
	if strings.TrimSpace(asm.ImageName) == "" {
		asm.ImageName = defaultImageName
	}
	if strings.TrimSpace(asm.ArchiveFormat) == "" {
		asm.ArchiveFormat = string(assemble.DefaultArchiveFormat)
	}
	if format, err := assemble.ParseArchiveFormat(asm.ArchiveFormat); err != nil {
		errs.addf("%s.archiveFormat: %v", prefix, err)
	} else {
		asm.ArchiveFormat = string(format)
	}
	if strings.TrimSpace(asm.Jdeps.MultiRelease) == "" {
		asm.Jdeps.MultiRelease = defaultMultiRelease
	}

	asm.Java.MainModule = strings.TrimSpace(asm.Java.MainModule)
	asm.Java.MainClass = strings.TrimSpace(asm.Java.MainClass)
	if asm.Java.MainModule != "" && asm.Java.MainClass == "" {
		errs.addf("%s.java.mainClass must not be blank when java.mainModule is set", prefix)
	}
	if asm.Java.MainModule == "" && asm.Java.MainJar == "" && len(asm.Jars) == 0 {
		errs.addf("%s must define java.mainJar or at least one jars entry", prefix)
	}

	if asm.TemplateDirectory != "" {
		asm.TemplateDirectory = resolvePath(cfg.BaseDir, asm.TemplateDirectory)
	}
	for i, fs := range asm.FileSets {
		if strings.TrimSpace(fs.Input) == "" {
			errs.addf("%s.fileSets[%d].input must not be blank", prefix, i)
		}
	}

	asm.Resolution = assemble.SelectResolution(
		asm.ModuleNames,
		asm.Java.MainModule,
		asm.Jdeps.Targets,
		asm.Jdeps.UseWildcardInPath,
	)
}

func validateArchive(asm *ArchiveAssembler, errs *problems) {
	if strings.TrimSpace(asm.Name) == "" {
		errs.addf("archive.name must not be blank")
		return
	}
	if strings.TrimSpace(asm.DistributionType) == "" {
		asm.DistributionType = defaultDistributionType
	}
	if strings.TrimSpace(asm.ArchiveName) == "" {
		asm.ArchiveName = defaultArchiveName
	}
	if len(asm.Formats) == 0 {
		asm.Formats = []string{string(assemble.DefaultArchiveFormat)}
	}
	asm.ResolvedFormats = asm.ResolvedFormats[:0]
	seen := map[assemble.ArchiveFormat]bool{}
	for _, value := range asm.Formats {
		format, err := assemble.ParseArchiveFormat(value)
		if err != nil {
			errs.addf("archive.%s.formats: %v", asm.Name, err)
			continue
		}
		if !seen[format] {
			seen[format] = true
			asm.ResolvedFormats = append(asm.ResolvedFormats, format)
		}
	}
	if len(asm.FileSets) == 0 {
		errs.addf("archive.%s must define at least one fileSet", asm.Name)
	}
}

func resolvePath(baseDir, path string) string {
	path = strings.TrimSpace(path)
	if baseDir == "" || filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}
