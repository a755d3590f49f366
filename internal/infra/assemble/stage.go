// Where: internal/infra/assemble/stage.go
// What: Input staging for jars and templates.
// Why: jdeps and jlink read a fixed inputs/ layout instead of the project tree.
package assemble

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/poruru-code/jlinkasm/assets"
	"github.com/poruru-code/jlinkasm/internal/domain/template"
	"github.com/poruru-code/jlinkasm/internal/infra/config"
	"github.com/poruru-code/jlinkasm/internal/infra/fileops"
	"github.com/poruru-code/jlinkasm/internal/infra/logging"
	"github.com/poruru-code/jlinkasm/internal/meta"
)

// Stager copies project inputs into a Layout.
type Stager struct {
	// BaseDir resolves relative patterns, usually the config file directory.
	BaseDir string
	Logger  *log.Logger
}

// Reset removes and recreates the inputs directory.
func (s Stager) Reset(layout Layout) error {
	if err := fileops.RemoveDir(layout.Inputs()); err != nil {
		return fmt.Errorf("remove inputs: %w", err)
	}
	if err := fileops.EnsureDir(layout.InputsBin()); err != nil {
		return fmt.Errorf("create inputs: %w", err)
	}
	return nil
}

// StageJars copies the jars of platform into dst. A blank platform stages
// the main jar and every jars entry without a platform.
func (s Stager) StageJars(asm *config.JlinkAssembler, dst, platform string) ([]string, error) {
	logger := logging.OrDiscard(s.Logger)
	if err := fileops.EnsureDir(dst); err != nil {
		return nil, fmt.Errorf("create %s: %w", dst, err)
	}

	var patterns []string
	if platform == "" && strings.TrimSpace(asm.Java.MainJar) != "" {
		matches, err := s.glob(asm.Java.MainJar)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("main jar %s not found", asm.Java.MainJar)
		}
		patterns = append(patterns, asm.Java.MainJar)
	}
	for _, jar := range asm.Jars {
		if strings.TrimSpace(jar.Platform) == platform {
			patterns = append(patterns, jar.Pattern)
		}
	}

	var staged []string
	for _, pattern := range patterns {
		matches, err := s.glob(pattern)
		if err != nil {
			return staged, err
		}
		if len(matches) == 0 {
			logger.Debug("no jars matched", "pattern", pattern, "platform", platform)
		}
		for _, match := range matches {
			target := filepath.Join(dst, filepath.Base(match))
			if err := fileops.CopyFile(match, target); err != nil {
				return staged, fmt.Errorf("copy %s: %w", match, err)
			}
			staged = append(staged, target)
		}
	}
	logger.Debug("staged jars", "dir", dst, "count", len(staged))
	return staged, nil
}

// glob expands a doublestar pattern relative to BaseDir and returns the
// sorted regular files it matches.
func (s Stager) glob(pattern string) ([]string, error) {
	return globFiles(s.BaseDir, pattern)
}

func globFiles(baseDir, pattern string) ([]string, error) {
	pattern = strings.TrimSpace(pattern)
	if !filepath.IsAbs(pattern) && baseDir != "" {
		pattern = filepath.Join(baseDir, pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// StageTemplates writes the default launchers, overlaid with the files of
// the assembler's template directory, into the inputs directory. Files
// ending in .tpl are rendered against ctx and lose the suffix.
func (s Stager) StageTemplates(asm *config.JlinkAssembler, ctx template.Context, inputs string) ([]string, error) {
	defaults, err := fs.Sub(assets.LauncherTemplatesFS, assets.LauncherTemplatesRoot)
	if err != nil {
		return nil, fmt.Errorf("open default templates: %w", err)
	}
	sources := map[string]templateSource{}
	if err := collectTemplates(defaults, sources); err != nil {
		return nil, err
	}
	if dir := strings.TrimSpace(asm.TemplateDirectory); dir != "" {
		if !fileops.DirExists(dir) {
			return nil, fmt.Errorf("template directory %s does not exist", dir)
		}
		if err := collectTemplates(os.DirFS(dir), sources); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	var written []string
	for _, name := range names {
		source := sources[name]
		content, err := fs.ReadFile(source.fsys, source.name)
		if err != nil {
			return written, fmt.Errorf("read template %s: %w", source.name, err)
		}
		if strings.HasSuffix(source.name, meta.TemplateSuffix) {
			rendered, err := template.Render(string(content), ctx)
			if err != nil {
				return written, fmt.Errorf("template %s: %w", source.name, err)
			}
			content = []byte(rendered)
		}
		outName := launcherName(name, asm.Executable)
		target := filepath.Join(inputs, filepath.FromSlash(outName))
		if err := fileops.WriteFile(target, content, templateMode(outName)); err != nil {
			return written, fmt.Errorf("write %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}

type templateSource struct {
	fsys fs.FS
	name string
}

// collectTemplates registers every file of fsys under its output name.
// Later calls override earlier ones.
func collectTemplates(fsys fs.FS, sources map[string]templateSource) error {
	return fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		sources[strings.TrimSuffix(name, meta.TemplateSuffix)] = templateSource{fsys: fsys, name: name}
		return nil
	})
}

// launcherName maps the generic launcher templates to the executable name.
func launcherName(name, executable string) string {
	switch name {
	case meta.LauncherTemplate:
		return path.Join(meta.BinDir, executable)
	case meta.LauncherTemplate + meta.BatExtension:
		return path.Join(meta.BinDir, executable+meta.BatExtension)
	default:
		return name
	}
}

func templateMode(name string) fs.FileMode {
	if path.Dir(name) == meta.BinDir {
		return 0o755
	}
	return 0o644
}
