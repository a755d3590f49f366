// Where: internal/infra/assemble/package.go
// What: Image completion and archiving.
// Why: Generated launchers and copied jars must never be duplicated or overwritten by staged inputs.
package assemble

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	domain "github.com/poruru-code/jlinkasm/internal/domain/assemble"
	"github.com/poruru-code/jlinkasm/internal/domain/template"
	"github.com/poruru-code/jlinkasm/internal/infra/archive"
	"github.com/poruru-code/jlinkasm/internal/infra/config"
	"github.com/poruru-code/jlinkasm/internal/infra/fileops"
	"github.com/poruru-code/jlinkasm/internal/infra/logging"
	"github.com/poruru-code/jlinkasm/internal/meta"
)

// Packager merges extra content into an image and archives it.
type Packager struct {
	BaseDir string
	Logger  *log.Logger
}

// PackageRequest describes one image to package.
type PackageRequest struct {
	Assembler   *config.JlinkAssembler
	Platform    string
	Layout      Layout
	ImageDir    string
	ArchivePath string
	Format      domain.ArchiveFormat
	ModTime     time.Time
	Context     template.Context
}

// Package copies license files, staged template outputs, artifacts, files
// and filesets into the image, then archives the platform work directory.
func (p Packager) Package(req PackageRequest) error {
	if err := p.merge(req); err != nil {
		return domain.NewError(domain.KindPackagingFailed, req.Assembler.Name, req.Platform,
			fmt.Sprintf("populate image %s", filepath.Base(req.ImageDir)), err)
	}
	workDir := filepath.Dir(req.ImageDir)
	if err := archive.Pack(workDir, req.ArchivePath, req.Format, req.ModTime); err != nil {
		return domain.NewError(domain.KindPackagingFailed, req.Assembler.Name, req.Platform,
			fmt.Sprintf("write archive %s", filepath.Base(req.ArchivePath)), err)
	}
	logging.OrDiscard(p.Logger).Debug("archive written", "platform", req.Platform, "path", req.ArchivePath)
	return nil
}

func (p Packager) merge(req PackageRequest) error {
	if _, err := fileops.CopyFiles(p.BaseDir, req.ImageDir, isLicense); err != nil {
		return fmt.Errorf("copy license files: %w", err)
	}
	if err := fileops.CopyTree(req.Layout.Inputs(), req.ImageDir, stagedOutputFilter(req.ImageDir)); err != nil {
		return fmt.Errorf("copy staged templates: %w", err)
	}
	if err := copyArtifacts(p.BaseDir, req.ImageDir, req.Platform, req.Assembler.Artifacts, req.Context); err != nil {
		return err
	}
	if err := copyGlobFiles(p.BaseDir, req.ImageDir, req.Assembler.Files, req.Context); err != nil {
		return err
	}
	return copyFileSets(p.BaseDir, req.ImageDir, req.Assembler.FileSets, req.Context)
}

func isLicense(name string, entry fs.DirEntry) bool {
	return entry.Type().IsRegular() && strings.HasPrefix(name, meta.LicensePrefix)
}

// stagedOutputFilter skips the staged jars subtree and, inside bin/, any
// jar already copied to <image>/jars and any file already present in
// <image>/bin.
func stagedOutputFilter(imageDir string) fileops.Filter {
	return func(rel string, entry fs.DirEntry) bool {
		if rel == meta.JarsDir {
			return false
		}
		if entry.IsDir() || path.Dir(rel) != meta.BinDir {
			return true
		}
		name := path.Base(rel)
		if isCopiedJar(imageDir, name) {
			return false
		}
		return !fileops.FileOrDirExists(filepath.Join(imageDir, meta.BinDir, name))
	}
}

// isCopiedJar reports whether name is a jar already present in <image>/jars.
func isCopiedJar(imageDir, name string) bool {
	return strings.HasSuffix(name, meta.JarExtension) &&
		fileops.FileExists(filepath.Join(imageDir, meta.JarsDir, name))
}

func copyArtifacts(baseDir, dst, platform string, artifacts []config.Artifact, ctx template.Context) error {
	for _, artifact := range artifacts {
		if artifact.Platform != "" &&
			!(domain.PlatformFilter{Selected: []string{artifact.Platform}}).Matches(platform) {
			continue
		}
		src, err := template.Render(artifact.Path, ctx)
		if err != nil {
			return fmt.Errorf("artifact %s: %w", artifact.Path, err)
		}
		src = resolveIn(baseDir, src)
		if !fileops.FileExists(src) {
			return fmt.Errorf("artifact %s does not exist", src)
		}
		target := filepath.Base(src)
		if strings.TrimSpace(artifact.Transform) != "" {
			target, err = template.Render(artifact.Transform, ctx)
			if err != nil {
				return fmt.Errorf("artifact transform %s: %w", artifact.Transform, err)
			}
		}
		if err := fileops.CopyFile(src, filepath.Join(dst, filepath.FromSlash(target))); err != nil {
			return fmt.Errorf("copy artifact %s: %w", src, err)
		}
	}
	return nil
}

func copyGlobFiles(baseDir, dst string, patterns []string, ctx template.Context) error {
	for _, pattern := range patterns {
		rendered, err := template.Render(pattern, ctx)
		if err != nil {
			return fmt.Errorf("files %s: %w", pattern, err)
		}
		matches, err := globFiles(baseDir, rendered)
		if err != nil {
			return err
		}
		for _, match := range matches {
			if err := fileops.CopyFile(match, filepath.Join(dst, filepath.Base(match))); err != nil {
				return fmt.Errorf("copy file %s: %w", match, err)
			}
		}
	}
	return nil
}

func copyFileSets(baseDir, dst string, fileSets []config.FileSet, ctx template.Context) error {
	for _, set := range fileSets {
		input, err := template.Render(set.Input, ctx)
		if err != nil {
			return fmt.Errorf("fileSet input %s: %w", set.Input, err)
		}
		output, err := template.Render(set.Output, ctx)
		if err != nil {
			return fmt.Errorf("fileSet output %s: %w", set.Output, err)
		}
		src := resolveIn(baseDir, input)
		if !fileops.DirExists(src) {
			return fmt.Errorf("fileSet input %s is not a directory", src)
		}
		target := filepath.Join(dst, filepath.FromSlash(output))
		if err := fileops.CopyTree(src, target, fileSetFilter(set)); err != nil {
			return fmt.Errorf("copy fileSet %s: %w", src, err)
		}
	}
	return nil
}

// fileSetFilter accepts files matching any include (default "**/*") and no
// exclude.
func fileSetFilter(set config.FileSet) fileops.Filter {
	includes := set.Includes
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	return func(rel string, entry fs.DirEntry) bool {
		if entry.IsDir() {
			return true
		}
		if !matchAny(includes, rel) {
			return false
		}
		return !matchAny(set.Excludes, rel)
	}
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func resolveIn(baseDir, p string) string {
	p = strings.TrimSpace(p)
	if filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, filepath.FromSlash(p))
}

// removeStale deletes a leftover file at path so a failed run cannot leave
// an archive from a previous build behind.
func removeStale(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
