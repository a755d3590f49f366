// Where: internal/infra/assemble/layout.go
// What: On-disk layout of one assembler run.
// Why: Staging, linking and packaging agree on every path through a single type.
package assemble

import (
	"path/filepath"

	domain "github.com/poruru-code/jlinkasm/internal/domain/assemble"
	"github.com/poruru-code/jlinkasm/internal/meta"
)

// Layout roots every path of one assembler under AssembleDir:
//
//	<AssembleDir>/inputs/{bin,jars/{universal,<platform>}}
//	<AssembleDir>/work-<platform>/<image>-<platformReplaced>/
//	<AssembleDir>/<image>-<platformReplaced>.<ext>
type Layout struct {
	AssembleDir string
}

// NewLayout returns the layout of assembler under outputDir.
func NewLayout(outputDir, assembler string) Layout {
	return Layout{AssembleDir: filepath.Join(outputDir, meta.AssembleDir, assembler)}
}

func (l Layout) Inputs() string {
	return filepath.Join(l.AssembleDir, meta.InputsDir)
}

func (l Layout) InputsBin() string {
	return filepath.Join(l.Inputs(), meta.BinDir)
}

func (l Layout) Jars() string {
	return filepath.Join(l.Inputs(), meta.JarsDir)
}

func (l Layout) UniversalJars() string {
	return filepath.Join(l.Jars(), meta.UniversalDir)
}

func (l Layout) PlatformJars(platform string) string {
	return filepath.Join(l.Jars(), platform)
}

// WorkDir is keyed by the raw platform name.
func (l Layout) WorkDir(platform string) string {
	return filepath.Join(l.AssembleDir, meta.WorkDir+"-"+platform)
}

func (l Layout) ImageDir(platform, finalImageName string) string {
	return filepath.Join(l.WorkDir(platform), finalImageName)
}

func (l Layout) ArchivePath(finalImageName string, format domain.ArchiveFormat) string {
	return filepath.Join(l.AssembleDir, finalImageName+"."+format.Extension())
}
