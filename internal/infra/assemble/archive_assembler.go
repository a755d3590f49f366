// Where: internal/infra/assemble/archive_assembler.go
// What: Plain archive assembler for files and filesets.
// Why: Ship docs or scripts as their own archives with the same reproducible packer.
package assemble

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	domain "github.com/poruru-code/jlinkasm/internal/domain/assemble"
	"github.com/poruru-code/jlinkasm/internal/domain/template"
	"github.com/poruru-code/jlinkasm/internal/infra/archive"
	"github.com/poruru-code/jlinkasm/internal/infra/config"
	"github.com/poruru-code/jlinkasm/internal/infra/fileops"
	"github.com/poruru-code/jlinkasm/internal/infra/logging"
	"github.com/poruru-code/jlinkasm/internal/meta"
)

// ArchiveAssembler packs configured files and filesets, one archive per format.
type ArchiveAssembler struct {
	Logger *log.Logger
}

// ArchiveRequest selects the archive assembler to run.
type ArchiveRequest struct {
	Config    *config.Config
	Assembler *config.ArchiveAssembler
	OutputDir string
	ModTime   time.Time
}

// Assemble writes <assembleDir>/<archiveName>.<ext> for every format.
// Archive entries are rooted at <archiveName>/.
func (a ArchiveAssembler) Assemble(ctx context.Context, req ArchiveRequest) ([]string, error) {
	asm := req.Assembler
	layout := NewLayout(req.OutputDir, asm.Name)
	tctx := projectContext(req.Config.Project, asm.Name)

	archiveName, err := template.MustHaveValue(asm.ArchiveName, tctx)
	if err != nil {
		return nil, domain.NewError(domain.KindPackagingFailed, asm.Name, "", "resolve archiveName", err)
	}
	workRoot := filepath.Join(layout.AssembleDir, meta.WorkDir)
	contentDir := filepath.Join(workRoot, archiveName)

	if err := fileops.RemoveDir(workRoot); err != nil {
		return nil, domain.NewError(domain.KindCleanupFailed, asm.Name, "", "remove work directory", err)
	}
	if err := fileops.EnsureDir(contentDir); err != nil {
		return nil, domain.NewError(domain.KindPackagingFailed, asm.Name, "", "create work directory", err)
	}
	if err := copyGlobFiles(req.Config.BaseDir, contentDir, asm.Files, tctx); err != nil {
		return nil, domain.NewError(domain.KindPackagingFailed, asm.Name, "", "copy files", err)
	}
	if err := copyFileSets(req.Config.BaseDir, contentDir, asm.FileSets, tctx); err != nil {
		return nil, domain.NewError(domain.KindPackagingFailed, asm.Name, "", "copy fileSets", err)
	}

	formats := asm.ResolvedFormats
	if len(formats) == 0 {
		formats = []domain.ArchiveFormat{domain.DefaultArchiveFormat}
	}
	var written []string
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		dst := filepath.Join(layout.AssembleDir, fmt.Sprintf("%s.%s", archiveName, format.Extension()))
		if err := archive.Pack(workRoot, dst, format, req.ModTime); err != nil {
			return written, domain.NewError(domain.KindPackagingFailed, asm.Name, "",
				fmt.Sprintf("write archive %s", filepath.Base(dst)), err)
		}
		logging.OrDiscard(a.Logger).Debug("archive written", "assembler", asm.Name, "path", dst)
		written = append(written, dst)
	}
	return written, nil
}
