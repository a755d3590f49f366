// Where: internal/infra/assemble/jlink_assembler.go
// What: Orchestration of one jlink assembler across its target platforms.
// Why: Gate every target first, stage shared inputs once, then build each platform independently.
package assemble

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	domain "github.com/poruru-code/jlinkasm/internal/domain/assemble"
	"github.com/poruru-code/jlinkasm/internal/domain/template"
	"github.com/poruru-code/jlinkasm/internal/infra/config"
	"github.com/poruru-code/jlinkasm/internal/infra/jdk"
	"github.com/poruru-code/jlinkasm/internal/infra/logging"
	"github.com/poruru-code/jlinkasm/internal/infra/process"
)

// JlinkAssembler builds runtime images for one assembler configuration.
type JlinkAssembler struct {
	Runner process.CommandRunner
	Host   Host
	Logger *log.Logger
	// Out receives per-phase progress lines.
	Out   io.Writer
	Emoji bool
	// Parallel bounds concurrent platforms; values below 1 mean sequential.
	Parallel int
}

// Request selects what to assemble.
type Request struct {
	Config    *config.Config
	Assembler *config.JlinkAssembler
	OutputDir string
	Filter    domain.PlatformFilter
	ModTime   time.Time
}

// Image is one produced archive.
type Image struct {
	Platform string
	Name     string
	Archive  string
}

// Result lists the archives produced, in target order.
type Result struct {
	Assembler string
	Images    []Image
}

// Assemble runs the pipeline for every selected target. Failures of one
// platform do not stop the others; all failures are returned joined.
func (a JlinkAssembler) Assemble(ctx context.Context, req Request) (Result, error) {
	asm := req.Assembler
	logger := logging.OrDiscard(a.Logger)
	host := a.Host.orDefault()
	result := Result{Assembler: asm.Name}

	var targets []config.Target
	for _, target := range asm.TargetJdks {
		if req.Filter.Matches(target.Platform) {
			targets = append(targets, target)
		}
	}
	if len(targets) == 0 {
		logger.Warn("no target platforms selected", "assembler", asm.Name)
		return result, nil
	}

	gate := jdk.Gate{Prober: jdk.Prober{Runner: a.Runner, GOOS: host.GOOS}, Logger: a.Logger}
	_, checks, err := gate.Check(ctx, asm.Name, asm.Jdk, targets)
	if err != nil {
		return result, err
	}
	targetErrs := make([]error, len(checks))
	var compatible []int
	for i, check := range checks {
		if check.Err != nil {
			targetErrs[i] = check.Err
			continue
		}
		compatible = append(compatible, i)
	}
	if len(compatible) == 0 {
		return result, errors.Join(targetErrs...)
	}

	layout := NewLayout(req.OutputDir, asm.Name)
	base := BaseContext(req.Config.Project, asm)
	imageName, err := resolveImageName(asm, base)
	if err != nil {
		return result, err
	}
	base = base.With(template.KeyImageName, imageName)

	stager := Stager{BaseDir: req.Config.BaseDir, Logger: a.Logger}
	phase := newPhaseReporter(a.Out, a.Emoji)
	if err := phase.Run(fmt.Sprintf("[%s] Stage inputs", asm.Name), func() error {
		return a.stageShared(stager, layout, asm, base)
	}); err != nil {
		return result, err
	}

	p := pipeline{
		assembler: a,
		host:      host,
		req:       req,
		layout:    layout,
		stager:    stager,
		phase:     phase,
		base:      base,
		imageName: imageName,
		replace:   domain.PlatformReplacements(req.Config.Platform.Replacements),
	}

	images := make([]*Image, len(checks))
	var group errgroup.Group
	group.SetLimit(max(a.Parallel, 1))
	for _, i := range compatible {
		i := i
		group.Go(func() error {
			image, err := p.run(ctx, checks[i].Target)
			if err != nil {
				targetErrs[i] = err
				return nil
			}
			images[i] = &image
			return nil
		})
	}
	_ = group.Wait()

	for _, image := range images {
		if image != nil {
			result.Images = append(result.Images, *image)
		}
	}
	return result, errors.Join(targetErrs...)
}

// stageShared resets inputs, renders templates and stages universal jars.
// Universal jars are never written after this returns.
func (a JlinkAssembler) stageShared(stager Stager, layout Layout, asm *config.JlinkAssembler, ctx template.Context) error {
	if err := stager.Reset(layout); err != nil {
		return domain.NewError(domain.KindCleanupFailed, asm.Name, "", "reset inputs", err)
	}
	if _, err := stager.StageTemplates(asm, ctx, layout.Inputs()); err != nil {
		return fmt.Errorf("%s: stage templates: %w", asm.Name, err)
	}
	if _, err := stager.StageJars(asm, layout.UniversalJars(), ""); err != nil {
		return domain.NewError(domain.KindJarCopyFailed, asm.Name, "", "stage universal jars", err)
	}
	return nil
}

func resolveImageName(asm *config.JlinkAssembler, ctx template.Context) (string, error) {
	name, err := template.MustHaveValue(asm.ImageName, ctx)
	if err != nil {
		return "", fmt.Errorf("%s: imageName: %w", asm.Name, err)
	}
	if strings.TrimSpace(asm.ImageNameTransform) != "" {
		name, err = template.MustHaveValue(asm.ImageNameTransform, ctx.With(template.KeyImageName, name))
		if err != nil {
			return "", fmt.Errorf("%s: imageNameTransform: %w", asm.Name, err)
		}
	}
	return strings.TrimSpace(name), nil
}

// pipeline holds the state shared read-only by every platform run.
type pipeline struct {
	assembler JlinkAssembler
	host      Host
	req       Request
	layout    Layout
	stager    Stager
	phase     phaseReporter
	base      template.Context
	imageName string
	replace   domain.PlatformReplacements
}

// run executes staging, resolution, linking and packaging for one target.
// It only writes below the platform's jars, work and archive paths.
func (p pipeline) run(ctx context.Context, target config.Target) (Image, error) {
	asm := p.req.Assembler
	platform := target.Platform
	label := func(step string) string { return fmt.Sprintf("[%s/%s] %s", asm.Name, platform, step) }

	if err := ctx.Err(); err != nil {
		return Image{}, fmt.Errorf("%s/%s: %w", asm.Name, platform, err)
	}

	format, err := domain.ResolveArchiveFormat(target.ArchiveFormatOverride(), asm.ArchiveFormat)
	if err != nil {
		return Image{}, domain.NewError(domain.KindPackagingFailed, asm.Name, platform, "resolve archive format", err)
	}
	replaced := p.replace.Apply(platform)
	finalName := p.imageName + "-" + replaced
	tctx := TargetContext(p.base, platform, replaced, format)
	imageDir := p.layout.ImageDir(platform, finalName)
	archivePath := p.layout.ArchivePath(finalName, format)

	if err := removeStale(archivePath); err != nil {
		return Image{}, domain.NewError(domain.KindCleanupFailed, asm.Name, platform, "remove previous archive", err)
	}

	if err := p.phase.Run(label("Stage jars"), func() error {
		if _, err := p.stager.StageJars(asm, p.layout.PlatformJars(platform), platform); err != nil {
			return domain.NewError(domain.KindJarCopyFailed, asm.Name, platform, "stage platform jars", err)
		}
		return nil
	}); err != nil {
		return Image{}, err
	}

	var modules domain.ModuleSet
	resolver := Resolver{Runner: p.assembler.Runner, Host: p.host, Logger: p.assembler.Logger}
	if err := p.phase.Run(label("Resolve modules"), func() error {
		var err error
		modules, err = resolver.Resolve(ctx, ResolveRequest{
			Assembler:  asm.Name,
			Platform:   platform,
			BuildJdk:   asm.Jdk.Path,
			JarsDir:    p.layout.Jars(),
			Resolution: asm.Resolution,
			Jdeps:      asm.Jdeps,
			Additional: asm.AdditionalModuleNames,
			MainModule: asm.Java.MainModule,
			Context:    tctx,
		})
		return err
	}); err != nil {
		return Image{}, err
	}

	linker := Linker{Runner: p.assembler.Runner, Host: p.host, Logger: p.assembler.Logger}
	if err := p.phase.Run(label("Link image"), func() error {
		return linker.Link(ctx, LinkRequest{
			Assembler: asm,
			Platform:  platform,
			TargetJdk: target.Path,
			Layout:    p.layout,
			ImageDir:  imageDir,
			Modules:   modules,
		})
	}); err != nil {
		return Image{}, err
	}

	packager := Packager{BaseDir: p.req.Config.BaseDir, Logger: p.assembler.Logger}
	if err := p.phase.Run(label("Package "+finalName), func() error {
		return packager.Package(PackageRequest{
			Assembler:   asm,
			Platform:    platform,
			Layout:      p.layout,
			ImageDir:    imageDir,
			ArchivePath: archivePath,
			Format:      format,
			ModTime:     p.req.ModTime,
			Context:     tctx,
		})
	}); err != nil {
		return Image{}, err
	}

	return Image{Platform: platform, Name: finalName, Archive: archivePath}, nil
}
