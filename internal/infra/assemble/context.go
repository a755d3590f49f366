// Where: internal/infra/assemble/context.go
// What: Template context for one assembler and one target.
// Why: Image names, jdeps targets and launchers see the same variables.
package assemble

import (
	domain "github.com/poruru-code/jlinkasm/internal/domain/assemble"
	"github.com/poruru-code/jlinkasm/internal/domain/template"
	"github.com/poruru-code/jlinkasm/internal/infra/config"
	"github.com/poruru-code/jlinkasm/internal/meta"
)

// BaseContext returns the project and distribution variables of asm.
func BaseContext(project config.Project, asm *config.JlinkAssembler) template.Context {
	ctx := projectContext(project, asm.Name)
	ctx[template.KeyDistributionExecutable] = asm.Executable
	ctx[template.KeyDistributionExecutableUnix] = asm.Executable
	ctx[template.KeyDistributionExecutableWindows] = asm.Executable + meta.BatExtension
	ctx[template.KeyDistributionMainModule] = asm.Java.MainModule
	ctx[template.KeyDistributionMainClass] = asm.Java.MainClass
	ctx[template.KeyDistributionArchiveFormat] = asm.ArchiveFormat
	return ctx
}

// TargetContext adds the platform variables and the resolved archive format.
func TargetContext(base template.Context, platform, platformReplaced string, format domain.ArchiveFormat) template.Context {
	return base.
		With(template.KeyDistributionPlatform, platform).
		With(template.KeyDistributionPlatformReplaced, platformReplaced).
		With(template.KeyDistributionArchiveFormat, string(format))
}

func projectContext(project config.Project, distribution string) template.Context {
	ctx := template.Context{
		template.KeyProjectName:        project.Name,
		template.KeyProjectVersion:     project.Version,
		template.KeyProjectDescription: project.Description,
		template.KeyDistributionName:   distribution,
	}
	return ctx.Merge(project.ExtraProperties)
}
