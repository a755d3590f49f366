// Where: internal/infra/assemble/jlink.go
// What: jlink invocation and non-modular image completion.
// Why: One clean image directory per platform, with jars and launchers added when jlink cannot.
package assemble

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	domain "github.com/poruru-code/jlinkasm/internal/domain/assemble"
	"github.com/poruru-code/jlinkasm/internal/infra/config"
	"github.com/poruru-code/jlinkasm/internal/infra/fileops"
	"github.com/poruru-code/jlinkasm/internal/infra/jdk"
	"github.com/poruru-code/jlinkasm/internal/infra/logging"
	"github.com/poruru-code/jlinkasm/internal/infra/process"
	"github.com/poruru-code/jlinkasm/internal/meta"
)

// Linker runs jlink for one platform.
type Linker struct {
	Runner process.CommandRunner
	Host   Host
	Logger *log.Logger
}

// LinkRequest describes one image to link.
type LinkRequest struct {
	Assembler *config.JlinkAssembler
	Platform  string
	TargetJdk string
	Layout    Layout
	ImageDir  string
	Modules   domain.ModuleSet
}

// Link cleans ImageDir, runs jlink into it and, for non-modular
// applications, copies jars and launchers into the image.
func (l Linker) Link(ctx context.Context, req LinkRequest) error {
	asm := req.Assembler
	if err := fileops.RemoveDir(req.ImageDir); err != nil {
		return domain.NewError(domain.KindCleanupFailed, asm.Name, req.Platform,
			fmt.Sprintf("remove image %s", req.ImageDir), err)
	}

	cmd, err := l.command(req)
	if err != nil {
		return domain.NewError(domain.KindLinkToolFailed, asm.Name, req.Platform, "build jlink arguments", err)
	}
	logging.OrDiscard(l.Logger).Debug(cmd.String())

	result, err := l.Runner.Run(ctx, cmd)
	if err != nil {
		return domain.NewError(domain.KindLinkToolFailed, asm.Name, req.Platform, "run jlink", err).
			WithOutput(result.Output())
	}
	if !result.Success() {
		return domain.NewError(domain.KindLinkToolFailed, asm.Name, req.Platform,
			fmt.Sprintf("jlink exited with code %d", result.ExitCode), nil).WithOutput(result.Output())
	}

	if asm.Java.MainModule != "" {
		return nil
	}
	if asm.CopyJars {
		if err := l.copyJars(req); err != nil {
			return err
		}
	}
	return l.copyLaunchers(req)
}

func (l Linker) command(req LinkRequest) (process.Command, error) {
	asm := req.Assembler
	host := l.Host.orDefault()

	modulePath := []string{filepath.Join(req.TargetJdk, meta.JmodsDir)}
	if asm.Java.MainModule != "" || asm.CopyJars {
		universal, err := filepath.Abs(req.Layout.UniversalJars())
		if err != nil {
			return process.Command{}, err
		}
		modulePath = append(modulePath, universal)

		platformDir, err := filepath.Abs(req.Layout.PlatformJars(req.Platform))
		if err != nil {
			return process.Command{}, err
		}
		jars, err := fileops.ListFiles(platformDir)
		if err != nil {
			return process.Command{}, err
		}
		if len(jars) > 0 {
			modulePath = append(modulePath, platformDir)
		}
	}

	args := append([]string(nil), asm.Args...)
	args = append(args,
		"--module-path", strings.Join(modulePath, host.ListSeparator),
		"--add-modules", req.Modules.Join(),
	)
	if asm.Java.MainModule != "" {
		args = append(args, "--launcher",
			fmt.Sprintf("%s=%s/%s", asm.Executable, asm.Java.MainModule, asm.Java.MainClass))
	}
	args = append(args, "--output", req.ImageDir)

	return process.Command{
		Executable: jdk.ToolPath(asm.Jdk.Path, "jlink", host.GOOS),
		Args:       args,
	}, nil
}

func (l Linker) copyJars(req LinkRequest) error {
	dst := filepath.Join(req.ImageDir, meta.JarsDir)
	if err := fileops.EnsureDir(dst); err != nil {
		return domain.NewError(domain.KindJarCopyFailed, req.Assembler.Name, req.Platform,
			fmt.Sprintf("create %s", dst), err)
	}
	for _, src := range []string{req.Layout.UniversalJars(), req.Layout.PlatformJars(req.Platform)} {
		if _, err := fileops.CopyFiles(src, dst, nil); err != nil {
			return domain.NewError(domain.KindJarCopyFailed, req.Assembler.Name, req.Platform,
				fmt.Sprintf("copy jars from %s", src), err)
		}
	}
	return nil
}

func (l Linker) copyLaunchers(req LinkRequest) error {
	dst := filepath.Join(req.ImageDir, meta.BinDir)
	if err := fileops.EnsureDir(dst); err != nil {
		return domain.NewError(domain.KindLauncherCopyFailed, req.Assembler.Name, req.Platform,
			fmt.Sprintf("create %s", dst), err)
	}
	skipCopiedJars := func(name string, _ fs.DirEntry) bool {
		return !isCopiedJar(req.ImageDir, name)
	}
	copied, err := fileops.CopyFiles(req.Layout.InputsBin(), dst, skipCopiedJars)
	if err != nil {
		return domain.NewError(domain.KindLauncherCopyFailed, req.Assembler.Name, req.Platform,
			"copy launchers", err)
	}
	for _, launcher := range copied {
		if err := fileops.GrantExecutable(launcher); err != nil {
			return domain.NewError(domain.KindLauncherCopyFailed, req.Assembler.Name, req.Platform,
				fmt.Sprintf("grant executable %s", launcher), err)
		}
	}
	return nil
}
