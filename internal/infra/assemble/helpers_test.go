package assemble

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/poruru-code/jlinkasm/internal/infra/config"
	"github.com/poruru-code/jlinkasm/internal/infra/process"
	"github.com/poruru-code/jlinkasm/internal/infra/process/processtest"
)

var fixedTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

var linuxHost = HostFor("linux")

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeJdk(t *testing.T, root, name, version string) string {
	t.Helper()
	dir := filepath.Join(root, "jdks", name)
	writeFile(t, filepath.Join(dir, "release"), "JAVA_VERSION=\""+version+"\"\n")
	writeFile(t, filepath.Join(dir, "jmods", "java.base.jmod"), "jmod")
	return dir
}

// newProject lays out a project with a universal main jar, one
// linux-only jar, a license and a docs tree.
func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "build", "libs", "a.jar"), "jar-a")
	writeFile(t, filepath.Join(root, "build", "native", "linux", "b.jar"), "jar-b")
	writeFile(t, filepath.Join(root, "LICENSE"), "license")
	writeFile(t, filepath.Join(root, "NOTICE"), "notice")
	writeFile(t, filepath.Join(root, "docs", "guide.md"), "guide")
	writeFile(t, filepath.Join(root, "docs", "draft.tmp"), "draft")
	return root
}

// newConfig returns a validated config with one non-modular assembler
// named "app" targeting linux-x86_64 and osx-x86_64.
func newConfig(t *testing.T, root string, mutate func(*config.JlinkAssembler)) *config.Config {
	t.Helper()
	asm := &config.JlinkAssembler{
		Name: "app",
		Jdk:  config.Target{Path: writeJdk(t, root, "build", "21.0.2")},
		TargetJdks: []config.Target{
			{Platform: "linux-x86_64", Path: writeJdk(t, root, "linux", "21.0.1")},
			{Platform: "osx-x86_64", Path: writeJdk(t, root, "osx", "21.0.1")},
		},
		Java: config.Java{MainClass: "com.acme.Main", MainJar: "build/libs/a.jar"},
		Jars: []config.Glob{
			{Pattern: "build/native/linux/*.jar", Platform: "linux-x86_64"},
		},
		FileSets: []config.FileSet{
			{Input: "docs", Output: "docs", Excludes: []string{"**/*.tmp"}},
		},
	}
	if mutate != nil {
		mutate(asm)
	}
	cfg := &config.Config{
		Project:  config.Project{Name: "app", Version: "1.0.0"},
		Platform: config.Platform{Replacements: map[string]string{"osx-x86_64": "mac"}},
		Assemble: config.Assemble{Jlink: map[string]*config.JlinkAssembler{"app": asm}},
		BaseDir:  root,
	}
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("validate config: %v", err)
	}
	return cfg
}

func argAfter(args []string, flag string) string {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// fakeJlink creates the image a real jlink would: a java binary, the
// module list and, for modular apps, the launcher.
func fakeJlink(cmd process.Command) error {
	out := argAfter(cmd.Args, "--output")
	if err := os.MkdirAll(filepath.Join(out, "bin"), 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(out, "lib"), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(out, "bin", "java"), []byte("java"), 0o755); err != nil {
		return err
	}
	modules := argAfter(cmd.Args, "--add-modules")
	if err := os.WriteFile(filepath.Join(out, "lib", "modules"), []byte(modules), 0o644); err != nil {
		return err
	}
	if launcher := argAfter(cmd.Args, "--launcher"); launcher != "" {
		name := strings.SplitN(launcher, "=", 2)[0]
		return os.WriteFile(filepath.Join(out, "bin", name), []byte("modular launcher"), 0o755)
	}
	return nil
}

func newRunner() *processtest.Runner {
	return processtest.NewRunner().
		On("jdeps", processtest.Response{Stdout: "java.base,java.logging\n"}).
		On("jlink", processtest.Response{Effect: fakeJlink})
}

func listTree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return out
}
