package command

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poruru-code/jlinkasm/internal/infra/interaction"
	"github.com/poruru-code/jlinkasm/internal/infra/process"
	"github.com/poruru-code/jlinkasm/internal/infra/process/processtest"
)

const projectConfig = `
project:
  name: app
  version: 1.0.0
  archiveTimestamp: "2024-01-02T03:04:05Z"
assemble:
  jlink:
    app:
      jdk:
        path: jdks/build
      targetJdks:
        - platform: linux-x86_64
          path: jdks/linux
        - platform: osx-x86_64
          path: jdks/osx
      java:
        mainClass: com.acme.Main
        mainJar: build/libs/app.jar
  archive:
    docs:
      files:
        - LICENSE
      fileSets:
        - input: docs
`

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// newTestProject writes a config, three JDKs and the main jar under a
// temp dir and returns the project root.
func newTestProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "jlinkasm.yml"), projectConfig)
	for _, name := range []string{"build", "linux", "osx"} {
		dir := filepath.Join(root, "jdks", name)
		writeTestFile(t, filepath.Join(dir, "release"), "JAVA_VERSION=\"21.0.2\"\n")
		writeTestFile(t, filepath.Join(dir, "jmods", "java.base.jmod"), "jmod")
	}
	writeTestFile(t, filepath.Join(root, "build", "libs", "app.jar"), "jar")
	writeTestFile(t, filepath.Join(root, "LICENSE"), "license")
	writeTestFile(t, filepath.Join(root, "docs", "guide.md"), "guide")
	return root
}

// fakeTools answers jdeps with one module and makes jlink create an
// image, failing for platforms listed in failing.
func fakeTools(failing ...string) *processtest.Runner {
	return processtest.NewRunner().
		On("jdeps", processtest.Response{Stdout: "java.base\n"}).
		On("jlink", processtest.Response{Effect: func(cmd process.Command) error {
			out := argValue(cmd.Args, "--output")
			for _, platform := range failing {
				if strings.Contains(out, platform) {
					return errors.New("jlink crashed")
				}
			}
			if err := os.MkdirAll(filepath.Join(out, "bin"), 0o755); err != nil {
				return err
			}
			return os.WriteFile(filepath.Join(out, "bin", "java"), []byte("java"), 0o755)
		}})
}

func argValue(args []string, flag string) string {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func testDeps(root string, runner process.CommandRunner, out *bytes.Buffer) Dependencies {
	return Dependencies{
		Out:       out,
		ErrOut:    out,
		Runner:    runner,
		Getwd:     func() (string, error) { return root, nil },
		LookupEnv: func(string) (string, bool) { return "", false },
	}
}

type mockPrompter struct {
	selectValue string
	multi       []string
	titles      []string
	options     [][]interaction.SelectOption
}

func (m *mockPrompter) SelectValue(title string, options []interaction.SelectOption) (string, error) {
	m.titles = append(m.titles, title)
	m.options = append(m.options, options)
	return m.selectValue, nil
}

func (m *mockPrompter) MultiSelect(title string, options []interaction.SelectOption) ([]string, error) {
	m.titles = append(m.titles, title)
	m.options = append(m.options, options)
	return m.multi, nil
}

func forceTerminal(t *testing.T, value bool) {
	t.Helper()
	orig := interaction.IsTerminal
	t.Cleanup(func() { interaction.IsTerminal = orig })
	interaction.IsTerminal = func(*os.File) bool { return value }
}
