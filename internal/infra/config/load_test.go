package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleConfig = `
project:
  name: app
  version: 1.0.0
  extraProperties:
    vendor: acme
platform:
  replacements:
    osx-x86_64: mac
assemble:
  jlink:
    app:
      jdk:
        path: jdks/build
      targetJdks:
        - platform: linux-x86_64
          path: jdks/linux
        - platform: osx-x86_64
          path: /opt/jdks/mac
          extraProperties:
            archiveFormat: TGZ
      java:
        mainClass: com.acme.Main
        mainJar: build/libs/app.jar
      jdeps:
        multiRelease: 17
        ignoreMissingDeps: true
      copyJars: true
      jars:
        - pattern: build/deps/*.jar
        - pattern: build/native/linux/*.jar
          platform: linux-x86_64
  archive:
    docs:
      fileSets:
        - input: docs
`

func TestLoadDecodesAndNamesAssemblers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jlinkasm.yml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseDir != dir {
		t.Fatalf("base dir = %q, want %q", cfg.BaseDir, dir)
	}
	asm := cfg.Assemble.Jlink["app"]
	if asm == nil || asm.Name != "app" {
		t.Fatalf("jlink assembler not named: %+v", asm)
	}
	if asm.Jdeps.MultiRelease != "17" {
		t.Fatalf("multiRelease = %q", asm.Jdeps.MultiRelease)
	}
	if got := asm.TargetJdks[1].ArchiveFormatOverride(); got != "TGZ" {
		t.Fatalf("archive format override = %q", got)
	}
	want := []Glob{
		{Pattern: "build/deps/*.jar"},
		{Pattern: "build/native/linux/*.jar", Platform: "linux-x86_64"},
	}
	if diff := cmp.Diff(want, asm.Jars); diff != "" {
		t.Fatalf("jars mismatch (-want +got):\n%s", diff)
	}
	if cfg.Assemble.Archive["docs"].Name != "docs" {
		t.Fatalf("archive assembler not named")
	}
	if cfg.Project.ExtraProperties["vendor"] != "acme" {
		t.Fatalf("extra properties = %v", cfg.Project.ExtraProperties)
	}
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing project",
			content: "assemble: {}\n",
		},
		{
			name: "unknown assembler field",
			content: `
project: {name: app, version: "1"}
assemble:
  jlink:
    app:
      jdk: {path: /jdk}
      targetJdks: [{platform: linux-x86_64, path: /jdk}]
      moduleName: java.base
`,
		},
		{
			name: "empty target list",
			content: `
project: {name: app, version: "1"}
assemble:
  jlink:
    app:
      jdk: {path: /jdk}
      targetJdks: []
`,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.content))
			if err == nil {
				t.Fatalf("expected schema error")
			}
			if !strings.Contains(err.Error(), "schema validation") {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestResolveConfigPathPriority(t *testing.T) {
	t.Setenv("JLINKASM_CONFIG", "")
	root := t.TempDir()
	projectConfig := filepath.Join(root, "jlinkasm.yml")
	if err := os.WriteFile(projectConfig, []byte(sampleConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := ResolveConfigPath("", nested)
	if err != nil {
		t.Fatalf("resolve from nested dir: %v", err)
	}
	if got != projectConfig {
		t.Fatalf("upward search = %q, want %q", got, projectConfig)
	}

	envConfig := filepath.Join(t.TempDir(), "env.yml")
	if err := os.WriteFile(envConfig, []byte(sampleConfig), 0o644); err != nil {
		t.Fatalf("write env config: %v", err)
	}
	t.Setenv("JLINKASM_CONFIG", envConfig)
	got, err = ResolveConfigPath("", nested)
	if err != nil {
		t.Fatalf("resolve from env: %v", err)
	}
	if got != envConfig {
		t.Fatalf("env config = %q, want %q", got, envConfig)
	}

	got, err = ResolveConfigPath(projectConfig, nested)
	if err != nil {
		t.Fatalf("resolve explicit: %v", err)
	}
	if got != projectConfig {
		t.Fatalf("explicit config = %q, want %q", got, projectConfig)
	}

	if _, err := ResolveConfigPath(filepath.Join(root, "missing.yml"), nested); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestResolveConfigPathNotFound(t *testing.T) {
	t.Setenv("JLINKASM_CONFIG", "")
	if _, err := ResolveConfigPath("", t.TempDir()); err == nil {
		t.Fatalf("expected not found error")
	}
}
