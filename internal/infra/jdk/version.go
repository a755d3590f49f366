// Where: internal/infra/jdk/version.go
// What: Java version probing and parsing.
// Why: The compatibility gate compares major versions of the build and target JDKs.
package jdk

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/joho/godotenv"

	"github.com/poruru-code/jlinkasm/internal/infra/fileops"
	"github.com/poruru-code/jlinkasm/internal/infra/process"
	"github.com/poruru-code/jlinkasm/internal/meta"
)

var (
	errVersionNotFound = errors.New("java version not found")
	versionLine        = regexp.MustCompile(`version "([^"]+)"`)
)

// Version is a probed JDK version.
type Version struct {
	Raw    string
	semver *semver.Version
}

// ParseVersion accepts the forms found in release files and java -version
// output: "17.0.2", "1.8.0_292", "21-ea", "17.0.2.1", "21+35".
func ParseVersion(raw string) (Version, error) {
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	if raw == "" {
		return Version{}, errVersionNotFound
	}
	normalized := raw
	if i := strings.IndexByte(normalized, '_'); i >= 0 {
		normalized = normalized[:i]
	}
	core, suffix := splitSuffix(normalized)
	parts := strings.Split(core, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	// Java 8 and older report 1.<major>.
	if len(parts) >= 2 && parts[0] == "1" {
		parts = parts[1:]
	}
	parsed, err := semver.NewVersion(strings.Join(parts, ".") + suffix)
	if err != nil {
		return Version{}, fmt.Errorf("parse java version %q: %w", raw, err)
	}
	return Version{Raw: raw, semver: parsed}, nil
}

// splitSuffix separates "21-ea" or "21+35" into "21" and "-ea"/"+35".
func splitSuffix(value string) (string, string) {
	if i := strings.IndexAny(value, "-+"); i >= 0 {
		return value[:i], value[i:]
	}
	return value, ""
}

// Major returns the feature release number.
func (v Version) Major() uint64 {
	if v.semver == nil {
		return 0
	}
	return v.semver.Major()
}

func (v Version) String() string { return v.Raw }

// ToolPath returns <jdk>/bin/<tool>, with ".exe" on Windows hosts.
func ToolPath(jdkPath, tool, goos string) string {
	if goos == "windows" {
		tool += meta.ExeExtension
	}
	return filepath.Join(jdkPath, meta.BinDir, tool)
}

// Prober reads JDK versions from the release file, falling back to
// running "java -version".
type Prober struct {
	Runner process.CommandRunner
	GOOS   string
}

// Probe returns the version of the JDK installed at jdkPath.
func (p Prober) Probe(ctx context.Context, jdkPath string) (Version, error) {
	releasePath := filepath.Join(jdkPath, meta.ReleaseFile)
	if fileops.FileExists(releasePath) {
		values, err := godotenv.Read(releasePath)
		if err != nil {
			return Version{}, fmt.Errorf("read %s: %w", releasePath, err)
		}
		if raw := values["JAVA_VERSION"]; strings.TrimSpace(raw) != "" {
			return ParseVersion(raw)
		}
	}
	return p.probeExecutable(ctx, jdkPath)
}

func (p Prober) probeExecutable(ctx context.Context, jdkPath string) (Version, error) {
	if p.Runner == nil {
		return Version{}, fmt.Errorf("%w in %s", errVersionNotFound, jdkPath)
	}
	cmd := process.Command{
		Executable: ToolPath(jdkPath, "java", p.GOOS),
		Args:       []string{"-version"},
	}
	result, err := p.Runner.Run(ctx, cmd)
	if err != nil {
		return Version{}, fmt.Errorf("probe %s: %w", jdkPath, err)
	}
	if !result.Success() {
		return Version{}, fmt.Errorf("probe %s: java -version exited with code %d: %s",
			jdkPath, result.ExitCode, strings.TrimSpace(result.Output()))
	}
	match := versionLine.FindStringSubmatch(result.Output())
	if match == nil {
		return Version{}, fmt.Errorf("%w in output of %s", errVersionNotFound, cmd.Executable)
	}
	return ParseVersion(match[1])
}
