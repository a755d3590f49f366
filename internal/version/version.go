// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Provide build-time version information (release tag or Git commit) to the CLI.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Version is set at link time with -ldflags "-X .../version.Version=v1.2.3".
var Version = ""

// GetVersion returns the version information derived from the link-time value
// or, failing that, from build info. It returns "dev" when neither is available.
// A VCS revision is shortened to 7 chars and suffixed with "(dirty)" if the
// tree was modified.
func GetVersion() string {
	if v := strings.TrimSpace(Version); v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	var revision string
	var modified bool

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			if setting.Value == "true" {
				modified = true
			}
		}
	}

	if revision == "" {
		return "dev"
	}

	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}
