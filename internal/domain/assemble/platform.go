// Where: internal/domain/assemble/platform.go
// What: Platform selection predicate and platform name replacements.
// Why: Targets are filtered by the same rules everywhere in the pipeline.
package assemble

import "strings"

// PlatformFilter selects target platforms. An empty Selected list accepts
// every platform not listed in Rejected.
type PlatformFilter struct {
	Selected []string
	Rejected []string
}

// Matches reports whether the filter accepts platform. A blank platform is
// platform independent and always accepted.
func (f PlatformFilter) Matches(platform string) bool {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return true
	}
	for _, rejected := range f.Rejected {
		if platformMatches(rejected, platform) {
			return false
		}
	}
	if len(f.Selected) == 0 {
		return true
	}
	for _, selected := range f.Selected {
		if platformMatches(selected, platform) {
			return true
		}
	}
	return false
}

// platformMatches accepts an exact match or an OS-only pattern such as
// "linux" for "linux-x86_64".
func platformMatches(pattern, platform string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false
	}
	if pattern == platform {
		return true
	}
	return !strings.Contains(pattern, "-") && strings.HasPrefix(platform, pattern+"-")
}

// PlatformReplacements rewrites platform names for use in file names.
type PlatformReplacements map[string]string

// Apply returns the replacement for platform, or platform itself.
func (r PlatformReplacements) Apply(platform string) string {
	if replacement, ok := r[platform]; ok && strings.TrimSpace(replacement) != "" {
		return replacement
	}
	return platform
}
