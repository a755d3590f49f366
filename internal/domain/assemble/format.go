// Where: internal/domain/assemble/format.go
// What: Archive format identifiers and file extensions.
// Why: Resolve per-target overrides against the assembler default in one place.
package assemble

import (
	"fmt"
	"strings"
)

// ArchiveFormat names an output archive encoding.
type ArchiveFormat string

const (
	FormatZip    ArchiveFormat = "ZIP"
	FormatTar    ArchiveFormat = "TAR"
	FormatTarGz  ArchiveFormat = "TAR_GZ"
	FormatTgz    ArchiveFormat = "TGZ"
	FormatTarZst ArchiveFormat = "TAR_ZST"
	FormatTzst   ArchiveFormat = "TZST"
)

// DefaultArchiveFormat is used when neither the target nor the assembler sets one.
const DefaultArchiveFormat = FormatZip

var formatExtensions = map[ArchiveFormat]string{
	FormatZip:    "zip",
	FormatTar:    "tar",
	FormatTarGz:  "tar.gz",
	FormatTgz:    "tgz",
	FormatTarZst: "tar.zst",
	FormatTzst:   "tzst",
}

// ParseArchiveFormat accepts the canonical names case-insensitively, with
// '-' or '.' in place of '_' ("tar.gz", "tar-gz").
func ParseArchiveFormat(value string) (ArchiveFormat, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	normalized = strings.NewReplacer("-", "_", ".", "_").Replace(normalized)
	format := ArchiveFormat(normalized)
	if _, ok := formatExtensions[format]; !ok {
		return "", fmt.Errorf("unsupported archive format %q", value)
	}
	return format, nil
}

// Extension returns the file extension without a leading dot.
func (f ArchiveFormat) Extension() string {
	return formatExtensions[f]
}

// IsZip reports whether the format is a zip file.
func (f ArchiveFormat) IsZip() bool { return f == FormatZip }

// Compression returns "", "gzip" or "zstd" for tar based formats.
func (f ArchiveFormat) Compression() string {
	switch f {
	case FormatTarGz, FormatTgz:
		return "gzip"
	case FormatTarZst, FormatTzst:
		return "zstd"
	default:
		return ""
	}
}

// String returns the canonical name.
func (f ArchiveFormat) String() string { return string(f) }

// ResolveArchiveFormat picks the per-target override, then the assembler
// default, then DefaultArchiveFormat.
func ResolveArchiveFormat(override, assemblerDefault string) (ArchiveFormat, error) {
	if strings.TrimSpace(override) != "" {
		return ParseArchiveFormat(override)
	}
	if strings.TrimSpace(assemblerDefault) != "" {
		return ParseArchiveFormat(assemblerDefault)
	}
	return DefaultArchiveFormat, nil
}
