// Where: internal/infra/config/model.go
// What: YAML model of jlinkasm.yml.
// Why: Keep the on-disk shape separate from the defaulting and validation rules.
package config

import (
	"github.com/poruru-code/jlinkasm/internal/domain/assemble"
	"github.com/poruru-code/jlinkasm/internal/meta"
)

// Config is the root of jlinkasm.yml.
type Config struct {
	Project  Project  `yaml:"project"`
	Platform Platform `yaml:"platform,omitempty"`
	Assemble Assemble `yaml:"assemble"`

	// BaseDir is the directory holding the config file. Relative paths
	// in the file resolve against it.
	BaseDir string `yaml:"-"`
}

// Project carries release-wide metadata exposed to templates.
type Project struct {
	Name             string         `yaml:"name"`
	Version          string         `yaml:"version"`
	Description      string         `yaml:"description,omitempty"`
	ArchiveTimestamp string         `yaml:"archiveTimestamp,omitempty"`
	ExtraProperties  map[string]any `yaml:"extraProperties,omitempty"`
}

// Platform holds platform name rewrites used in file names.
type Platform struct {
	Replacements map[string]string `yaml:"replacements,omitempty"`
}

// Assemble groups the configured assemblers by type, keyed by name.
type Assemble struct {
	Jlink   map[string]*JlinkAssembler   `yaml:"jlink,omitempty"`
	Archive map[string]*ArchiveAssembler `yaml:"archive,omitempty"`
}

// Target describes a JDK installation for one platform.
type Target struct {
	Platform        string            `yaml:"platform,omitempty"`
	Path            string            `yaml:"path"`
	ExtraProperties map[string]string `yaml:"extraProperties,omitempty"`
}

// ArchiveFormatOverride returns the per-target archive format, if any.
func (t Target) ArchiveFormatOverride() string {
	return t.ExtraProperties[meta.ArchiveFormatProp]
}

// Java identifies the application entry point.
type Java struct {
	MainModule string `yaml:"mainModule,omitempty"`
	MainClass  string `yaml:"mainClass,omitempty"`
	MainJar    string `yaml:"mainJar,omitempty"`
}

// Jdeps tunes dependency analysis.
type Jdeps struct {
	MultiRelease      string   `yaml:"multiRelease,omitempty"`
	IgnoreMissingDeps bool     `yaml:"ignoreMissingDeps,omitempty"`
	Targets           []string `yaml:"targets,omitempty"`
	UseWildcardInPath bool     `yaml:"useWildcardInPath,omitempty"`
}

// Glob selects application jars. A blank platform marks universal jars.
type Glob struct {
	Pattern  string `yaml:"pattern"`
	Platform string `yaml:"platform,omitempty"`
}

// Artifact is an extra file copied into every matching image.
type Artifact struct {
	Path      string `yaml:"path"`
	Platform  string `yaml:"platform,omitempty"`
	Transform string `yaml:"transform,omitempty"`
}

// FileSet copies a filtered directory tree into the image.
type FileSet struct {
	Input    string   `yaml:"input"`
	Output   string   `yaml:"output,omitempty"`
	Includes []string `yaml:"includes,omitempty"`
	Excludes []string `yaml:"excludes,omitempty"`
}

// JlinkAssembler configures one runtime image assembler.
type JlinkAssembler struct {
	Name                  string     `yaml:"-"`
	Jdk                   Target     `yaml:"jdk"`
	TargetJdks            []Target   `yaml:"targetJdks"`
	ModuleNames           []string   `yaml:"moduleNames,omitempty"`
	AdditionalModuleNames []string   `yaml:"additionalModuleNames,omitempty"`
	Java                  Java       `yaml:"java,omitempty"`
	Executable            string     `yaml:"executable,omitempty"`
	ArchiveFormat         string     `yaml:"archiveFormat,omitempty"`
	Jdeps                 Jdeps      `yaml:"jdeps,omitempty"`
	CopyJars              bool       `yaml:"copyJars,omitempty"`
	ImageName             string     `yaml:"imageName,omitempty"`
	ImageNameTransform    string     `yaml:"imageNameTransform,omitempty"`
	Args                  []string   `yaml:"args,omitempty"`
	TemplateDirectory     string     `yaml:"templateDirectory,omitempty"`
	Jars                  []Glob     `yaml:"jars,omitempty"`
	Artifacts             []Artifact `yaml:"artifacts,omitempty"`
	Files                 []string   `yaml:"files,omitempty"`
	FileSets              []FileSet  `yaml:"fileSets,omitempty"`

	// Resolution is selected by Validate from the fields above.
	Resolution assemble.ModuleResolution `yaml:"-"`
}

// ArchiveAssembler configures a plain archive of files and filesets.
type ArchiveAssembler struct {
	Name             string    `yaml:"-"`
	ArchiveName      string    `yaml:"archiveName,omitempty"`
	DistributionType string    `yaml:"distributionType,omitempty"`
	Formats          []string  `yaml:"formats,omitempty"`
	Files            []string  `yaml:"files,omitempty"`
	FileSets         []FileSet `yaml:"fileSets,omitempty"`

	// ResolvedFormats is filled by Validate.
	ResolvedFormats []assemble.ArchiveFormat `yaml:"-"`
}
