// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep branding and on-disk layout names in one place.
package meta

const (
	// Project Identity
	AppName   = "jlinkasm"
	Slug      = "jlinkasm"
	EnvPrefix = "JLINKASM"

	// Configuration
	DefaultConfigFile = "jlinkasm.yml"
	DefaultOutputDir  = "out/jlinkasm"

	// Assemble Layout
	AssembleDir       = "assemble"
	InputsDir         = "inputs"
	JarsDir           = "jars"
	UniversalDir      = "universal"
	BinDir            = "bin"
	WorkDir           = "work"
	JmodsDir          = "jmods"
	LicensePrefix     = "LICENSE"
	TemplateSuffix    = ".tpl"
	JarExtension      = ".jar"
	BatExtension      = ".bat"
	ExeExtension      = ".exe"
	LauncherTemplate  = "bin/launcher"
	ReleaseFile       = "release"
	ArchiveFormatProp = "archiveFormat"
)
