// Where: internal/constants/env.go
// What: Environment variable naming constants.
// Why: Centralize environment variable names to avoid typos and inconsistencies.
package constants

const (
	// Reproducible builds
	EnvSourceDateEpoch = "SOURCE_DATE_EPOCH"

	// CLI defaults; flag-level variables are declared on the kong flags.
	EnvConfigFile = "JLINKASM_CONFIG"
	EnvNoEmoji    = "JLINKASM_NO_EMOJI"
)
