// Where: internal/domain/template/context.go
// What: Template context keys and helpers.
// Why: Image names, jdeps targets and launchers resolve against the same variables.
package template

import "maps"

// Context maps variable names to values.
type Context map[string]any

const (
	KeyProjectName                   = "projectName"
	KeyProjectVersion                = "projectVersion"
	KeyProjectDescription            = "projectDescription"
	KeyDistributionName              = "distributionName"
	KeyDistributionExecutable        = "distributionExecutable"
	KeyDistributionExecutableUnix    = "distributionExecutableUnix"
	KeyDistributionExecutableWindows = "distributionExecutableWindows"
	KeyDistributionMainModule        = "distributionMainModule"
	KeyDistributionMainClass         = "distributionMainClass"
	KeyDistributionArchiveFormat     = "distributionArchiveFormat"
	KeyDistributionPlatform          = "distributionPlatform"
	KeyDistributionPlatformReplaced  = "distributionPlatformReplaced"
	KeyImageName                     = "imageName"
)

// With returns a copy of c with the given key set.
func (c Context) With(key string, value any) Context {
	out := make(Context, len(c)+1)
	maps.Copy(out, c)
	out[key] = value
	return out
}

// Merge copies entries of extra that are not already set.
func (c Context) Merge(extra map[string]any) Context {
	out := make(Context, len(c)+len(extra))
	for k, v := range extra {
		out[k] = v
	}
	maps.Copy(out, c)
	return out
}
