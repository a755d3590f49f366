// Where: assets/launcher_templates_embed.go
// What: Embed default launcher templates.
// Why: Non-modular images need bin/ launchers even when the project ships none.
package assets

import "embed"

//go:embed launcher-templates/bin/*.tpl
var LauncherTemplatesFS embed.FS

// LauncherTemplatesRoot is the directory inside LauncherTemplatesFS that
// mirrors the inputs/ layout.
const LauncherTemplatesRoot = "launcher-templates"
