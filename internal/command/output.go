// Where: internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface construction.
package command

import (
	"io"

	"github.com/poruru-code/jlinkasm/internal/infra/ui"
)

func plainUI(out io.Writer) ui.UserInterface {
	return ui.NewPlainUI(out)
}
