// Where: internal/command/assemble_summary.go
// What: Result summary for the assemble command.
// Why: List every produced archive in one block after the phase output.
package command

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/poruru-code/jlinkasm/internal/infra/assemble"
	"github.com/poruru-code/jlinkasm/internal/infra/ui"
)

type archiveResult struct {
	name  string
	paths []string
}

func (c assembleCommand) printSummary(outputDir string, results []assemble.Result, archives []archiveResult) {
	var rows []ui.KeyValue
	for _, result := range results {
		for _, image := range result.Images {
			rows = append(rows, ui.KeyValue{
				Key:   fmt.Sprintf("%s/%s", result.Assembler, image.Platform),
				Value: displayPath(outputDir, image.Archive),
			})
		}
	}
	for _, archive := range archives {
		for _, path := range archive.paths {
			rows = append(rows, ui.KeyValue{
				Key:   archive.name,
				Value: displayPath(outputDir, path),
			})
		}
	}
	if len(rows) == 0 {
		c.ui.Warn("No archives were produced")
		return
	}
	c.ui.Block("📦", fmt.Sprintf("Archives (%s)", outputDir), rows)
}

// displayPath shows path relative to outputDir when it lies inside it.
func displayPath(outputDir, path string) string {
	rel, err := filepath.Rel(outputDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
