// Where: internal/command/assemble_select.go
// What: Assembler and platform selection for the assemble command.
// Why: Flags narrow the run; interactive mode asks only for what the flags left open.
package command

import (
	"fmt"
	"sort"
	"strings"

	domain "github.com/poruru-code/jlinkasm/internal/domain/assemble"
	"github.com/poruru-code/jlinkasm/internal/infra/config"
	"github.com/poruru-code/jlinkasm/internal/infra/interaction"
)

type unknownAssemblerError struct {
	name      string
	available []string
}

func (e *unknownAssemblerError) Error() string {
	return fmt.Sprintf("%v: %s", errUnknownAssembler, e.name)
}

func (e *unknownAssemblerError) Unwrap() error { return errUnknownAssembler }

const allAssemblersValue = "*"

// selectAssemblers returns the assembler names to run in order: jlink
// assemblers first, then archive assemblers, each sorted by name.
func (c assembleCommand) selectAssemblers(cfg *config.Config) ([]string, error) {
	available := append(cfg.JlinkNames(), cfg.ArchiveNames()...)
	requested := trimAll(c.flags.Assembler)

	if len(requested) == 0 && c.flags.Interactive && c.deps.Prompter != nil && len(available) > 1 && interaction.IsTerminal(c.deps.In) {
		options := []interaction.SelectOption{{Label: "all assemblers", Value: allAssemblersValue}}
		for _, name := range available {
			options = append(options, interaction.SelectOption{Label: name, Value: name})
		}
		choice, err := c.deps.Prompter.SelectValue("Assembler", options)
		if err != nil {
			return nil, err
		}
		if choice != "" && choice != allAssemblersValue {
			requested = []string{choice}
		}
	}
	if len(requested) == 0 {
		return available, nil
	}

	wanted := map[string]bool{}
	for _, name := range requested {
		if !contains(available, name) {
			return nil, &unknownAssemblerError{name: name, available: available}
		}
		wanted[name] = true
	}
	var names []string
	for _, name := range available {
		if wanted[name] {
			names = append(names, name)
		}
	}
	return names, nil
}

// promptPlatforms offers every target platform the filter still accepts
// and returns the chosen ones.
func (c assembleCommand) promptPlatforms(assemblers []*config.JlinkAssembler, filter domain.PlatformFilter) ([]string, error) {
	seen := map[string]bool{}
	var platforms []string
	for _, asm := range assemblers {
		for _, target := range asm.TargetJdks {
			platform := strings.TrimSpace(target.Platform)
			if platform == "" || seen[platform] || !filter.Matches(platform) {
				continue
			}
			seen[platform] = true
			platforms = append(platforms, platform)
		}
	}
	sort.Strings(platforms)
	if len(platforms) <= 1 {
		return platforms, nil
	}

	options := make([]interaction.SelectOption, len(platforms))
	for i, platform := range platforms {
		options[i] = interaction.SelectOption{Label: platform, Value: platform}
	}
	selected, err := c.deps.Prompter.MultiSelect("Target platforms", options)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, errNoPlatformSelected
	}
	return selected, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
