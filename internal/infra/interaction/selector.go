// Where: internal/infra/interaction/selector.go
// What: Interactive selection helpers using the huh library.
// Why: Provide keyboard-based choice of assemblers and target platforms.
package interaction

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

var runSelectPrompt = func(title string, options []huh.Option[string], selected *string) error {
	return huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(selected).
		Run()
}

var runMultiSelectPrompt = func(title string, options []huh.Option[string], selected *[]string) error {
	return huh.NewMultiSelect[string]().
		Title(title).
		Options(options...).
		Value(selected).
		Run()
}

// HuhPrompter implements the Prompter interface using the huh TUI library.
type HuhPrompter struct{}

func (p HuhPrompter) SelectValue(title string, options []SelectOption) (string, error) {
	if len(options) == 0 {
		return "", nil
	}

	var selected string
	err := runSelectPrompt(title, toHuhOptions(options, false), &selected)
	if err != nil {
		return "", fmt.Errorf("prompt select value: %w", err)
	}
	return selected, nil
}

// MultiSelect asks for any number of options; every option starts selected.
func (p HuhPrompter) MultiSelect(title string, options []SelectOption) ([]string, error) {
	if len(options) == 0 {
		return nil, nil
	}

	var selected []string
	err := runMultiSelectPrompt(title, toHuhOptions(options, true), &selected)
	if err != nil {
		return nil, fmt.Errorf("prompt multi select: %w", err)
	}
	return selected, nil
}

func toHuhOptions(options []SelectOption, preselect bool) []huh.Option[string] {
	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt.Label, opt.Value).Selected(preselect)
	}
	return huhOptions
}
