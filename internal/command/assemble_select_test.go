package command

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	domain "github.com/poruru-code/jlinkasm/internal/domain/assemble"
	"github.com/poruru-code/jlinkasm/internal/infra/config"
	"github.com/poruru-code/jlinkasm/internal/infra/ui"
)

func selectionConfig() *config.Config {
	return &config.Config{
		Assemble: config.Assemble{
			Jlink: map[string]*config.JlinkAssembler{
				"app": {Name: "app", TargetJdks: []config.Target{
					{Platform: "osx-x86_64"},
					{Platform: "linux-x86_64"},
				}},
				"cli": {Name: "cli", TargetJdks: []config.Target{
					{Platform: "linux-x86_64"},
					{Platform: "windows-x86_64"},
				}},
			},
			Archive: map[string]*config.ArchiveAssembler{"docs": {Name: "docs"}},
		},
	}
}

func newSelectCommand(flags AssembleCmd, prompter *mockPrompter) assembleCommand {
	var out bytes.Buffer
	return assembleCommand{
		deps:  Dependencies{Prompter: prompter},
		flags: flags,
		ui:    ui.NewAssembleUI(&out, false),
	}
}

func TestSelectAssemblers(t *testing.T) {
	forceTerminal(t, false)
	tests := []struct {
		name      string
		requested []string
		want      []string
		wantErr   error
	}{
		{name: "all by default", want: []string{"app", "cli", "docs"}},
		{name: "keeps config order", requested: []string{"docs", "app"}, want: []string{"app", "docs"}},
		{name: "unknown name", requested: []string{"nope"}, wantErr: errUnknownAssembler},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cmd := newSelectCommand(AssembleCmd{Assembler: tc.requested}, &mockPrompter{})
			got, err := cmd.selectAssemblers(selectionConfig())
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("select: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectAssemblersPromptsWhenInteractive(t *testing.T) {
	forceTerminal(t, true)
	prompter := &mockPrompter{selectValue: "cli"}
	cmd := newSelectCommand(AssembleCmd{Interactive: true}, prompter)

	got, err := cmd.selectAssemblers(selectionConfig())
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if diff := cmp.Diff([]string{"cli"}, got); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if len(prompter.options) != 1 || len(prompter.options[0]) != 4 {
		t.Fatalf("expected one prompt with 4 options, got %#v", prompter.options)
	}
}

func TestPromptPlatformsOffersFilteredUnion(t *testing.T) {
	forceTerminal(t, true)
	prompter := &mockPrompter{multi: []string{"linux-x86_64"}}
	cmd := newSelectCommand(AssembleCmd{Interactive: true}, prompter)
	cfg := selectionConfig()
	assemblers := []*config.JlinkAssembler{cfg.Assemble.Jlink["app"], cfg.Assemble.Jlink["cli"]}

	got, err := cmd.promptPlatforms(assemblers, domain.PlatformFilter{Rejected: []string{"windows"}})
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if diff := cmp.Diff([]string{"linux-x86_64"}, got); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	var offered []string
	for _, opt := range prompter.options[0] {
		offered = append(offered, opt.Value)
	}
	if diff := cmp.Diff([]string{"linux-x86_64", "osx-x86_64"}, offered); diff != "" {
		t.Fatalf("offered mismatch (-want +got):\n%s", diff)
	}
}

func TestPromptPlatformsRequiresASelection(t *testing.T) {
	forceTerminal(t, true)
	cmd := newSelectCommand(AssembleCmd{Interactive: true}, &mockPrompter{})
	cfg := selectionConfig()

	_, err := cmd.promptPlatforms([]*config.JlinkAssembler{cfg.Assemble.Jlink["app"]}, domain.PlatformFilter{})
	if !errors.Is(err, errNoPlatformSelected) {
		t.Fatalf("expected errNoPlatformSelected, got %v", err)
	}
}
