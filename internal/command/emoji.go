// Where: internal/command/emoji.go
// What: Emoji output resolution.
// Why: Lock down flag/env precedence so piped output stays plain.
package command

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/poruru-code/jlinkasm/internal/constants"
	"github.com/poruru-code/jlinkasm/internal/infra/interaction"
)

var errEmojiFlagConflict = errors.New("assemble: --emoji and --no-emoji cannot be used together")

func resolveEmojiEnabled(out io.Writer, emoji, noEmoji bool) (bool, error) {
	if emoji && noEmoji {
		return false, errEmojiFlagConflict
	}
	if emoji {
		return true, nil
	}
	if noEmoji {
		return false, nil
	}
	for _, key := range []string{"NO_EMOJI", constants.EnvNoEmoji} {
		if strings.TrimSpace(os.Getenv(key)) != "" {
			return false, nil
		}
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if term == "dumb" {
		return false, nil
	}
	if file, ok := out.(*os.File); ok {
		return interaction.IsTerminal(file), nil
	}
	return false, nil
}
