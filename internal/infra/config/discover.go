// Where: internal/infra/config/discover.go
// What: Config file discovery.
// Why: Find jlinkasm.yml from a flag, the environment, or by walking up from the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru-code/jlinkasm/internal/constants"
	"github.com/poruru-code/jlinkasm/internal/meta"
)

var (
	errConfigNotFound   = errors.New("config file not found")
	errConfigNotFoundAt = errors.New("config file does not exist")
)

// ResolveConfigPath determines the config file path.
// Priority order.
// 1. The explicit path (usually --config), which must exist.
// 2. The config environment variable, which must exist when set.
// 3. Upward search for jlinkasm.yml (or .yaml) from startDir.
func ResolveConfigPath(explicit, startDir string) (string, error) {
	if path := strings.TrimSpace(explicit); path != "" {
		return requireFile(path)
	}

	if path := strings.TrimSpace(os.Getenv(constants.EnvConfigFile)); path != "" {
		return requireFile(path)
	}

	if startDir != "" {
		if path, ok := findConfigFile(startDir); ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: run from a project directory or set %s", errConfigNotFound, constants.EnvConfigFile)
}

func requireFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", errConfigNotFoundAt, abs)
	}
	return abs, nil
}

// findConfigFile searches upward from path for a directory holding the
// default config file.
func findConfigFile(path string) (string, bool) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	ext := filepath.Ext(meta.DefaultConfigFile)
	stem := strings.TrimSuffix(meta.DefaultConfigFile, ext)
	markers := []string{
		meta.DefaultConfigFile,
		stem + ".yaml",
	}

	for {
		for _, marker := range markers {
			candidate := filepath.Join(dir, marker)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}
