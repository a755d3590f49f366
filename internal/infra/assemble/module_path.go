// Where: internal/infra/assemble/module_path.go
// What: Class/module path construction from the staged jar layout.
// Why: jdeps and jlink need host-specific separators; tests pin the host explicitly.
package assemble

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/poruru-code/jlinkasm/internal/infra/fileops"
	"github.com/poruru-code/jlinkasm/internal/meta"
)

// Host describes the path conventions of the machine running the tools.
type Host struct {
	GOOS          string
	ListSeparator string
	Separator     string
}

// CurrentHost returns the conventions of the running process.
func CurrentHost() Host {
	return Host{
		GOOS:          runtime.GOOS,
		ListSeparator: string(os.PathListSeparator),
		Separator:     string(os.PathSeparator),
	}
}

// HostFor returns the conventions of goos.
func HostFor(goos string) Host {
	if goos == "windows" {
		return Host{GOOS: goos, ListSeparator: ";", Separator: `\`}
	}
	return Host{GOOS: goos, ListSeparator: ":", Separator: "/"}
}

func (h Host) orDefault() Host {
	if h.ListSeparator == "" || h.Separator == "" {
		if h.GOOS == "" {
			return CurrentHost()
		}
		return HostFor(h.GOOS)
	}
	return h
}

// adjust rewrites slash separated paths to the host separator.
func (h Host) adjust(path string) string {
	h = h.orDefault()
	return strings.ReplaceAll(path, "/", h.Separator)
}

// ModulePath lists staged jars relative to JarsDir: the universal
// directory first, then the platform directory.
type ModulePath struct {
	JarsDir  string
	Platform string
	Host     Host
}

// List returns every staged jar as a relative path. Missing directories
// list as empty.
func (m ModulePath) List() ([]string, error) {
	host := m.Host.orDefault()
	var out []string
	for _, dir := range []string{meta.UniversalDir, m.Platform} {
		if dir == "" {
			continue
		}
		files, err := fileops.ListFiles(filepath.Join(m.JarsDir, dir))
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			out = append(out, dir+host.Separator+filepath.Base(file))
		}
	}
	return out, nil
}

// Join returns List joined with the host path-list separator.
func (m ModulePath) Join() (string, error) {
	paths, err := m.List()
	if err != nil {
		return "", err
	}
	return strings.Join(paths, m.Host.orDefault().ListSeparator), nil
}

// Wildcard returns "universal/*<list-sep>platform/*" with host separators.
func (m ModulePath) Wildcard() string {
	host := m.Host.orDefault()
	return meta.UniversalDir + host.Separator + "*" +
		host.ListSeparator +
		m.Platform + host.Separator + "*"
}
