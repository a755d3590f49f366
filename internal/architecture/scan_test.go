// Where: internal/architecture/scan_test.go
// What: Source scanner shared by the architecture guard tests.
// Why: Every guard walks the same non-test sources under internal/.
package architecture

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const internalImportPrefix = "github.com/poruru-code/jlinkasm/internal/"

// sourceFile is one parsed non-test Go file below internal/.
type sourceFile struct {
	rel  string // path relative to internal/, slash separated
	pkg  string // package directory relative to internal/
	file *ast.File
}

// walkInternalSources parses every non-test Go file below internal/ with
// mode and hands it to fn.
func walkInternalSources(t *testing.T, fset *token.FileSet, mode parser.Mode, fn func(sourceFile)) {
	t.Helper()
	internalRoot := resolveInternalRoot(t)
	err := filepath.WalkDir(internalRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".go") || strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(internalRoot, path)
		if err != nil {
			return err
		}
		file, err := parser.ParseFile(fset, path, nil, mode)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		fn(sourceFile{rel: rel, pkg: filepath.ToSlash(filepath.Dir(rel)), file: file})
		return nil
	})
	if err != nil {
		t.Fatalf("scan internal packages: %v", err)
	}
}

func resolveInternalRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	return filepath.Clean(filepath.Join(wd, ".."))
}

func importPaths(file *ast.File) []string {
	paths := make([]string, 0, len(file.Imports))
	for _, imp := range file.Imports {
		if path := strings.Trim(imp.Path.Value, "\""); path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}
