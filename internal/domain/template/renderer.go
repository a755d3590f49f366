// Where: internal/domain/template/renderer.go
// What: Render names, jdeps targets and launcher files with sprig.
// Why: Configs use {{name}} placeholders; Go {{ .name }} actions and sprig functions also work.
package template

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

var (
	templateCache sync.Map
	funcMap       = sprig.TxtFuncMap()
	bareKey       = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)
)

var keywords = map[string]bool{
	"else": true, "end": true, "break": true, "continue": true, "nil": true,
}

// Render evaluates text against ctx. Text without actions is returned as is.
func Render(text string, ctx Context) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}
	normalized, err := normalize(text, ctx)
	if err != nil {
		return "", err
	}
	tmpl, err := loadTemplate(normalized)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(ctx)); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// MustHaveValue renders text and fails when the result is blank.
func MustHaveValue(text string, ctx Context) (string, error) {
	out, err := Render(text, ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("template %q rendered to an empty value", text)
	}
	return out, nil
}

// normalize rewrites {{key}} into {{ index . "key" }} for keys present in
// ctx. Bare names that are neither keys nor functions are rejected.
func normalize(text string, ctx Context) (string, error) {
	var unknown []string
	out := bareKey.ReplaceAllStringFunc(text, func(match string) string {
		name := bareKey.FindStringSubmatch(match)[1]
		if _, ok := ctx[name]; ok {
			return fmt.Sprintf(`{{ index . %q }}`, name)
		}
		if _, ok := funcMap[name]; ok || keywords[name] {
			return match
		}
		unknown = append(unknown, name)
		return match
	})
	if len(unknown) > 0 {
		return "", fmt.Errorf("unknown template variable %q", unknown[0])
	}
	return out, nil
}

func loadTemplate(text string) (*template.Template, error) {
	if value, ok := templateCache.Load(text); ok {
		cached, ok := value.(*template.Template)
		if !ok {
			return nil, fmt.Errorf("template cache type mismatch")
		}
		return cached, nil
	}
	tmpl, err := template.New("inline").Funcs(funcMap).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	templateCache.Store(text, tmpl)
	return tmpl, nil
}
