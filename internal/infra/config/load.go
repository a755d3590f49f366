// Where: internal/infra/config/load.go
// What: Read, schema-check and decode jlinkasm.yml.
// Why: Reject malformed files before any defaulting happens.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"
)

const schemaURL = "https://jlinkasm.invalid/schema/jlinkasm.schema.json"

//go:embed schema/jlinkasm.schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

// Load reads the config file at path, validates it against the embedded
// schema and decodes it. Defaults are applied separately by Validate.
func Load(path string) (*Config, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if abs, err := filepath.Abs(filepath.Dir(path)); err == nil {
		cfg.BaseDir = abs
	} else {
		cfg.BaseDir = filepath.Dir(path)
	}
	return cfg, nil
}

// Parse validates and decodes a config document.
func Parse(content []byte) (*Config, error) {
	if err := validateSchema(content); err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	for name, asm := range cfg.Assemble.Jlink {
		if asm == nil {
			asm = &JlinkAssembler{}
			cfg.Assemble.Jlink[name] = asm
		}
		asm.Name = name
	}
	for name, asm := range cfg.Assemble.Archive {
		if asm == nil {
			asm = &ArchiveAssembler{}
			cfg.Assemble.Archive[name] = asm
		}
		asm.Name = name
	}
	return &cfg, nil
}

// JlinkNames returns the jlink assembler names in sorted order.
func (c *Config) JlinkNames() []string {
	names := make([]string, 0, len(c.Assemble.Jlink))
	for name := range c.Assemble.Jlink {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ArchiveNames returns the archive assembler names in sorted order.
func (c *Config) ArchiveNames() []string {
	names := make([]string, 0, len(c.Assemble.Archive))
	for name := range c.Assemble.Archive {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateSchema(content []byte) error {
	sch, err := loadSchema()
	if err != nil {
		return err
	}

	jsonData, err := k8syaml.YAMLToJSON(content)
	if err != nil {
		return fmt.Errorf("convert yaml to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return fmt.Errorf("unmarshal json: %w", err)
	}
	if err := sch.Validate(document); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("load config schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}
