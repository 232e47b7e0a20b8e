package mapping

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up next to the package when no path is given.
const DefaultFileName = "fromrow.yaml"

// LoadFile loads and parses a YAML schema file from the given path.
func LoadFile(path string) (*SchemaFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	sf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return sf, nil
}

// Parse parses YAML data into a SchemaFile.
func Parse(data []byte) (*SchemaFile, error) {
	var sf SchemaFile

	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	if sf.Version != "" && sf.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported schema version %q", sf.Version)
	}

	applyDefaults(&sf)

	return &sf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(sf *SchemaFile) {
	if sf.Version == "" {
		sf.Version = CurrentVersion
	}

	for i := range sf.Types {
		t := &sf.Types[i]
		t.Type = strings.TrimSpace(t.Type)
		t.Naming = strings.ToLower(strings.TrimSpace(t.Naming))
	}
}

// Marshal serializes a SchemaFile to YAML.
func Marshal(sf *SchemaFile) ([]byte, error) {
	return yaml.Marshal(sf)
}

// WriteFile writes a SchemaFile to the given path.
func WriteFile(sf *SchemaFile, path string) error {
	data, err := Marshal(sf)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write schema file %s: %w", path, err)
	}

	return nil
}
