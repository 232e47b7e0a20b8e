package mapping

// CurrentVersion is the schema version written by Marshal.
const CurrentVersion = "1"

// SchemaFile is the root of a fromrow.yaml file.
type SchemaFile struct {
	Version string `yaml:"version"`
	// Runtime overrides the import path of the runtime package used by
	// generated code.
	Runtime string       `yaml:"runtime,omitempty"`
	Types   []TypeSchema `yaml:"types"`
}

// TypeSchema configures one record type.
type TypeSchema struct {
	// Type is "Name", "pkg.Name" or "import/path.Name".
	Type string `yaml:"type"`
	// Naming is the convention applied to every field without an override.
	Naming string `yaml:"naming,omitempty"`
	// Columns maps field names to column names.
	Columns map[string]string `yaml:"columns,omitempty"`
	// Ignore lists fields that are not read.
	Ignore StringOrArray `yaml:"ignore,omitempty"`
}

// StringOrArray accepts either a single string or a list in YAML.
type StringOrArray []string

// Lookup returns the schema entry for a type ID string, or nil.
func (sf *SchemaFile) Lookup(typeID string) *TypeSchema {
	if sf == nil {
		return nil
	}

	for i := range sf.Types {
		if sf.Types[i].Type == typeID {
			return &sf.Types[i]
		}
	}

	return nil
}

// IsIgnored reports whether field is in the ignore list.
func (ts *TypeSchema) IsIgnored(field string) bool {
	if ts == nil {
		return false
	}

	for _, f := range ts.Ignore {
		if f == field {
			return true
		}
	}

	return false
}

// Column returns the override for field, if any.
func (ts *TypeSchema) Column(field string) (string, bool) {
	if ts == nil {
		return "", false
	}

	col, ok := ts.Columns[field]

	return col, ok
}
