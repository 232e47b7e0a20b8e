package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// --- StringOrArray YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// --- TypeSchema YAML methods ---

// typeSchemaFields avoids recursion into TypeSchema.UnmarshalYAML.
type typeSchemaFields TypeSchema

// UnmarshalYAML accepts a bare type name as shorthand for {type: name}.
func (ts *TypeSchema) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}

		*ts = TypeSchema{Type: name}

		return nil

	case yaml.MappingNode:
		var fields typeSchemaFields
		if err := node.Decode(&fields); err != nil {
			return err
		}

		*ts = TypeSchema(fields)

		return nil

	default:
		return fmt.Errorf("line %d: expected type name or mapping, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes entries without options in the shorthand form.
func (ts TypeSchema) MarshalYAML() (any, error) {
	if ts.Naming == "" && len(ts.Columns) == 0 && len(ts.Ignore) == 0 {
		return ts.Type, nil
	}

	return typeSchemaFields(ts), nil
}
