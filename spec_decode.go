package reshape

import (
	"fmt"

	errors "github.com/go-sif/reshape/errors"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ParseFieldSpecYAML decodes a FieldSpec from a YAML document, preserving the
// declaration order of mapping keys
func ParseFieldSpecYAML(data []byte) (FieldSpec, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.InvalidSpecError{Reason: err.Error()}
	}
	return FieldSpecFromYAMLNode(&node)
}

// FieldSpecFromYAMLNode converts an already-decoded YAML node into a FieldSpec
func FieldSpecFromYAMLNode(node *yaml.Node) (FieldSpec, error) {
	spec, err := fieldSpecFromYAML(node)
	if err != nil {
		return nil, err
	}
	return spec, ValidateFieldSpec(spec)
}

func fieldSpecFromYAML(node *yaml.Node) (FieldSpec, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, errors.InvalidSpecError{Reason: "empty YAML document"}
		}
		return fieldSpecFromYAML(node.Content[0])
	case yaml.AliasNode:
		return fieldSpecFromYAML(node.Alias)
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, errors.InvalidSpecError{Reason: fmt.Sprintf("null value at line %d", node.Line)}
		}
		return Leaf(node.Value), nil
	case yaml.SequenceNode:
		seq := make(Sequence, 0, len(node.Content))
		for _, elem := range node.Content {
			spec, err := fieldSpecFromYAML(elem)
			if err != nil {
				return nil, err
			}
			seq = append(seq, spec)
		}
		return seq, nil
	case yaml.MappingNode:
		group := make(Group, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			spec, err := fieldSpecFromYAML(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			group = append(group, GroupEntry{Key: node.Content[i].Value, Spec: spec})
		}
		return group, nil
	default:
		return nil, errors.InvalidSpecError{Reason: fmt.Sprintf("unsupported YAML node at line %d", node.Line)}
	}
}

// ParseFieldSpecJSON decodes a FieldSpec from a JSON document, preserving the
// declaration order of object keys
func ParseFieldSpecJSON(data []byte) (FieldSpec, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.InvalidSpecError{Reason: "invalid JSON"}
	}
	spec, err := fieldSpecFromJSON(gjson.ParseBytes(data))
	if err != nil {
		return nil, err
	}
	return spec, ValidateFieldSpec(spec)
}

func fieldSpecFromJSON(value gjson.Result) (FieldSpec, error) {
	var err error
	switch {
	case value.Type == gjson.String:
		return Leaf(value.Str), nil
	case value.IsArray():
		seq := Sequence{}
		value.ForEach(func(_, elem gjson.Result) bool {
			var spec FieldSpec
			spec, err = fieldSpecFromJSON(elem)
			seq = append(seq, spec)
			return err == nil
		})
		return seq, err
	case value.IsObject():
		group := Group{}
		value.ForEach(func(key, elem gjson.Result) bool {
			var spec FieldSpec
			spec, err = fieldSpecFromJSON(elem)
			group = append(group, GroupEntry{Key: key.Str, Spec: spec})
			return err == nil
		})
		return group, err
	default:
		return nil, errors.InvalidSpecError{Reason: fmt.Sprintf("unsupported JSON value %s", value.Raw)}
	}
}
