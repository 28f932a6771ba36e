package reshape

import (
	"fmt"
	"sort"

	errors "github.com/go-sif/reshape/errors"
)

// FieldSpec describes which (possibly nested) fields to select from a table. It mirrors
// the table's nested schema and is one of:
//
//	Leaf     a column or struct field name
//	Group    an ordered mapping from struct field names to nested FieldSpecs
//	Sequence an ordered collection of FieldSpecs sharing the same parent
type FieldSpec interface {
	isFieldSpec()
}

// Leaf names a single column, or a single field of the enclosing struct
type Leaf string

// GroupEntry is one key/value pair of a Group
type GroupEntry struct {
	Key  string
	Spec FieldSpec
}

// Group selects nested fields below each keyed struct, in declaration order
type Group []GroupEntry

// Sequence selects several FieldSpecs below the same parent, in declaration order
type Sequence []FieldSpec

func (Leaf) isFieldSpec()     {}
func (Group) isFieldSpec()    {}
func (Sequence) isFieldSpec() {}

// Leaves builds a Sequence of Leaf names
func Leaves(names ...string) Sequence {
	seq := make(Sequence, len(names))
	for i, n := range names {
		seq[i] = Leaf(n)
	}
	return seq
}

// Nest builds a single-entry Group
func Nest(key string, spec FieldSpec) Group {
	return Group{{Key: key, Spec: spec}}
}

// ValidateFieldSpec checks that spec is well-formed: no nil members, and no empty
// leaf names or group keys
func ValidateFieldSpec(spec FieldSpec) error {
	switch s := spec.(type) {
	case nil:
		return errors.InvalidSpecError{Reason: "specification is nil"}
	case Leaf:
		if s == "" {
			return errors.InvalidSpecError{Reason: "leaf names cannot be empty"}
		}
	case Group:
		for _, entry := range s {
			if entry.Key == "" {
				return errors.InvalidSpecError{Reason: "group keys cannot be empty"}
			}
			if err := ValidateFieldSpec(entry.Spec); err != nil {
				return err
			}
		}
	case Sequence:
		for _, elem := range s {
			if err := ValidateFieldSpec(elem); err != nil {
				return err
			}
		}
	default:
		return errors.InvalidSpecError{Reason: fmt.Sprintf("unknown specification type %T", spec)}
	}
	return nil
}

// FieldSpecFromValue converts a dynamically typed value into a FieldSpec. Strings
// become Leaves, slices become Sequences and maps become Groups. Since Go maps are
// unordered, map keys are sorted to keep the result deterministic; use the YAML or
// JSON decoders to preserve declaration order. Any other type is an InvalidSpecError.
func FieldSpecFromValue(v any) (FieldSpec, error) {
	switch tv := v.(type) {
	case FieldSpec:
		return tv, ValidateFieldSpec(tv)
	case string:
		return Leaf(tv), ValidateFieldSpec(Leaf(tv))
	case []string:
		return Leaves(tv...), ValidateFieldSpec(Leaves(tv...))
	case []any:
		seq := make(Sequence, len(tv))
		for i, e := range tv {
			elem, err := FieldSpecFromValue(e)
			if err != nil {
				return nil, err
			}
			seq[i] = elem
		}
		return seq, nil
	case map[string]any:
		keys := make([]string, 0, len(tv))
		for k := range tv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		group := make(Group, len(keys))
		for i, k := range keys {
			elem, err := FieldSpecFromValue(tv[k])
			if err != nil {
				return nil, err
			}
			group[i] = GroupEntry{Key: k, Spec: elem}
		}
		return group, ValidateFieldSpec(group)
	default:
		return nil, errors.InvalidSpecError{Reason: fmt.Sprintf("unknown specification type %T", v)}
	}
}
