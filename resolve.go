package reshape

import "iter"

// DefaultSeparator joins path segments into resolved aliases
const DefaultSeparator = "."

// ResolvedField pairs the dotted path of a selected leaf with the expression that
// reads it from the source table
type ResolvedField struct {
	Alias string
	Expr  Expr
}

// SelectNestedFields walks spec depth-first, left-to-right, and yields one
// ResolvedField per leaf. Each alias is the sep-joined path from the root to the
// leaf. Invalid specifications are reported before any field is produced; the
// returned sequence is lazy and may be iterated any number of times.
//
// For example, the specification
//
//	Nest("vep", Nest("any", Leaves("transcript_ablation.max", "stop_gained.max")))
//
// yields
//
//	vep.any.transcript_ablation.max  vep[any][transcript_ablation.max]
//	vep.any.stop_gained.max          vep[any][stop_gained.max]
func SelectNestedFields(spec FieldSpec, sep string) (iter.Seq[ResolvedField], error) {
	if err := ValidateFieldSpec(spec); err != nil {
		return nil, err
	}
	return func(yield func(ResolvedField) bool) {
		walkFieldSpec(spec, nil, "", sep, yield)
	}, nil
}

// ResolveFields materializes SelectNestedFields into an ordered slice
func ResolveFields(spec FieldSpec, sep string) ([]ResolvedField, error) {
	seq, err := SelectNestedFields(spec, sep)
	if err != nil {
		return nil, err
	}
	var fields []ResolvedField
	for f := range seq {
		fields = append(fields, f)
	}
	return fields, nil
}

// walkFieldSpec returns false once yield asks to stop
func walkFieldSpec(spec FieldSpec, base *Expr, prefix string, sep string, yield func(ResolvedField) bool) bool {
	switch s := spec.(type) {
	case Leaf:
		name := string(s)
		if base == nil {
			return yield(ResolvedField{Alias: name, Expr: Col(name)})
		}
		alias := prefix + sep + name
		return yield(ResolvedField{Alias: alias, Expr: base.Field(name).Alias(alias)})
	case Group:
		for _, entry := range s {
			var next Expr
			var nextPrefix string
			if base == nil {
				next = Col(entry.Key)
				nextPrefix = entry.Key
			} else {
				next = base.Field(entry.Key)
				nextPrefix = prefix + sep + entry.Key
			}
			if !walkFieldSpec(entry.Spec, &next, nextPrefix, sep, yield) {
				return false
			}
		}
	case Sequence:
		for _, elem := range s {
			if !walkFieldSpec(elem, base, prefix, sep, yield) {
				return false
			}
		}
	}
	return true
}
