package reshape

import (
	"fmt"

	errors "github.com/go-sif/reshape/errors"
)

// BoundExpr is an Expr which has been resolved against a Schema, and can be
// evaluated against rows of that Schema
type BoundExpr struct {
	name    string
	colType ColumnType
	columns []int
	colRef  bool
	eval    func(row []any) (any, error)
}

// Name returns the name of the column this expression produces
func (b *BoundExpr) Name() string {
	return b.name
}

// Type returns the ColumnType of the values this expression produces
func (b *BoundExpr) Type() ColumnType {
	return b.colType
}

// Columns returns the indices of the Schema columns this expression reads
func (b *BoundExpr) Columns() []int {
	return b.columns
}

// IsColumnRef returns true iff this expression copies a single column unchanged
func (b *BoundExpr) IsColumnRef() bool {
	return b.colRef
}

// Eval evaluates this expression against a row, given as values in Schema index order
func (b *BoundExpr) Eval(row []any) (any, error) {
	return b.eval(row)
}

// BindAll binds several expressions against the same Schema, and checks that
// their output names are unique
func BindAll(schema Schema, exprs ...Expr) ([]*BoundExpr, error) {
	bound := make([]*BoundExpr, len(exprs))
	seen := make(map[string]bool, len(exprs))
	for i, e := range exprs {
		b, err := e.Bind(schema)
		if err != nil {
			return nil, err
		}
		if seen[b.Name()] {
			return nil, errors.ColumnCollisionError{Name: b.Name()}
		}
		seen[b.Name()] = true
		bound[i] = b
	}
	return bound, nil
}

func (n *colNode) bind(schema Schema) (*BoundExpr, error) {
	col, err := schema.GetColumn(n.colName)
	if err != nil {
		return nil, err
	}
	idx := col.Index()
	return &BoundExpr{
		name:    n.colName,
		colType: col.Type(),
		columns: []int{idx},
		colRef:  true,
		eval: func(row []any) (any, error) {
			return row[idx], nil
		},
	}, nil
}

func (n *fieldNode) bind(schema Schema) (*BoundExpr, error) {
	base, err := n.base.Bind(schema)
	if err != nil {
		return nil, err
	}
	st, ok := IsStruct(base.Type())
	if !ok {
		return nil, errors.TypeMismatchError{Name: n.base.String(), Expected: "struct", Actual: base.Type().TypeName()}
	}
	fi := st.FieldIndex(n.fieldName)
	if fi < 0 {
		return nil, errors.NoSuchFieldError{Path: n.base.String(), Field: n.fieldName}
	}
	return &BoundExpr{
		name:    n.fieldName,
		colType: st.Fields[fi].Type,
		columns: base.columns,
		eval: func(row []any) (any, error) {
			v, err := base.eval(row)
			if err != nil || v == nil {
				return nil, err
			}
			sv, ok := v.(StructValue)
			if !ok {
				return nil, errors.TypeMismatchError{Name: n.base.String(), Expected: "struct", Actual: fmt.Sprintf("%T", v)}
			}
			return sv[fi], nil
		},
	}, nil
}

func (n *litNode) bind(schema Schema) (*BoundExpr, error) {
	if n.err != nil {
		return nil, n.err
	}
	value, err := CoerceValue(n.colType, n.value)
	if err != nil {
		return nil, err
	}
	return &BoundExpr{
		name:    n.name(),
		colType: n.colType,
		eval: func(row []any) (any, error) {
			return value, nil
		},
	}, nil
}

func (n *structNode) bind(schema Schema) (*BoundExpr, error) {
	fields, err := BindAll(schema, n.fields...)
	if err != nil {
		return nil, err
	}
	st := &StructColumnType{Fields: make([]StructField, len(fields))}
	var columns []int
	for i, f := range fields {
		st.Fields[i] = StructField{Name: f.Name(), Type: f.Type()}
		columns = append(columns, f.columns...)
	}
	return &BoundExpr{
		name:    n.name(),
		colType: st,
		columns: columns,
		eval: func(row []any) (any, error) {
			res := make(StructValue, len(fields))
			for i, f := range fields {
				v, err := f.eval(row)
				if err != nil {
					return nil, err
				}
				res[i] = v
			}
			return res, nil
		},
	}, nil
}

func (n *arrayNode) bind(schema Schema) (*BoundExpr, error) {
	if len(n.elems) == 0 {
		return nil, fmt.Errorf("cannot build an array from zero expressions")
	}
	elems := make([]*BoundExpr, len(n.elems))
	var columns []int
	for i, e := range n.elems {
		b, err := e.Bind(schema)
		if err != nil {
			return nil, err
		}
		if i > 0 && !ColumnTypesEqual(elems[0].Type(), b.Type()) {
			return nil, errors.TypeMismatchError{Name: e.String(), Expected: elems[0].Type().TypeName(), Actual: b.Type().TypeName()}
		}
		elems[i] = b
		columns = append(columns, b.columns...)
	}
	return &BoundExpr{
		name:    n.name(),
		colType: &ListColumnType{Elem: elems[0].Type()},
		columns: columns,
		eval: func(row []any) (any, error) {
			res := make([]any, len(elems))
			for i, e := range elems {
				v, err := e.eval(row)
				if err != nil {
					return nil, err
				}
				res[i] = v
			}
			return res, nil
		},
	}, nil
}

func (n *aliasNode) bind(schema Schema) (*BoundExpr, error) {
	inner, err := n.inner.Bind(schema)
	if err != nil {
		return nil, err
	}
	return &BoundExpr{
		name:    n.alias,
		colType: inner.colType,
		columns: inner.columns,
		colRef:  inner.colRef,
		eval:    inner.eval,
	}, nil
}

func (n *replaceNode) bind(schema Schema) (*BoundExpr, error) {
	inner, err := n.inner.Bind(schema)
	if err != nil {
		return nil, err
	}
	switch inner.Type().(type) {
	case *StructColumnType, *ListColumnType, *VarBytesColumnType:
		return nil, errors.TypeMismatchError{Name: n.inner.String(), Expected: "a scalar type", Actual: inner.Type().TypeName()}
	}
	mapping := make(map[any]any, len(n.mapping))
	for k, v := range n.mapping {
		ck, err := CoerceValue(inner.Type(), k)
		if err != nil {
			return nil, fmt.Errorf("replacement key %v: %w", k, err)
		}
		cv, err := CoerceValue(inner.Type(), v)
		if err != nil {
			return nil, fmt.Errorf("replacement value %v: %w", v, err)
		}
		mapping[ck] = cv
	}
	return &BoundExpr{
		name:    inner.name,
		colType: inner.colType,
		columns: inner.columns,
		eval: func(row []any) (any, error) {
			v, err := inner.eval(row)
			if err != nil || v == nil {
				return v, err
			}
			if replacement, ok := mapping[v]; ok {
				return replacement, nil
			}
			return v, nil
		},
	}, nil
}

func (n *castNode) bind(schema Schema) (*BoundExpr, error) {
	inner, err := n.inner.Bind(schema)
	if err != nil {
		return nil, err
	}
	if n.colType == nil || !sameShape(inner.Type(), n.colType) {
		target := "<nil>"
		if n.colType != nil {
			target = n.colType.TypeName()
		}
		return nil, errors.TypeMismatchError{Name: n.inner.String(), Expected: target, Actual: inner.Type().TypeName()}
	}
	return &BoundExpr{
		name:    inner.name,
		colType: n.colType,
		columns: inner.columns,
		eval:    inner.eval,
	}, nil
}

// sameShape compares two ColumnTypes while ignoring struct field names
func sameShape(a ColumnType, b ColumnType) bool {
	switch at := a.(type) {
	case *StructColumnType:
		bt, ok := b.(*StructColumnType)
		if !ok || len(at.Fields) != len(bt.Fields) {
			return false
		}
		for i := range at.Fields {
			if !sameShape(at.Fields[i].Type, bt.Fields[i].Type) {
				return false
			}
		}
		return true
	case *ListColumnType:
		bt, ok := b.(*ListColumnType)
		return ok && sameShape(at.Elem, bt.Elem)
	default:
		return ColumnTypesEqual(a, b)
	}
}
