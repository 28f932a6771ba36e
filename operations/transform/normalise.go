package transform

import (
	"github.com/go-sif/reshape"
)

// NormaliseFieldNames URL-encodes the name of every column and every nested struct
// field, so that they can be used safely in quoted column references. Struct fields
// inside lists keep their names.
func NormaliseFieldNames() reshape.FrameOperation {
	return func(f reshape.Frame) (reshape.Frame, error) {
		s := f.Schema()
		types := s.ColumnTypes()
		exprs := make([]reshape.Expr, 0, len(types))
		for i, name := range s.ColumnNames() {
			e := reshape.Col(name)
			if _, ok := reshape.IsStruct(types[i]); ok {
				e = e.Cast(normaliseType(types[i]))
			}
			exprs = append(exprs, e.Alias(reshape.URLEncode(name)))
		}
		return f.Select(exprs...)
	}
}

func normaliseType(colType reshape.ColumnType) reshape.ColumnType {
	st, ok := reshape.IsStruct(colType)
	if !ok {
		return colType
	}
	fields := make([]reshape.StructField, len(st.Fields))
	for i, field := range st.Fields {
		fields[i] = reshape.StructField{Name: reshape.URLEncode(field.Name), Type: normaliseType(field.Type)}
	}
	return reshape.StructOf(fields...)
}
