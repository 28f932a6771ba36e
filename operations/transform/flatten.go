package transform

import (
	"github.com/go-sif/reshape"
)

// FlattenSeparator joins the path segments of flattened struct fields
const FlattenSeparator = "_"

// Flatten promotes the fields of every struct column, recursively, to top-level
// columns named by joining their path with FlattenSeparator. Lists are left
// untouched, so flattening an already-flat Frame selects it unchanged.
func Flatten() reshape.FrameOperation {
	return func(f reshape.Frame) (reshape.Frame, error) {
		var exprs []reshape.Expr
		s := f.Schema()
		for i, name := range s.ColumnNames() {
			exprs = flattenColumn(exprs, reshape.Col(name), name, s.ColumnTypes()[i])
		}
		return f.Select(exprs...)
	}
}

func flattenColumn(exprs []reshape.Expr, base reshape.Expr, path string, colType reshape.ColumnType) []reshape.Expr {
	st, ok := reshape.IsStruct(colType)
	if !ok {
		return append(exprs, base.Alias(path))
	}
	for _, field := range st.Fields {
		exprs = flattenColumn(exprs, base.Field(field.Name), path+FlattenSeparator+field.Name, field.Type)
	}
	return exprs
}
