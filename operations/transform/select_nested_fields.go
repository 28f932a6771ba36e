package transform

import (
	"github.com/go-sif/reshape"
)

// SelectNestedFields selects every field resolved from spec, named by its
// dotted path
func SelectNestedFields(spec reshape.FieldSpec) reshape.FrameOperation {
	return func(f reshape.Frame) (reshape.Frame, error) {
		fields, err := reshape.ResolveFields(spec, reshape.DefaultSeparator)
		if err != nil {
			return nil, err
		}
		exprs := make([]reshape.Expr, len(fields))
		for i, field := range fields {
			exprs[i] = field.Expr.Alias(field.Alias)
		}
		return f.Select(exprs...)
	}
}
