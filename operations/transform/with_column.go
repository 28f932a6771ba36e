package transform

import (
	"github.com/go-sif/reshape"
)

// WithColumn computes a column from an expression. A column with the same
// name is replaced in place; otherwise the new column is appended.
func WithColumn(expr reshape.Expr) reshape.FrameOperation {
	return func(f reshape.Frame) (reshape.Frame, error) {
		return f.WithColumns(expr)
	}
}
