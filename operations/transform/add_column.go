package transform

import (
	"github.com/go-sif/reshape"
)

// AddColumn declares that a new, entirely null column with a
// specific type and name should be available to the
// next operation
func AddColumn(colName string, colType reshape.ColumnType) reshape.FrameOperation {
	return WithColumn(reshape.TypedLit(nil, colType).Alias(colName))
}
