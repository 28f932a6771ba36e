package transform

import (
	"github.com/go-sif/reshape"
)

// RenameValues replaces the values of a column through mapping. Values which are
// not keys of mapping are kept.
func RenameValues(colName string, mapping map[any]any) reshape.FrameOperation {
	return WithColumn(reshape.RenameValues(colName, mapping))
}
