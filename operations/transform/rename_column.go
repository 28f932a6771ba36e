package transform

import (
	"github.com/go-sif/reshape"
)

// RenameColumn renames an existing column, keeping its position
func RenameColumn(oldName string, newName string) reshape.FrameOperation {
	return func(f reshape.Frame) (reshape.Frame, error) {
		return f.Rename(oldName, newName)
	}
}
