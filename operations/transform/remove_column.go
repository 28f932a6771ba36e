package transform

import (
	"github.com/go-sif/reshape"
)

// RemoveColumn removes existing columns
func RemoveColumn(oldNames ...string) reshape.FrameOperation {
	return func(f reshape.Frame) (reshape.Frame, error) {
		return f.Drop(oldNames...)
	}
}
