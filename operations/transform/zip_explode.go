package transform

import (
	"fmt"

	"github.com/go-sif/reshape"
	"github.com/go-sif/reshape/logging"
)

// ZipExplode explodes several list columns together, as though they were
// zipped, and gathers the exploded values into a single struct column named
// resultName. Struct fields are named after their source columns unless
// renameFields maps them to another name. The source columns are removed.
//
// Every row must hold lists of equal length in all cols; rows whose lists are
// all null or empty produce no output.
func ZipExplode(cols []string, resultName string, renameFields map[string]string) reshape.FrameOperation {
	return func(f reshape.Frame) (reshape.Frame, error) {
		if len(cols) == 0 {
			return nil, fmt.Errorf("ZipExplode requires at least one column")
		}
		fields := make([]reshape.Expr, len(cols))
		var toDrop []string
		for i, c := range cols {
			fieldName := c
			if renamed, ok := renameFields[c]; ok {
				fieldName = renamed
			}
			fields[i] = reshape.Col(c).Alias(fieldName)
			if c != resultName {
				toDrop = append(toDrop, c)
			}
		}
		logging.Logger().WithField("operation", "zip_explode").Debugf("zipping %v into %s", cols, resultName)
		return reshape.To(f,
			func(f reshape.Frame) (reshape.Frame, error) { return f.Explode(cols...) },
			WithColumn(reshape.Struct(fields...).Alias(resultName)),
			RemoveColumn(toDrop...),
		)
	}
}
