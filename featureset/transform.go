package featureset

import (
	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
	"github.com/go-sif/reshape/logging"
	"github.com/sirupsen/logrus"
)

// Transform selects indexCols and every field resolved from variables, with each
// field renamed to its feature column name. The result has one row per input row.
func Transform(df reshape.Frame, fsetName string, variables reshape.FieldSpec, indexCols []string) (reshape.Frame, error) {
	fields, err := reshape.ResolveFields(variables, reshape.DefaultSeparator)
	if err != nil {
		return nil, err
	}
	return transformFields(df, fsetName, fields, indexCols)
}

// Featureset wraps Transform as a FrameOperation
func Featureset(fsetName string, variables reshape.FieldSpec, indexCols []string) reshape.FrameOperation {
	return func(f reshape.Frame) (reshape.Frame, error) {
		return Transform(f, fsetName, variables, indexCols)
	}
}

func transformFields(df reshape.Frame, fsetName string, fields []reshape.ResolvedField, indexCols []string) (reshape.Frame, error) {
	if len(fields) == 0 {
		return nil, errors.EmptyFeaturesetError{Featureset: fsetName}
	}
	taken := make(map[string]bool, len(indexCols)+len(fields))
	exprs := make([]reshape.Expr, 0, len(indexCols)+len(fields))
	for _, col := range indexCols {
		if taken[col] {
			return nil, errors.ColumnCollisionError{Featureset: fsetName, Name: col}
		}
		taken[col] = true
		exprs = append(exprs, reshape.Col(col))
	}
	for _, field := range fields {
		name := ColumnName(fsetName, field.Alias)
		if taken[name] {
			return nil, errors.ColumnCollisionError{Featureset: fsetName, Name: name}
		}
		taken[name] = true
		exprs = append(exprs, field.Expr.Alias(name))
	}
	logging.Logger().WithFields(logrus.Fields{
		"featureset": fsetName,
		"features":   len(fields),
	}).Debug("assembling featureset")
	return df.Select(exprs...)
}
