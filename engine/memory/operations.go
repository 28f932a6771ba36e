package memory

import (
	"github.com/go-sif/reshape"
	"github.com/go-sif/reshape/internal/rowops"
)

func (df *DataFrame) project(op string, p *rowops.Projection) (reshape.Frame, error) {
	df.logger(op).WithField("columns", p.Schema().ColumnNames()).Debug("projecting partitions")
	parts, err := df.mapPartitions(op, p.Apply, p.Schema())
	if err != nil {
		return nil, err
	}
	return df.derive(p.Schema(), parts), nil
}

// Select projects this DataFrame onto the given expressions
func (df *DataFrame) Select(exprs ...reshape.Expr) (reshape.Frame, error) {
	p, err := rowops.PlanSelect(df.schema, exprs...)
	if err != nil {
		return nil, err
	}
	return df.project("select", p)
}

// WithColumns replaces same-named columns in place, and appends the rest
func (df *DataFrame) WithColumns(exprs ...reshape.Expr) (reshape.Frame, error) {
	p, err := rowops.PlanWithColumns(df.schema, exprs...)
	if err != nil {
		return nil, err
	}
	return df.project("with_columns", p)
}

// Drop removes columns from this DataFrame
func (df *DataFrame) Drop(colNames ...string) (reshape.Frame, error) {
	p, err := rowops.PlanDrop(df.schema, colNames...)
	if err != nil {
		return nil, err
	}
	return df.project("drop", p)
}

// Rename renames a single column. Rows are shared with the original DataFrame.
func (df *DataFrame) Rename(oldName string, newName string) (reshape.Frame, error) {
	p, err := rowops.PlanRename(df.schema, oldName, newName)
	if err != nil {
		return nil, err
	}
	df.logger("rename").WithField("column", oldName).Debug("renaming column")
	return df.derive(p.Schema(), df.parts), nil
}

// Explode expands the given list columns together, producing one row per zipped element
func (df *DataFrame) Explode(colNames ...string) (reshape.Frame, error) {
	e, err := rowops.PlanExplode(df.schema, colNames...)
	if err != nil {
		return nil, err
	}
	df.logger("explode").WithField("columns", colNames).Debug("exploding partitions")
	parts, err := df.flatMapPartitions("explode", e.Apply, e.Schema())
	if err != nil {
		return nil, err
	}
	return df.derive(e.Schema(), parts), nil
}

// FillNull replaces nulls in the named columns
func (df *DataFrame) FillNull(values map[string]any) (reshape.Frame, error) {
	f, err := rowops.PlanFillNull(df.schema, values)
	if err != nil {
		return nil, err
	}
	parts, err := df.mapPartitions("fill_null", f.Apply, f.Schema())
	if err != nil {
		return nil, err
	}
	return df.derive(f.Schema(), parts), nil
}
