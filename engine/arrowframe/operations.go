package arrowframe

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/go-sif/reshape"
	"github.com/go-sif/reshape/internal/rowops"
)

// project evaluates a Projection column by column. Columns which are copied
// unchanged share their arrays with this DataFrame's record.
func (df *DataFrame) project(op string, p *rowops.Projection) (reshape.Frame, error) {
	arrowSchema, err := ToArrowSchema(p.Schema())
	if err != nil {
		return nil, err
	}
	sources := p.Sources()
	var computed [][]any
	for _, src := range sources {
		if src < 0 {
			computed, err = df.evaluate(p)
			if err != nil {
				return nil, err
			}
			break
		}
	}
	df.logger(op).WithField("computed", computed != nil).Debug("projecting record")
	cols := make([]arrow.Array, len(sources))
	var built []arrow.Array
	defer func() {
		for _, c := range built {
			c.Release()
		}
	}()
	for c, src := range sources {
		if src >= 0 {
			cols[c] = df.record.Column(src)
			continue
		}
		arr, err := buildColumn(df.mem, arrowSchema.Field(c).Type, computed, c)
		if err != nil {
			return nil, err
		}
		built = append(built, arr)
		cols[c] = arr
	}
	rec := array.NewRecord(arrowSchema, cols, df.record.NumRows())
	return &DataFrame{mem: df.mem, schema: p.Schema(), record: rec}, nil
}

func (df *DataFrame) evaluate(p *rowops.Projection) ([][]any, error) {
	rows := df.rows()
	res := make([][]any, len(rows))
	for i, values := range rows {
		out, err := p.Apply(values)
		if err != nil {
			return nil, err
		}
		res[i] = out
	}
	return res, nil
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

// Rename renames a single column
func (df *DataFrame) Rename(oldName string, newName string) (reshape.Frame, error) {
	p, err := rowops.PlanRename(df.schema, oldName, newName)
	if err != nil {
		return nil, err
	}
	return df.project("rename", p)
}

// Explode expands the given list columns together, producing one row per zipped element
func (df *DataFrame) Explode(colNames ...string) (reshape.Frame, error) {
	e, err := rowops.PlanExplode(df.schema, colNames...)
	if err != nil {
		return nil, err
	}
	df.logger("explode").WithField("columns", colNames).Debug("exploding record")
	var rows [][]any
	for _, values := range df.rows() {
		exploded, err := e.Apply(values)
		if err != nil {
			return nil, err
		}
		rows = append(rows, exploded...)
	}
	return df.derive(e.Schema(), rows)
}

// FillNull replaces nulls in the named columns
func (df *DataFrame) FillNull(values map[string]any) (reshape.Frame, error) {
	f, err := rowops.PlanFillNull(df.schema, values)
	if err != nil {
		return nil, err
	}
	rows := df.rows()
	for i, row := range rows {
		rows[i], err = f.Apply(row)
		if err != nil {
			return nil, err
		}
	}
	return df.derive(f.Schema(), rows)
}

// Join combines this DataFrame with another Frame on equal key columns. Left
// rows keep their order, each followed by its matches in right-hand order;
// unmatched right rows of an outer join come last.
func (df *DataFrame) Join(other reshape.Frame, on []string, how reshape.JoinType) (reshape.Frame, error) {
	j, err := rowops.PlanJoin(df.schema, other.Schema(), on, how)
	if err != nil {
		return nil, err
	}
	rightRows, err := rowValues(other)
	if err != nil {
		return nil, err
	}
	idx := j.BuildIndex(rightRows)
	df.logger("join").WithField("how", how.String()).WithField("on", on).Debug("probing right-hand index")
	matched := make([]bool, idx.NumRows())
	onMatch := func(rightRow int) { matched[rightRow] = true }
	var rows [][]any
	for _, left := range df.rows() {
		rows = append(rows, j.Probe(idx, left, onMatch)...)
	}
	rows = append(rows, j.Unmatched(idx, matched)...)
	return df.derive(j.Schema(), rows)
}
