// Package rowops plans and executes row-at-a-time reshaping operations
// shared by reshape's engines. Plans are built once against a Schema and
// then applied to each row, given as values in Schema index order.
package rowops

import (
	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
	"github.com/go-sif/reshape/schema"
)

// Projection evaluates a list of bound expressions against each row
type Projection struct {
	schema reshape.Schema
	exprs  []*reshape.BoundExpr
}

// PlanSelect binds exprs against a Schema, producing a Projection onto exactly those expressions
func PlanSelect(s reshape.Schema, exprs ...reshape.Expr) (*Projection, error) {
	bound, err := reshape.BindAll(s, exprs...)
	if err != nil {
		return nil, err
	}
	return newProjection(bound)
}

// PlanWithColumns binds exprs against a Schema. Expressions named after an
// existing column replace it in place, and the rest are appended in order.
func PlanWithColumns(s reshape.Schema, exprs ...reshape.Expr) (*Projection, error) {
	added, err := reshape.BindAll(s, exprs...)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*reshape.BoundExpr, len(added))
	for _, b := range added {
		byName[b.Name()] = b
	}
	bound := make([]*reshape.BoundExpr, 0, s.NumColumns()+len(added))
	for _, name := range s.ColumnNames() {
		if b, ok := byName[name]; ok {
			bound = append(bound, b)
			delete(byName, name)
			continue
		}
		b, err := reshape.Col(name).Bind(s)
		if err != nil {
			return nil, err
		}
		bound = append(bound, b)
	}
	for _, b := range added {
		if _, ok := byName[b.Name()]; ok {
			bound = append(bound, b)
		}
	}
	return newProjection(bound)
}

func newProjection(bound []*reshape.BoundExpr) (*Projection, error) {
	newSchema := schema.CreateSchema()
	for _, b := range bound {
		if _, err := newSchema.CreateColumn(b.Name(), b.Type()); err != nil {
			return nil, err
		}
	}
	return &Projection{schema: newSchema, exprs: bound}, nil
}

// Schema returns the Schema of rows produced by this Projection
func (p *Projection) Schema() reshape.Schema {
	return p.schema
}

// Sources returns, for each output column, the index of the input column it
// copies unchanged, or -1 if the column must be computed
func (p *Projection) Sources() []int {
	res := make([]int, len(p.exprs))
	for i, b := range p.exprs {
		res[i] = -1
		if b.IsColumnRef() {
			res[i] = b.Columns()[0]
		}
	}
	return res
}

// Apply evaluates this Projection against a single row
func (p *Projection) Apply(values []any) ([]any, error) {
	res := make([]any, len(p.exprs))
	for i, b := range p.exprs {
		v, err := b.Eval(values)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

// PlanDrop produces a Projection onto every column except the named ones
func PlanDrop(s reshape.Schema, colNames ...string) (*Projection, error) {
	dropped := make(map[string]bool, len(colNames))
	for _, name := range colNames {
		if !s.HasColumn(name) {
			return nil, errors.NoSuchColumnError{Name: name}
		}
		dropped[name] = true
	}
	exprs := make([]reshape.Expr, 0, s.NumColumns())
	for _, name := range s.ColumnNames() {
		if !dropped[name] {
			exprs = append(exprs, reshape.Col(name))
		}
	}
	return PlanSelect(s, exprs...)
}

// PlanRename produces a Projection which renames a single column in place
func PlanRename(s reshape.Schema, oldName string, newName string) (*Projection, error) {
	if !s.HasColumn(oldName) {
		return nil, errors.NoSuchColumnError{Name: oldName}
	}
	exprs := make([]reshape.Expr, 0, s.NumColumns())
	for _, name := range s.ColumnNames() {
		if name == oldName {
			exprs = append(exprs, reshape.Col(name).Alias(newName))
		} else {
			exprs = append(exprs, reshape.Col(name))
		}
	}
	return PlanSelect(s, exprs...)
}
