package reshape

import (
	"fmt"
	"strings"
)

// Expr is an engine-neutral column expression. Exprs are built with Col, Lit,
// Struct and Array, refined with Field, Alias and Replace, and bound against a
// Schema by an engine before evaluation.
type Expr struct {
	node exprNode
}

type exprNode interface {
	name() string
	String() string
	bind(schema Schema) (*BoundExpr, error)
}

// Col references a top-level column by name
func Col(colName string) Expr {
	return Expr{node: &colNode{colName: colName}}
}

// Lit produces a constant expression, inferring its ColumnType from the Go value
func Lit(value any) Expr {
	colType, err := InferColumnType(value)
	return Expr{node: &litNode{value: value, colType: colType, err: err}}
}

// TypedLit produces a constant expression of an explicit ColumnType. The value is
// coerced to that type when the expression is bound.
func TypedLit(value any, colType ColumnType) Expr {
	return Expr{node: &litNode{value: value, colType: colType}}
}

// Struct wraps expressions into a single struct value, with one field per
// expression named by its Name()
func Struct(fields ...Expr) Expr {
	return Expr{node: &structNode{fields: fields}}
}

// Array wraps expressions of identical type into a single list value
func Array(elems ...Expr) Expr {
	return Expr{node: &arrayNode{elems: elems}}
}

// Field addresses a sub-field of a struct-typed expression
func (e Expr) Field(fieldName string) Expr {
	return Expr{node: &fieldNode{base: e, fieldName: fieldName}}
}

// Alias renames the output of an expression
func (e Expr) Alias(alias string) Expr {
	if a, ok := e.node.(*aliasNode); ok {
		return Expr{node: &aliasNode{inner: a.inner, alias: alias}}
	}
	return Expr{node: &aliasNode{inner: e, alias: alias}}
}

// Replace maps each value of this expression through mapping. Values which are
// not keys of mapping pass through unchanged. Keys and replacements are coerced
// to the expression's type when bound.
func (e Expr) Replace(mapping map[any]any) Expr {
	return Expr{node: &replaceNode{inner: e, mapping: mapping}}
}

// Cast reinterprets this expression as a structurally identical ColumnType, such as
// one whose struct fields have been renamed. Values are passed through unchanged.
func (e Expr) Cast(colType ColumnType) Expr {
	return Expr{node: &castNode{inner: e, colType: colType}}
}

// RenameValues maps the values of a column through mapping, leaving unmapped values
// unchanged. The result keeps the column's name.
func RenameValues(colName string, mapping map[any]any) Expr {
	return Col(colName).Replace(mapping)
}

// Name returns the name of the column this expression produces
func (e Expr) Name() string {
	if e.node == nil {
		return ""
	}
	return e.node.name()
}

// String returns a readable representation of this expression
func (e Expr) String() string {
	if e.node == nil {
		return "<nil>"
	}
	return e.node.String()
}

// Bind resolves this expression against a Schema, checking column references and
// computing the result type
func (e Expr) Bind(schema Schema) (*BoundExpr, error) {
	if e.node == nil {
		return nil, fmt.Errorf("cannot bind an empty expression")
	}
	return e.node.bind(schema)
}

type colNode struct {
	colName string
}

func (n *colNode) name() string   { return n.colName }
func (n *colNode) String() string { return n.colName }

type fieldNode struct {
	base      Expr
	fieldName string
}

func (n *fieldNode) name() string { return n.fieldName }
func (n *fieldNode) String() string {
	return fmt.Sprintf("%s[%s]", n.base.String(), n.fieldName)
}

type litNode struct {
	value   any
	colType ColumnType
	err     error
}

func (n *litNode) name() string   { return n.String() }
func (n *litNode) String() string { return fmt.Sprintf("%v", n.value) }

type structNode struct {
	fields []Expr
}

func (n *structNode) name() string { return "struct" }
func (n *structNode) String() string {
	return fmt.Sprintf("struct(%s)", joinExprs(n.fields))
}

type arrayNode struct {
	elems []Expr
}

func (n *arrayNode) name() string { return "array" }
func (n *arrayNode) String() string {
	return fmt.Sprintf("array(%s)", joinExprs(n.elems))
}

type aliasNode struct {
	inner Expr
	alias string
}

func (n *aliasNode) name() string { return n.alias }
func (n *aliasNode) String() string {
	return fmt.Sprintf("%s AS %s", n.inner.String(), n.alias)
}

type replaceNode struct {
	inner   Expr
	mapping map[any]any
}

func (n *replaceNode) name() string { return n.inner.Name() }
func (n *replaceNode) String() string {
	return fmt.Sprintf("replace(%s, %d values)", n.inner.String(), len(n.mapping))
}

type castNode struct {
	inner   Expr
	colType ColumnType
}

func (n *castNode) name() string { return n.inner.Name() }
func (n *castNode) String() string {
	return fmt.Sprintf("cast(%s AS %s)", n.inner.String(), n.colType.TypeName())
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
