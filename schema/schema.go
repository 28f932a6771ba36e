package schema

import (
	"fmt"

	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
)

// column describes the index and type of a field in a Row.
type column struct {
	idx     int
	colType reshape.ColumnType
}

// Clone returns a copy of this Column
func (c *column) Clone() reshape.Column {
	return &column{c.idx, c.colType}
}

// Index returns the index of this Column within a Schema
func (c *column) Index() int {
	return c.idx
}

// SetIndex modifies the index of this Column within a Schema
func (c *column) SetIndex(newIndex int) {
	c.idx = newIndex
}

// Type returns the ColumnType of this Column
func (c *column) Type() reshape.ColumnType {
	return c.colType
}

// schema is an ordered mapping from column names to Columns.
// Schemas are mutated in place, so operations Clone() them first.
type schema struct {
	names   []string
	columns map[string]reshape.Column
}

// CreateSchema is a factory for Schemas
func CreateSchema() reshape.Schema {
	return &schema{
		names:   make([]string, 0),
		columns: make(map[string]reshape.Column),
	}
}

// CreateSchemaFromColumns builds a Schema from parallel lists of names and types
func CreateSchemaFromColumns(names []string, types []reshape.ColumnType) (reshape.Schema, error) {
	if len(names) != len(types) {
		return nil, fmt.Errorf("cannot create a Schema from %d names and %d types", len(names), len(types))
	}
	s := CreateSchema()
	for i, name := range names {
		if _, err := s.CreateColumn(name, types[i]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Equals returns nil iff this and another Schema are equivalent: same names, in the same order, with equal types
func (s *schema) Equals(otherSchema reshape.Schema) error {
	if s.NumColumns() != otherSchema.NumColumns() {
		return fmt.Errorf("Schemas have unequal numbers of columns")
	}
	return s.ForEachColumn(func(name string, col reshape.Column) error {
		otherCol, err := otherSchema.GetColumn(name)
		if err != nil {
			return err
		}
		if col.Index() != otherCol.Index() {
			return fmt.Errorf("Column %s indices do not match", name)
		}
		if !reshape.ColumnTypesEqual(col.Type(), otherCol.Type()) {
			return fmt.Errorf("Column %s types do not match: %s vs. %s", name, col.Type().TypeName(), otherCol.Type().TypeName())
		}
		return nil
	})
}

// Clone returns a copy of this Schema
func (s *schema) Clone() reshape.Schema {
	newColumns := make(map[string]reshape.Column, len(s.columns))
	for k, v := range s.columns {
		newColumns[k] = v.Clone()
	}
	newNames := make([]string, len(s.names))
	copy(newNames, s.names)
	return &schema{names: newNames, columns: newColumns}
}

// NumColumns returns the number of columns in this Schema
func (s *schema) NumColumns() int {
	return len(s.names)
}

// GetColumn returns the Column with the given name
func (s *schema) GetColumn(colName string) (col reshape.Column, err error) {
	col, ok := s.columns[colName]
	if !ok {
		err = errors.NoSuchColumnError{Name: colName}
	}
	return
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, ok := s.columns[colName]
	return ok
}

// CreateColumn defines a new column at the end of the Schema
func (s *schema) CreateColumn(colName string, columnType reshape.ColumnType) (newSchema reshape.Schema, err error) {
	if _, exists := s.columns[colName]; exists {
		return nil, errors.ColumnCollisionError{Name: colName}
	}
	if columnType == nil {
		return nil, fmt.Errorf("Column %s must have a type", colName)
	}
	s.columns[colName] = &column{len(s.names), columnType}
	s.names = append(s.names, colName)
	return s, nil
}

// RenameColumn renames a column within the Schema, keeping its position
func (s *schema) RenameColumn(oldName string, newName string) (newSchema reshape.Schema, err error) {
	col, err := s.GetColumn(oldName)
	if err != nil {
		return nil, err
	}
	if oldName == newName {
		return s, nil
	}
	if s.HasColumn(newName) {
		return nil, errors.ColumnCollisionError{Name: newName}
	}
	s.columns[newName] = col
	delete(s.columns, oldName)
	s.names[col.Index()] = newName
	return s, nil
}

// RemoveColumn removes a column from the Schema, shifting later columns down
func (s *schema) RemoveColumn(colName string) (reshape.Schema, error) {
	col, err := s.GetColumn(colName)
	if err != nil {
		return nil, err
	}
	idx := col.Index()
	delete(s.columns, colName)
	s.names = append(s.names[:idx], s.names[idx+1:]...)
	for i := idx; i < len(s.names); i++ {
		s.columns[s.names[i]].SetIndex(i)
	}
	return s, nil
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// ColumnTypes returns the types in the schema, in index order
func (s *schema) ColumnTypes() []reshape.ColumnType {
	types := make([]reshape.ColumnType, len(s.names))
	for i, name := range s.names {
		types[i] = s.columns[name].Type()
	}
	return types
}

// ForEachColumn iterates over the columns in this Schema, in order of column index.
func (s *schema) ForEachColumn(fn func(name string, col reshape.Column) error) error {
	for _, name := range s.names {
		err := fn(name, s.columns[name])
		if err != nil {
			return err
		}
	}
	return nil
}
