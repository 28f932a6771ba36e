package partition

import (
	"log"

	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
	uuid "github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
)

// MapOperation transforms the values of one row into the values of a new row
type MapOperation func(values []any) ([]any, error)

// FlatMapOperation transforms the values of one row into zero or more new rows
type FlatMapOperation func(values []any) ([][]any, error)

// Partition is a bounded batch of rows sharing a Schema. Partitions are
// never modified once they have been handed to a DataFrame.
type Partition struct {
	id      string
	maxRows int
	rows    [][]any
	schema  reshape.Schema
}

// CreatePartition creates a new, empty Partition
func CreatePartition(maxRows int, schema reshape.Schema) *Partition {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for Partition: %v", err)
	}
	initialCapacity := maxRows
	if initialCapacity > 16 {
		initialCapacity = 16
	}
	return &Partition{
		id:      id.String(),
		maxRows: maxRows,
		rows:    make([][]any, 0, initialCapacity),
		schema:  schema,
	}
}

// Split distributes rows across as many Partitions as are necessary to hold them
func Split(maxRows int, schema reshape.Schema, rows [][]any) ([]*Partition, error) {
	parts := make([]*Partition, 0, len(rows)/maxRows+1)
	current := CreatePartition(maxRows, schema)
	for _, row := range rows {
		if current.CanInsertRow() != nil {
			parts = append(parts, current)
			current = CreatePartition(maxRows, schema)
		}
		if err := current.AppendRowValues(row); err != nil {
			return nil, err
		}
	}
	if current.GetNumRows() > 0 || len(parts) == 0 {
		parts = append(parts, current)
	}
	return parts, nil
}

// ID retrieves the ID of this Partition
func (p *Partition) ID() string {
	return p.id
}

// GetMaxRows retrieves the maximum number of rows in this Partition
func (p *Partition) GetMaxRows() int {
	return p.maxRows
}

// GetNumRows retrieves the number of rows in this Partition
func (p *Partition) GetNumRows() int {
	return len(p.rows)
}

// GetSchema retrieves the Schema of this Partition
func (p *Partition) GetSchema() reshape.Schema {
	return p.schema
}

// GetRowValues retrieves the raw values of a specific row in this Partition
func (p *Partition) GetRowValues(rowNum int) []any {
	return p.rows[rowNum]
}

// GetRow retrieves a specific row from this Partition
func (p *Partition) GetRow(rowNum int) reshape.Row {
	return CreateRow(p.id, p.rows[rowNum], p.schema)
}

// CanInsertRow returns a PartitionFullError if this Partition cannot accept another row
func (p *Partition) CanInsertRow() error {
	if len(p.rows) >= p.maxRows {
		return errors.PartitionFullError{}
	}
	return nil
}

// AppendRowValues appends a row to the end of this Partition
func (p *Partition) AppendRowValues(values []any) error {
	if err := p.CanInsertRow(); err != nil {
		return err
	}
	if len(values) != p.schema.NumColumns() {
		return errors.IncompatibleRowError{Expected: p.schema.NumColumns(), Actual: len(values)}
	}
	p.rows = append(p.rows, values)
	return nil
}

// MapRows runs a MapOperation on each row in this Partition, producing a new
// Partition with the given Schema. Errors from individual rows are aggregated.
func (p *Partition) MapRows(fn MapOperation, newSchema reshape.Schema) (*Partition, error) {
	result := CreatePartition(p.maxRows, newSchema)
	var multierr *multierror.Error
	for _, row := range p.rows {
		newRow, err := fn(row)
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		if err := result.AppendRowValues(newRow); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return result, nil
}

// FlatMapRows runs a FlatMapOperation on each row in this Partition, creating
// as many new Partitions as are needed to hold the results
func (p *Partition) FlatMapRows(fn FlatMapOperation, newSchema reshape.Schema) ([]*Partition, error) {
	var multierr *multierror.Error
	parts := []*Partition{CreatePartition(p.maxRows, newSchema)}
	for _, row := range p.rows {
		newRows, err := fn(row)
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		for _, newRow := range newRows {
			appendTarget := parts[len(parts)-1]
			if appendTarget.CanInsertRow() != nil {
				appendTarget = CreatePartition(p.maxRows, newSchema)
				parts = append(parts, appendTarget)
			}
			if err := appendTarget.AppendRowValues(newRow); err != nil {
				multierr = multierror.Append(multierr, err)
			}
		}
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return parts, nil
}
