package dsv

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-sif/reshape"
	"github.com/go-sif/reshape/logging"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	PartitionSize int    // The maximum number of rows per Partition. Defaults to 128.
	HeaderLines   int    // The number of lines to ignore from the beginning of each file. Defaults to 0.
	Delimiter     rune   // The delimiter separating columns in the file. Defaults to ,
	Comment       rune   // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue      string // A special string which represents nil values in the dataset. Defaults to "" (the empty string).
}

// Parser produces rows from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser. DSV data is flat, so Schemas may only contain scalar columns.
func CreateParser(conf *ParserConf) *Parser {
	if conf.PartitionSize == 0 {
		conf.PartitionSize = 128
	}
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	return &Parser{conf: conf}
}

// PartitionSize returns the maximum size in rows of Partitions produced from this Parser's rows
func (p *Parser) PartitionSize() int {
	return p.conf.PartitionSize
}

// Parse parses DSV data to produce rows of values, in Schema index order
func (p *Parser) Parse(r io.Reader, schema reshape.Schema) ([][]any, error) {
	// start parsing by creating a reader
	reader := csv.NewReader(r)
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment
	reader.FieldsPerRecord = schema.NumColumns()
	reader.ReuseRecord = true

	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		_, err := reader.Read()
		if err == io.EOF {
			return [][]any{}, nil
		} else if err != nil {
			return nil, err
		}
	}
	colNames := schema.ColumnNames()
	colTypes := schema.ColumnTypes()
	rows := make([][]any, 0)
	for {
		rowStrings, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		} else if err != nil {
			return nil, err
		}
		row, err := scanRow(p.conf, colNames, colTypes, rowStrings)
		if err != nil {
			line, _ := reader.FieldPos(0)
			logging.Logger().WithField("line", line).Warnf("Unable to parse line:\n\t%v", rowStrings)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
}
