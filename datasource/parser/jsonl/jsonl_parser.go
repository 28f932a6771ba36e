package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-sif/reshape"
	"github.com/go-sif/reshape/logging"
	"github.com/tidwall/gjson"
)

// ParserConf configures a JSONL Parser, suitable for JSON lines data
type ParserConf struct {
	PartitionSize int  // The maximum number of rows per Partition. Defaults to 128.
	HeaderLines   int  // The number of lines to ignore from the beginning of each file. Defaults to 0.
	Comment       rune // Lines beginning with the comment character are ignored. Defaults to no comment character.
	MaxBufferSize int  // Maximum size in bytes of the buffer used to read lines from the file
}

// Parser produces rows from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser. Columns are parsed from each row of JSON using their column name, which should be a gjson path. Values within the JSON which do not correspond to a Schema column are ignored.
func CreateParser(conf *ParserConf) *Parser {
	if conf.PartitionSize == 0 {
		conf.PartitionSize = 128
	}
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	return &Parser{conf: conf}
}

// PartitionSize returns the maximum size in rows of Partitions produced from this Parser's rows
func (p *Parser) PartitionSize() int {
	return p.conf.PartitionSize
}

// Parse parses JSONL data to produce rows of values, in Schema index order
func (p *Parser) Parse(r io.Reader, schema reshape.Schema) ([][]any, error) {
	// start parsing by creating a scanner
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), p.conf.MaxBufferSize)
	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		scanner.Scan()
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	colNames := schema.ColumnNames()
	colTypes := schema.ColumnTypes()
	rows := make([][]any, 0)
	lineNum := p.conf.HeaderLines
	for scanner.Scan() {
		lineNum++
		rowString := scanner.Text()
		trimmed := strings.TrimSpace(rowString)
		if len(trimmed) == 0 || (p.conf.Comment != 0 && strings.HasPrefix(trimmed, string(p.conf.Comment))) {
			continue
		}
		if !gjson.Valid(trimmed) {
			return nil, fmt.Errorf("line %d is not valid JSON", lineNum)
		}
		row, err := ParseJSONRow(colNames, colTypes, gjson.Parse(trimmed))
		if err != nil {
			logging.Logger().WithField("line", lineNum).Warnf("Unable to parse line:\n\t%s", rowString)
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
