package dsv

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-sif/reshape"
)

// Parses a slice of strings into a row of values, according to a schema
func scanRow(conf *ParserConf, names []string, colTypes []reshape.ColumnType, rowStrings []string) ([]any, error) {
	row := make([]any, len(rowStrings))
	for i := 0; i < len(rowStrings); i++ {
		colVal := rowStrings[i]
		// check for a nil value
		if len(colVal) == 0 || colVal == conf.NilValue {
			continue
		}
		// otherwise, parse type
		switch t := colTypes[i].(type) {
		case *reshape.BoolColumnType:
			bval, err := strconv.ParseBool(colVal)
			if err != nil {
				return nil, err
			}
			row[i] = bval
		case *reshape.Int32ColumnType:
			ival, err := strconv.ParseInt(colVal, 10, 32)
			if err != nil {
				return nil, err
			}
			row[i] = int32(ival)
		case *reshape.Int64ColumnType:
			ival, err := strconv.ParseInt(colVal, 10, 64)
			if err != nil {
				return nil, err
			}
			row[i] = ival
		case *reshape.Float32ColumnType:
			fval, err := strconv.ParseFloat(colVal, 32)
			if err != nil {
				return nil, err
			}
			row[i] = float32(fval)
		case *reshape.Float64ColumnType:
			fval, err := strconv.ParseFloat(colVal, 64)
			if err != nil {
				return nil, err
			}
			row[i] = fval
		case *reshape.VarStringColumnType:
			row[i] = colVal
		case *reshape.VarBytesColumnType:
			row[i] = []byte(colVal)
		case *reshape.TimeColumnType:
			tval, err := time.Parse(t.TimeFormat(), colVal)
			if err != nil {
				return nil, fmt.Errorf("Column %s could not be parsed as datetime with format %s: %w", names[i], t.TimeFormat(), err)
			}
			row[i] = tval
		default:
			return nil, fmt.Errorf("DSV parsing does not support column type %s for column %s", colTypes[i].TypeName(), names[i])
		}
	}
	return row, nil
}
