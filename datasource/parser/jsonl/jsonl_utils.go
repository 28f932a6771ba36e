package jsonl

import (
	"fmt"
	"time"

	"github.com/go-sif/reshape"
	"github.com/tidwall/gjson"
)

// ParseJSONRow extracts one value per column from a parsed JSON document.
// Missing and null values become nil.
func ParseJSONRow(colNames []string, colTypes []reshape.ColumnType, json gjson.Result) ([]any, error) {
	row := make([]any, len(colNames))
	for idx, colName := range colNames {
		v, err := parseValue(colName, colTypes[idx], json.Get(colName))
		if err != nil {
			return nil, err
		}
		row[idx] = v
	}
	return row, nil
}

func parseValue(colName string, colType reshape.ColumnType, val gjson.Result) (any, error) {
	if !val.Exists() || val.Type == gjson.Null {
		return nil, nil
	}
	switch t := colType.(type) {
	case *reshape.BoolColumnType:
		if !val.IsBool() {
			return nil, fmt.Errorf("Column %s was not a boolean. Was: %s", colName, val.Raw)
		}
		return val.Bool(), nil
	case *reshape.Int32ColumnType:
		if val.Type != gjson.Number {
			return nil, fmt.Errorf("Column %s was not a number. Was: %s", colName, val.Raw)
		}
		return int32(val.Int()), nil
	case *reshape.Int64ColumnType:
		if val.Type != gjson.Number {
			return nil, fmt.Errorf("Column %s was not a number. Was: %s", colName, val.Raw)
		}
		return val.Int(), nil
	case *reshape.Float32ColumnType:
		if val.Type != gjson.Number {
			return nil, fmt.Errorf("Column %s was not a number. Was: %s", colName, val.Raw)
		}
		return float32(val.Float()), nil
	case *reshape.Float64ColumnType:
		if val.Type != gjson.Number {
			return nil, fmt.Errorf("Column %s was not a number. Was: %s", colName, val.Raw)
		}
		return val.Float(), nil
	case *reshape.VarStringColumnType:
		if val.Type != gjson.String {
			return nil, fmt.Errorf("Column %s was not a string. Was: %s", colName, val.Raw)
		}
		return val.Str, nil
	case *reshape.VarBytesColumnType:
		if val.Type != gjson.String {
			return nil, fmt.Errorf("Column %s was not a string. Was: %s", colName, val.Raw)
		}
		return []byte(val.Str), nil
	case *reshape.TimeColumnType:
		if val.Type != gjson.String {
			return nil, fmt.Errorf("Column %s was not a string. Was: %s", colName, val.Raw)
		}
		tval, err := time.Parse(t.TimeFormat(), val.Str)
		if err != nil {
			return nil, fmt.Errorf("Column %s could not be parsed as datetime with format %s. Was: %s", colName, t.TimeFormat(), val.Raw)
		}
		return tval, nil
	case *reshape.StructColumnType:
		if !val.IsObject() {
			return nil, fmt.Errorf("Column %s was not an object. Was: %s", colName, val.Raw)
		}
		fields := val.Map()
		res := make(reshape.StructValue, len(t.Fields))
		for i, f := range t.Fields {
			fv, err := parseValue(colName+"."+f.Name, f.Type, fields[f.Name])
			if err != nil {
				return nil, err
			}
			res[i] = fv
		}
		return res, nil
	case *reshape.ListColumnType:
		if !val.IsArray() {
			return nil, fmt.Errorf("Column %s was not an array. Was: %s", colName, val.Raw)
		}
		elems := val.Array()
		res := make([]any, len(elems))
		for i, e := range elems {
			ev, err := parseValue(fmt.Sprintf("%s[%d]", colName, i), t.Elem, e)
			if err != nil {
				return nil, err
			}
			res[i] = ev
		}
		return res, nil
	default:
		return nil, fmt.Errorf("JSONL parsing does not support column type %T", colType)
	}
}
