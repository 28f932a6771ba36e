package jsonl

import (
	"strings"
	"testing"

	"github.com/go-sif/reshape"
	memory "github.com/go-sif/reshape/datasource/memory"
	engine "github.com/go-sif/reshape/engine/memory"
	"github.com/go-sif/reshape/schema"
	"github.com/stretchr/testify/require"
)

func TestJSONLDatasourceParser(t *testing.T) {
	// Create a dataframe for the data, load it, and test things
	schema := schema.CreateSchema()
	schema.CreateColumn("name", &reshape.VarStringColumnType{})
	schema.CreateColumn("meta.index", &reshape.Int32ColumnType{})
	schema.CreateColumn("meta.first", &reshape.VarStringColumnType{})
	schema.CreateColumn("meta.last", &reshape.VarStringColumnType{})

	parser := CreateParser(&ParserConf{
		PartitionSize: 3,
	})
	data := [][]byte{
		[]byte("{\"name\": \"Sean\", \"meta\": { \"index\": 1, \"first\": \"Sean\", \"last\": \"McIntyre\"}}\n{\"name\": \"Chris\", \"meta\": { \"index\": 3, \"first\": \"Chris\", \"last\": \"Dickson\"}}"),
		[]byte("{\"name\": \"Phil\", \"meta\": { \"index\": 2, \"first\": \"Phil\", \"last\": \"Laliberté\"}}\n{\"name\": \"Fahd\", \"meta\": { \"index\": 4, \"first\": \"Fahd\"}}"),
	}
	dataframe, err := memory.CreateDataFrame(data, parser, schema, nil)
	require.Nil(t, err)
	require.Equal(t, 2, dataframe.NumPartitions())
	totalRows, err := dataframe.NumRows()
	require.Nil(t, err)
	require.Equal(t, 4, totalRows)
	rows, err := dataframe.Collect()
	require.Nil(t, err)
	idx, err := rows[2].GetInt32("meta.index")
	require.Nil(t, err)
	require.Equal(t, int32(2), idx)
	require.True(t, rows[3].IsNil("meta.last"))
}

func TestParseNestedValues(t *testing.T) {
	s, err := schema.CreateSchemaFromColumns(
		[]string{"id", "data", "tags"},
		[]reshape.ColumnType{
			&reshape.Int64ColumnType{},
			reshape.StructOf(reshape.StructField{Name: "nested", Type: reshape.StructOf(
				reshape.StructField{Name: "field1", Type: &reshape.Float64ColumnType{}},
				reshape.StructField{Name: "field2", Type: &reshape.BoolColumnType{}},
			)}),
			reshape.ListOf(reshape.StructOf(reshape.StructField{Name: "k", Type: &reshape.VarStringColumnType{}})),
		},
	)
	require.Nil(t, err)
	parser := CreateParser(&ParserConf{HeaderLines: 1, Comment: '#'})
	input := strings.Join([]string{
		`this header is ignored`,
		`{"id": 1, "data": {"nested": {"field1": 1.5, "field2": true}}, "tags": [{"k": "a"}, {"k": null}]}`,
		`# a comment`,
		``,
		`{"id": 2, "data": null}`,
	}, "\n")
	rows, err := parser.Parse(strings.NewReader(input), s)
	require.Nil(t, err)
	require.Equal(t, [][]any{
		{int64(1), reshape.StructValue{reshape.StructValue{1.5, true}}, []any{reshape.StructValue{"a"}, reshape.StructValue{nil}}},
		{int64(2), nil, nil},
	}, rows)
}

func TestParseErrors(t *testing.T) {
	s, err := schema.CreateSchemaFromColumns([]string{"id"}, []reshape.ColumnType{&reshape.Int64ColumnType{}})
	require.Nil(t, err)
	parser := CreateParser(&ParserConf{})
	_, err = parser.Parse(strings.NewReader(`{"id": "one"}`), s)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "line 1")
	_, err = parser.Parse(strings.NewReader(`{"id": `), s)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "not valid JSON")
}
