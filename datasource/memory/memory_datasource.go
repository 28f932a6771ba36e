package memory

import (
	"github.com/go-sif/reshape"
	"github.com/go-sif/reshape/datasource"
	engine "github.com/go-sif/reshape/engine/memory"
)

// DataSource is a buffer containing data which will be loaded into a DataFrame
type DataSource struct {
	data   [][]byte
	schema reshape.Schema
}

// CreateDataFrame parses each buffer of data, and loads the results into an in-memory DataFrame
func CreateDataFrame(data [][]byte, parser reshape.DataSourceParser, schema reshape.Schema, conf *engine.Conf) (*engine.DataFrame, error) {
	source := &DataSource{data, schema}
	return datasource.Load(source, parser, schema, conf)
}

// Analyze returns one PartitionLoader per buffer of data
func (fs *DataSource) Analyze() ([]reshape.PartitionLoader, error) {
	loaders := make([]reshape.PartitionLoader, len(fs.data))
	for i := range fs.data {
		loaders[i] = &PartitionLoader{idx: i, source: fs}
	}
	return loaders, nil
}
