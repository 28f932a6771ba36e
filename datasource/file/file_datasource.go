package file

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-sif/reshape"
	"github.com/go-sif/reshape/datasource"
	engine "github.com/go-sif/reshape/engine/memory"
)

// DataSource is a set of files containing data which will be loaded into a DataFrame
type DataSource struct {
	glob   string
	schema reshape.Schema
}

// CreateDataFrame parses every file matching glob, and loads the results into an in-memory DataFrame
func CreateDataFrame(glob string, parser reshape.DataSourceParser, schema reshape.Schema, conf *engine.Conf) (*engine.DataFrame, error) {
	source := &DataSource{glob, schema}
	return datasource.Load(source, parser, schema, conf)
}

// Analyze returns one PartitionLoader per matching file, in lexical order
func (fs *DataSource) Analyze() ([]reshape.PartitionLoader, error) {
	matches, err := filepath.Glob(fs.glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", fs.glob)
	}
	sort.Strings(matches)
	loaders := make([]reshape.PartitionLoader, len(matches))
	for i, path := range matches {
		loaders[i] = &PartitionLoader{path: path, source: fs}
	}
	return loaders, nil
}
