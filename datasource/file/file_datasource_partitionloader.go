package file

import (
	"fmt"
	"os"

	"github.com/go-sif/reshape"
	"github.com/go-sif/reshape/logging"
)

// PartitionLoader is capable of loading rows from a single file
type PartitionLoader struct {
	path   string
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("File loader filename: %s", pl.path)
}

// Load parses the rows of this PartitionLoader's file
func (pl *PartitionLoader) Load(parser reshape.DataSourceParser, schema reshape.Schema) ([][]any, error) {
	f, err := os.Open(pl.path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Logger().WithField("file", pl.path).Warnf("couldn't close file: %v", err)
		}
	}()
	return parser.Parse(f, schema)
}
