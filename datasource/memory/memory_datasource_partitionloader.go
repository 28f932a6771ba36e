package memory

import (
	"bytes"
	"fmt"

	"github.com/go-sif/reshape"
)

// PartitionLoader is capable of loading rows from a single buffer of data
type PartitionLoader struct {
	idx    int
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("Memory loader index: %d", pl.idx)
}

// Load parses the rows of this PartitionLoader's buffer
func (pl *PartitionLoader) Load(parser reshape.DataSourceParser, schema reshape.Schema) ([][]any, error) {
	r := bytes.NewReader(pl.source.data[pl.idx])
	return parser.Parse(r, schema)
}
