package reshape

import "io"

// DataSourceParser turns raw data into rows of values, in Schema index order
type DataSourceParser interface {
	PartitionSize() int                                // PartitionSize returns the preferred maximum number of rows per Partition
	Parse(r io.Reader, schema Schema) ([][]any, error) // Parse reads every row from r
}

// PartitionLoader is a description of how to load one division of data from a
// particular DataSource. DataSources implement this interface to implement
// data-loading logic.
type PartitionLoader interface {
	ToString() string                                             // for logging
	Load(parser DataSourceParser, schema Schema) ([][]any, error) // how to actually load data
}

// DataSource is a source of data which will be loaded into a Frame. It
// describes how its data divides into independently loadable pieces.
type DataSource interface {
	Analyze() ([]PartitionLoader, error)
}
