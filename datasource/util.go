package datasource

import (
	"github.com/go-sif/reshape"
	engine "github.com/go-sif/reshape/engine/memory"
	"github.com/go-sif/reshape/logging"
	"golang.org/x/sync/errgroup"
)

// Load reads every PartitionLoader of a DataSource concurrently, and
// assembles the rows into an in-memory DataFrame in loader order. The
// Partition size defaults to the parser's.
func Load(source reshape.DataSource, parser reshape.DataSourceParser, schema reshape.Schema, conf *engine.Conf) (*engine.DataFrame, error) {
	loaders, err := source.Analyze()
	if err != nil {
		return nil, err
	}
	res := engine.Conf{}
	if conf != nil {
		res = *conf
	}
	if res.PartitionSize == 0 {
		res.PartitionSize = parser.PartitionSize()
	}
	loaded := make([][][]any, len(loaders))
	g := new(errgroup.Group)
	if res.NumWorkers > 0 {
		g.SetLimit(res.NumWorkers)
	}
	for i, pl := range loaders {
		g.Go(func() error {
			logging.Logger().WithField("loader", pl.ToString()).Debug("loading data")
			rows, err := pl.Load(parser, schema)
			if err != nil {
				return err
			}
			loaded[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var rows [][]any
	for _, l := range loaded {
		rows = append(rows, l...)
	}
	return engine.CreateDataFrame(schema, rows, &res)
}
