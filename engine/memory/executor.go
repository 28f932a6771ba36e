package memory

import (
	"time"

	"github.com/go-sif/reshape"
	"github.com/go-sif/reshape/internal/partition"
	"github.com/go-sif/reshape/internal/stats"
	"github.com/go-sif/reshape/internal/util"
	"golang.org/x/sync/errgroup"
)

// mapPartitions applies fn to every row, evaluating up to NumWorkers
// Partitions at a time. Partition order is preserved.
func (df *DataFrame) mapPartitions(op string, fn partition.MapOperation, newSchema reshape.Schema) ([]*partition.Partition, error) {
	safeFn := util.SafeMapOperation(fn)
	rs := stats.Start()
	results := make([]*partition.Partition, len(df.parts))
	g := new(errgroup.Group)
	g.SetLimit(df.conf.NumWorkers)
	for i, p := range df.parts {
		g.Go(func() error {
			start := time.Now()
			res, err := p.MapRows(safeFn, newSchema)
			if err != nil {
				return err
			}
			rs.EndPartition(start, p.GetNumRows(), res.GetNumRows())
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	rs.Finish()
	df.logger(op).WithFields(rs.Fields()).Debug("evaluated partitions")
	return results, nil
}

// flatMapPartitions applies fn to every row, evaluating up to NumWorkers
// Partitions at a time. Partition order is preserved, and empty Partitions
// are discarded.
func (df *DataFrame) flatMapPartitions(op string, fn partition.FlatMapOperation, newSchema reshape.Schema) ([]*partition.Partition, error) {
	safeFn := util.SafeFlatMapOperation(fn)
	rs := stats.Start()
	results := make([][]*partition.Partition, len(df.parts))
	g := new(errgroup.Group)
	g.SetLimit(df.conf.NumWorkers)
	for i, p := range df.parts {
		g.Go(func() error {
			start := time.Now()
			res, err := p.FlatMapRows(safeFn, newSchema)
			if err != nil {
				return err
			}
			numRows := 0
			for _, part := range res {
				numRows += part.GetNumRows()
			}
			rs.EndPartition(start, p.GetNumRows(), numRows)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	rs.Finish()
	df.logger(op).WithFields(rs.Fields()).Debug("evaluated partitions")
	parts := make([]*partition.Partition, 0, len(df.parts))
	for _, res := range results {
		for _, p := range res {
			if p.GetNumRows() > 0 {
				parts = append(parts, p)
			}
		}
	}
	if len(parts) == 0 {
		parts = append(parts, partition.CreatePartition(df.conf.PartitionSize, newSchema))
	}
	return parts, nil
}
