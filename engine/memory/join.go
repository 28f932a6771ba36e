package memory

import (
	"github.com/go-sif/reshape"
	"github.com/go-sif/reshape/internal/partition"
	"github.com/go-sif/reshape/internal/rowops"
	"github.com/go-sif/reshape/internal/util"
	"golang.org/x/sync/errgroup"
)

// Join combines this DataFrame with another Frame on equal key columns. The
// other Frame is indexed in memory, and this DataFrame's Partitions probe the
// index concurrently. Left rows keep their order, each followed by its matches
// in right-hand order; unmatched right rows of an outer join come last.
func (df *DataFrame) Join(other reshape.Frame, on []string, how reshape.JoinType) (reshape.Frame, error) {
	j, err := rowops.PlanJoin(df.schema, other.Schema(), on, how)
	if err != nil {
		return nil, err
	}
	rightRows, err := rowValues(other)
	if err != nil {
		return nil, err
	}
	idx := j.BuildIndex(rightRows)
	df.logger("join").WithField("how", how.String()).WithField("on", on).Debug("probing right-hand index")

	newSchema := j.Schema()
	matched := make([][]bool, len(df.parts))
	results := make([][]*partition.Partition, len(df.parts))
	g := new(errgroup.Group)
	g.SetLimit(df.conf.NumWorkers)
	for i, p := range df.parts {
		matched[i] = make([]bool, idx.NumRows())
		g.Go(func() error {
			onMatch := func(rightRow int) { matched[i][rightRow] = true }
			probe := util.SafeFlatMapOperation(func(values []any) ([][]any, error) {
				return j.Probe(idx, values, onMatch), nil
			})
			res, err := p.FlatMapRows(probe, newSchema)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rows [][]any
	for _, res := range results {
		for _, p := range res {
			for r := 0; r < p.GetNumRows(); r++ {
				rows = append(rows, p.GetRowValues(r))
			}
		}
	}
	allMatched := make([]bool, idx.NumRows())
	for _, m := range matched {
		for r, ok := range m {
			allMatched[r] = allMatched[r] || ok
		}
	}
	rows = append(rows, j.Unmatched(idx, allMatched)...)
	joined, err := fromRows(df.conf, newSchema, rows)
	if err != nil {
		return nil, err
	}
	return joined, nil
}
