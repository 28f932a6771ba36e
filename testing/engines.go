// Package testing runs reshaping code against every Frame engine, so that tests
// can check that the engines agree
package testing

import (
	gotesting "testing"

	arrowmem "github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/go-sif/reshape"
	"github.com/go-sif/reshape/engine/arrowframe"
	"github.com/go-sif/reshape/engine/memory"
	"github.com/stretchr/testify/require"
)

// Env is the per-engine environment handed to a test by RunOnEngines. Frames
// created or tracked through an Env are released when the test ends.
type Env struct {
	Engine string
	t      *gotesting.T
	create func(schema reshape.Schema, rows [][]any) (reshape.Frame, error)
	frames []reshape.Frame
}

// Create builds a Frame of this Env's engine, failing the test on error
func (e *Env) Create(schema reshape.Schema, rows [][]any) reshape.Frame {
	e.t.Helper()
	return e.Track(e.create(schema, rows))
}

// Track requires that an operation succeeded, and releases its result when the test ends
func (e *Env) Track(f reshape.Frame, err error) reshape.Frame {
	e.t.Helper()
	require.Nil(e.t, err)
	e.frames = append(e.frames, f)
	return f
}

// Values collects the raw row values of a Frame, failing the test on error
func (e *Env) Values(f reshape.Frame) [][]any {
	e.t.Helper()
	rows, err := f.Collect()
	require.Nil(e.t, err)
	res := make([][]any, len(rows))
	for i, r := range rows {
		res[i] = r.Values()
	}
	return res
}

func (e *Env) release() {
	for _, f := range e.frames {
		reshape.Release(f)
	}
	e.frames = nil
}

// RunOnEngines runs fn as a subtest against each engine. The memory engine uses
// tiny partitions, and the arrow engine checks that every buffer is released.
func RunOnEngines(t *gotesting.T, fn func(t *gotesting.T, env *Env)) {
	t.Run("memory", func(t *gotesting.T) {
		conf := &memory.Conf{PartitionSize: 2, NumWorkers: 2}
		env := &Env{Engine: "memory", t: t, create: func(schema reshape.Schema, rows [][]any) (reshape.Frame, error) {
			return memory.CreateDataFrame(schema, rows, conf)
		}}
		t.Cleanup(env.release)
		fn(t, env)
	})
	t.Run("arrow", func(t *gotesting.T) {
		mem := arrowmem.NewCheckedAllocator(arrowmem.NewGoAllocator())
		t.Cleanup(func() { mem.AssertSize(t, 0) })
		env := &Env{Engine: "arrow", t: t, create: func(schema reshape.Schema, rows [][]any) (reshape.Frame, error) {
			return arrowframe.CreateDataFrame(schema, rows, mem)
		}}
		t.Cleanup(env.release)
		fn(t, env)
	})
}
