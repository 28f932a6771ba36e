package util

import (
	"fmt"

	"github.com/go-sif/reshape/internal/partition"
)

func recovered(kind string, r any, values []any) error {
	if anErr, ok := r.(error); ok {
		return fmt.Errorf("%s Panic: %w\nRow: %v\n%s", kind, anErr, values, GetTrace())
	}
	return fmt.Errorf("%s Panic: %v\nRow: %v\n%s", kind, r, values, GetTrace())
}

// SafeMapOperation wraps a MapOperation such that panics are recovered and nice error messages are constructed
func SafeMapOperation(mapOp partition.MapOperation) (safeMapOp partition.MapOperation) {
	return func(values []any) (res []any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered("Map", r, values)
			} else if err != nil {
				err = fmt.Errorf("Map Error: %w\nRow: %v", err, values)
			}
		}()
		res, err = mapOp(values)
		return
	}
}

// SafeFlatMapOperation wraps a FlatMapOperation such that panics are recovered and nice error messages are constructed
func SafeFlatMapOperation(flatMapOp partition.FlatMapOperation) (safeFlatMapOp partition.FlatMapOperation) {
	return func(values []any) (res [][]any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered("FlatMap", r, values)
			} else if err != nil {
				err = fmt.Errorf("FlatMap Error: %w\nRow: %v", err, values)
			}
		}()
		res, err = flatMapOp(values)
		return
	}
}
