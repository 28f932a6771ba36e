// Package stats tracks statistics about operations evaluated by the memory engine
package stats

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const statisticRollingWindows = 5

// RunStatistics contains statistics about a single partition-parallel operation.
// It is safe for concurrent use by the workers evaluating the operation.
type RunStatistics struct {
	lock                        sync.Mutex
	startTime                   time.Time
	totalRuntime                time.Duration
	finished                    bool
	rowsIn                      int64
	rowsOut                     int64
	partitionsProcessed         int64
	recentPartitionRuntimes     []time.Duration // for rolling average of recent partition processing times
	recentPartitionRuntimesHead int
}

// Start begins tracking a new operation
func Start() *RunStatistics {
	return &RunStatistics{
		startTime:               time.Now(),
		recentPartitionRuntimes: make([]time.Duration, statisticRollingWindows),
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.totalRuntime = time.Since(rs.startTime)
	rs.finished = true
}

// EndPartition tracks the end of the processing of a partition which began at start
func (rs *RunStatistics) EndPartition(start time.Time, numRowsIn int, numRowsOut int) {
	elapsed := time.Since(start)
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.recentPartitionRuntimes[rs.recentPartitionRuntimesHead] = elapsed
	rs.recentPartitionRuntimesHead = (rs.recentPartitionRuntimesHead + 1) % len(rs.recentPartitionRuntimes)
	rs.rowsIn += int64(numRowsIn)
	rs.rowsOut += int64(numRowsOut)
	rs.partitionsProcessed++
}

// GetRuntime returns the running time of the operation
func (rs *RunStatistics) GetRuntime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.finished {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetNumRowsProcessed returns the number of rows read and produced so far
func (rs *RunStatistics) GetNumRowsProcessed() (rowsIn int64, rowsOut int64) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.rowsIn, rs.rowsOut
}

// GetNumPartitionsProcessed returns the number of partitions which have been processed so far
func (rs *RunStatistics) GetNumPartitionsProcessed() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.partitionsProcessed
}

// GetCurrentPartitionProcessingTime returns a rolling average of partition processing time
func (rs *RunStatistics) GetCurrentPartitionProcessingTime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	n := rs.partitionsProcessed
	if n == 0 {
		return 0
	}
	if n > statisticRollingWindows {
		n = statisticRollingWindows
	}
	var total time.Duration
	for _, d := range rs.recentPartitionRuntimes {
		total += d
	}
	return total / time.Duration(n)
}

// Fields summarizes these statistics for structured logging
func (rs *RunStatistics) Fields() logrus.Fields {
	rowsIn, rowsOut := rs.GetNumRowsProcessed()
	return logrus.Fields{
		"rows_in":           rowsIn,
		"rows_out":          rowsOut,
		"partitions":        rs.GetNumPartitionsProcessed(),
		"runtime":           rs.GetRuntime(),
		"avg_partition_dur": rs.GetCurrentPartitionProcessingTime(),
	}
}
