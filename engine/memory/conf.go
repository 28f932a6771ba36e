package memory

import "runtime"

// Conf configures an in-memory DataFrame
type Conf struct {
	PartitionSize int // The maximum number of rows per Partition. Defaults to 128.
	NumWorkers    int // The maximum number of Partitions processed concurrently. Defaults to the number of CPUs.
}

func withDefaults(conf *Conf) *Conf {
	res := Conf{}
	if conf != nil {
		res = *conf
	}
	if res.PartitionSize <= 0 {
		res.PartitionSize = 128
	}
	if res.NumWorkers <= 0 {
		res.NumWorkers = runtime.NumCPU()
	}
	return &res
}
