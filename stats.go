package etl

import "time"

// RuntimeStatistics facilitates the retrieval of statistics about a Pipeline run
type RuntimeStatistics interface {
	// GetStartTime returns the start time of the Pipeline run
	GetStartTime() time.Time
	// GetRuntime returns the running time of the Pipeline run
	GetRuntime() time.Duration
	// GetNumRowsProcessed returns the number of Rows each Stage has produced so far
	GetNumRowsProcessed() []int64
	// GetStagePullTimes returns the total time spent pulling Rows from each Stage, including its upstream Stages
	GetStagePullTimes() []time.Duration
}
