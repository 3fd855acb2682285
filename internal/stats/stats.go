// Package stats tracks the runtime statistics of a Pipeline run
package stats

import (
	"time"
)

// RunStatistics contains statistics about a running Pipeline
type RunStatistics struct {
	started       bool
	finished      bool
	startTime     time.Time
	totalRuntime  time.Duration
	rowsProcessed []int64
	pullTimes     []time.Duration // time spent inside Next for each Stage, including upstream Stages
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start(numStages int) {
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
		rs.rowsProcessed = make([]int64, numStages)
		rs.pullTimes = make([]time.Duration, numStages)
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	if rs.started && !rs.finished {
		rs.finished = true
		rs.totalRuntime = time.Since(rs.startTime)
	}
}

// EndPull records a pull from a Stage which began at start, and whether it produced a Row
func (rs *RunStatistics) EndPull(sidx int, start time.Time, produced bool) {
	rs.pullTimes[sidx] += time.Since(start)
	if produced {
		rs.rowsProcessed[sidx]++
	}
}

// IsStarted returns true iff tracking has started
func (rs *RunStatistics) IsStarted() bool {
	return rs.started
}

// IsFinished returns true iff tracking has finished
func (rs *RunStatistics) IsFinished() bool {
	return rs.finished
}

// GetStartTime returns the start time of the Pipeline run
func (rs *RunStatistics) GetStartTime() time.Time {
	return rs.startTime
}

// GetRuntime returns the running time of the Pipeline run
func (rs *RunStatistics) GetRuntime() time.Duration {
	if !rs.started {
		return 0
	}
	if rs.finished {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetNumRowsProcessed returns the number of Rows which have been produced so far, counted by stage
func (rs *RunStatistics) GetNumRowsProcessed() []int64 {
	return append([]int64(nil), rs.rowsProcessed...)
}

// GetStagePullTimes returns the total time spent pulling from each Stage
func (rs *RunStatistics) GetStagePullTimes() []time.Duration {
	return append([]time.Duration(nil), rs.pullTimes...)
}
