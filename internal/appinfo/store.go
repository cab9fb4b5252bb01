// Package appinfo keeps process-wide runtime counters for the health endpoint.
package appinfo

import (
	"sync/atomic"
	"time"
)

var (
	StartTime = time.Now()

	TotalEntries atomic.Int64
	ResetCount   atomic.Int64
)

// AddEntry: called after an entry is stored.
func AddEntry() {
	TotalEntries.Add(1)
}

// ResetEntries: called after the log table was cleared.
func ResetEntries() {
	TotalEntries.Store(0)
	ResetCount.Add(1)
}

// SetInitialStats: row count read from the database at startup.
func SetInitialStats(count int64) {
	TotalEntries.Store(count)
}

func Uptime() time.Duration {
	return time.Since(StartTime)
}
