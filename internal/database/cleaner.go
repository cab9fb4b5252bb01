package database

import (
	"context"
	"os"
	"time"

	"calboard/internal/config"
	"calboard/pkg/logger"
	"calboard/pkg/utils"
)

/*
Storage maintenance

Proof images are stored inline as base64 text, so a week of entries can grow
the file considerably. A reset deletes the rows but SQLite keeps the freed
pages, and the file never shrinks on its own.

The cleaner checks the file periodically:
  - below the configured limit it does nothing; freed pages are reused by the
    next week's inserts;
  - above the limit and more than half empty, it checkpoints the WAL and runs
    VACUUM to give the space back to the OS.

It never deletes rows. A file that is over the limit and genuinely full is
only reported.
*/

const (
	DefaultMaxSize        = 512 << 20
	DefaultVacuumInterval = 30 * time.Minute
)

type Cleaner struct {
	store    *Store
	limit    int64
	interval time.Duration
}

func NewCleaner(store *Store, cfg config.DatabaseConfig) *Cleaner {
	interval, err := time.ParseDuration(cfg.VacuumInterval)
	if err != nil || interval <= 0 {
		interval = DefaultVacuumInterval
	}
	return &Cleaner{
		store:    store,
		limit:    utils.SizeToBytes(cfg.MaxSize, DefaultMaxSize),
		interval: interval,
	}
}

// Run checks once immediately, then on every tick until ctx is done.
func (c *Cleaner) Run(ctx context.Context) {
	logger.LogInfo("Storage Cleaner started. Limit: %s, Interval: %s", utils.FormatBytes(c.limit), c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.CheckAndVacuum(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CheckAndVacuum(ctx)
		}
	}
}

// CheckAndVacuum reports whether a VACUUM ran.
func (c *Cleaner) CheckAndVacuum(ctx context.Context) bool {
	physicalSize, err := c.physicalSize()
	if err != nil {
		logger.LogError("Cleaner failed to stat DB file: %v", err)
		return false
	}

	if physicalSize < c.limit {
		return false
	}

	logicalSize, err := c.store.LogicalSize(ctx)
	if err != nil {
		logger.LogError("Failed to calculate logical size: %v", err)
		return false
	}

	emptySpace := physicalSize - logicalSize
	isBloated := float64(emptySpace) > float64(physicalSize)*0.50

	logger.LogInfo("Storage Analysis - Phys: %s | Logic: %s | Free: %s",
		utils.FormatBytes(physicalSize),
		utils.FormatBytes(logicalSize),
		utils.FormatBytes(emptySpace))

	if !isBloated {
		logger.LogWarn("Database exceeds %s and is mostly live data; nothing to reclaim.", utils.FormatBytes(c.limit))
		return false
	}

	logger.LogWarn("DB is bloated (>50%% empty). Starting VACUUM to reclaim space...")

	db := c.store.DB().WithContext(ctx)
	if err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE);").Error; err != nil {
		logger.LogWarn("WAL checkpoint failed: %v", err)
	}

	startTime := time.Now()
	if err := db.Exec("VACUUM;").Error; err != nil {
		logger.LogError("VACUUM failed: %v", err)
		return false
	}

	logger.LogSuccess("VACUUM completed in %v. Disk space reclaimed.", time.Since(startTime))
	return true
}

// physicalSize counts the WAL file too, it holds pages not yet checkpointed.
func (c *Cleaner) physicalSize() (int64, error) {
	path := c.store.Path()
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	size := info.Size()
	if walInfo, err := os.Stat(path + "-wal"); err == nil {
		size += walInfo.Size()
	}
	return size, nil
}
