package database

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm/clause"
)

// InsertLog appends an entry and returns its generated id.
func (s *Store) InsertLog(ctx context.Context, name string, calories int64, proof *string, date string) (int64, error) {
	entry := LogEntry{
		Name:     name,
		Calories: calories,
		Proof:    proof,
		Date:     date,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return 0, wrap(ErrWriteFailure, "insert log", err)
	}
	return entry.ID, nil
}

// AllLogs returns every stored entry in insertion order.
func (s *Store) AllLogs(ctx context.Context) ([]LogEntry, error) {
	logs := make([]LogEntry, 0)
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&logs).Error; err != nil {
		return nil, wrap(ErrReadFailure, "select logs", err)
	}
	return logs, nil
}

// LastReset returns the reset marker in epoch milliseconds. A missing row
// reads as "now", the same answer the board gave before the marker existed.
func (s *Store) LastReset(ctx context.Context) (int64, error) {
	var meta Meta
	res := s.db.WithContext(ctx).Where("key = ?", lastResetKey).Limit(1).Find(&meta)
	if res.Error != nil {
		return 0, wrap(ErrReadFailure, "select lastReset", res.Error)
	}
	if res.RowsAffected == 0 {
		return s.now().UnixMilli(), nil
	}

	ts, err := strconv.ParseInt(meta.Value, 10, 64)
	if err != nil {
		return 0, wrap(ErrReadFailure, "parse lastReset", fmt.Errorf("invalid value %q", meta.Value))
	}
	return ts, nil
}

// ClearLogs deletes every entry.
func (s *Store) ClearLogs(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Exec("DELETE FROM logs").Error; err != nil {
		return wrap(ErrWriteFailure, "delete logs", err)
	}
	return nil
}

// SetLastReset replaces the reset marker, inserting it if it was removed.
func (s *Store) SetLastReset(ctx context.Context, ts int64) error {
	row := Meta{Key: lastResetKey, Value: strconv.FormatInt(ts, 10)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
	if err != nil {
		return wrap(ErrWriteFailure, "update lastReset", err)
	}
	return nil
}

func (s *Store) CountLogs(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&LogEntry{}).Count(&count).Error; err != nil {
		return 0, wrap(ErrReadFailure, "count logs", err)
	}
	return count, nil
}

// LogicalSize approximates the bytes of live data, used by the cleaner to
// tell a full file from one left sparse by a reset.
func (s *Store) LogicalSize(ctx context.Context) (int64, error) {
	var size int64
	row := s.db.WithContext(ctx).Model(&LogEntry{}).
		Select("IFNULL(SUM(LENGTH(proof)), 0) + IFNULL(SUM(LENGTH(name)), 0) + IFNULL(SUM(LENGTH(date)), 0)").
		Row()
	if err := row.Scan(&size); err != nil {
		return 0, wrap(ErrReadFailure, "logical size", err)
	}
	return size, nil
}
