package database

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"calboard/internal/config"
	"calboard/pkg/logger"
)

func init() {
	logger.SetOutput(io.Discard)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "leaderboard.db")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func strPtr(s string) *string { return &s }

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "leaderboard.db")
	cfg := config.DatabaseConfig{Path: path}

	first, err := Open(cfg)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	ctx := context.Background()
	firstReset, err := first.LastReset(ctx)
	if err != nil {
		t.Fatalf("read lastReset: %v", err)
	}
	if _, err := first.InsertLog(ctx, "Alice", 500, nil, "1/1/2026, 9:00:00 AM"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	first.Close()

	time.Sleep(5 * time.Millisecond)

	second, err := Open(cfg)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()

	var metaRows int64
	if err := second.DB().Model(&Meta{}).Count(&metaRows).Error; err != nil {
		t.Fatalf("count meta: %v", err)
	}
	if metaRows != 1 {
		t.Fatalf("expected exactly one meta row, got %d", metaRows)
	}

	var tables int64
	if err := second.DB().Raw(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name IN ('logs', 'meta')`).Scan(&tables).Error; err != nil {
		t.Fatalf("count tables: %v", err)
	}
	if tables != 2 {
		t.Fatalf("expected logs and meta tables, got %d", tables)
	}

	secondReset, err := second.LastReset(ctx)
	if err != nil {
		t.Fatalf("read lastReset: %v", err)
	}
	if secondReset != firstReset {
		t.Fatalf("reopen must not overwrite lastReset: %d != %d", secondReset, firstReset)
	}

	count, err := second.CountLogs(ctx)
	if err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected entry to survive reopen, got %d rows", count)
	}
}

func TestOpenSeedsLastResetWithCurrentTime(t *testing.T) {
	t.Parallel()

	before := time.Now().UnixMilli()
	store := newTestStore(t)
	after := time.Now().UnixMilli()

	got, err := store.LastReset(context.Background())
	if err != nil {
		t.Fatalf("read lastReset: %v", err)
	}
	if got < before || got > after {
		t.Fatalf("expected lastReset in [%d, %d], got %d", before, after, got)
	}
}

func TestOpenFailsWhenPathUnusable(t *testing.T) {
	t.Parallel()

	// A directory where the file should be cannot be opened as a database.
	dir := t.TempDir()
	_, err := Open(config.DatabaseConfig{Path: dir})
	if err == nil {
		t.Fatalf("expected open to fail on a directory path")
	}
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestInsertAndReadLogsInOrder(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	id1, err := store.InsertLog(ctx, "Alice", 500, strPtr("data:image/png;base64,AAAA"), "d1")
	if err != nil {
		t.Fatalf("insert 1: %v", err)
	}
	id2, err := store.InsertLog(ctx, "Bob", 200, nil, "d2")
	if err != nil {
		t.Fatalf("insert 2: %v", err)
	}
	if id2 <= id1 {
		t.Fatalf("expected increasing ids, got %d then %d", id1, id2)
	}

	logs, err := store.AllLogs(ctx)
	if err != nil {
		t.Fatalf("all logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0].ID != id1 || logs[0].Name != "Alice" || logs[0].Calories != 500 || logs[0].Date != "d1" {
		t.Fatalf("unexpected first row %+v", logs[0])
	}
	if logs[0].Proof == nil || *logs[0].Proof != "data:image/png;base64,AAAA" {
		t.Fatalf("expected proof round trip, got %v", logs[0].Proof)
	}
	if logs[1].Proof != nil {
		t.Fatalf("expected nil proof, got %q", *logs[1].Proof)
	}
}

func TestAllLogsEmptyIsNonNil(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	logs, err := store.AllLogs(context.Background())
	if err != nil {
		t.Fatalf("all logs: %v", err)
	}
	if logs == nil || len(logs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", logs)
	}
}

func TestClearLogsAndSetLastReset(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.InsertLog(ctx, "Alice", 100, nil, "d"); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	lastID, _ := store.InsertLog(ctx, "Bob", 1, nil, "d")

	if err := store.ClearLogs(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.SetLastReset(ctx, 1767225600000); err != nil {
		t.Fatalf("set lastReset: %v", err)
	}

	count, err := store.CountLogs(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d", count)
	}
	got, err := store.LastReset(ctx)
	if err != nil {
		t.Fatalf("read lastReset: %v", err)
	}
	if got != 1767225600000 {
		t.Fatalf("expected updated lastReset, got %d", got)
	}

	newID, err := store.InsertLog(ctx, "Carol", 50, nil, "d")
	if err != nil {
		t.Fatalf("insert after reset: %v", err)
	}
	if newID <= lastID {
		t.Fatalf("expected ids to keep increasing after reset, got %d after %d", newID, lastID)
	}
}

func TestSetLastResetRecreatesMissingRow(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.DB().Exec("DELETE FROM meta").Error; err != nil {
		t.Fatalf("delete meta: %v", err)
	}

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }
	got, err := store.LastReset(ctx)
	if err != nil {
		t.Fatalf("read missing lastReset: %v", err)
	}
	if got != fixed.UnixMilli() {
		t.Fatalf("expected missing marker to read as now, got %d", got)
	}

	if err := store.SetLastReset(ctx, 42); err != nil {
		t.Fatalf("set lastReset: %v", err)
	}
	var metaRows int64
	store.DB().Model(&Meta{}).Count(&metaRows)
	if metaRows != 1 {
		t.Fatalf("expected a single meta row, got %d", metaRows)
	}
}

func TestLastResetRejectsGarbage(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	if err := store.DB().Exec("UPDATE meta SET value = 'soon' WHERE key = 'lastReset'").Error; err != nil {
		t.Fatalf("corrupt meta: %v", err)
	}
	_, err := store.LastReset(context.Background())
	if !errors.Is(err, ErrReadFailure) {
		t.Fatalf("expected ErrReadFailure, got %v", err)
	}
}

func TestOperationsOnClosedStoreReportKinds(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	store.Close()
	ctx := context.Background()

	if _, err := store.AllLogs(ctx); !errors.Is(err, ErrReadFailure) {
		t.Fatalf("AllLogs: expected ErrReadFailure, got %v", err)
	}
	if _, err := store.LastReset(ctx); !errors.Is(err, ErrReadFailure) {
		t.Fatalf("LastReset: expected ErrReadFailure, got %v", err)
	}
	if _, err := store.InsertLog(ctx, "Alice", 1, nil, "d"); !errors.Is(err, ErrWriteFailure) {
		t.Fatalf("InsertLog: expected ErrWriteFailure, got %v", err)
	}
	if err := store.ClearLogs(ctx); !errors.Is(err, ErrWriteFailure) {
		t.Fatalf("ClearLogs: expected ErrWriteFailure, got %v", err)
	}
	err := store.SetLastReset(ctx, 1)
	if !errors.Is(err, ErrWriteFailure) {
		t.Fatalf("SetLastReset: expected ErrWriteFailure, got %v", err)
	}
	if !strings.Contains(err.Error(), "closed") {
		t.Fatalf("expected driver message to be kept, got %q", err.Error())
	}
}

func TestCleanerVacuumsAfterReset(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	proof := strings.Repeat("A", 64<<10)
	for i := 0; i < 20; i++ {
		if _, err := store.InsertLog(ctx, "Alice", 100, &proof, "d"); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if err := store.ClearLogs(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	idle := NewCleaner(store, config.DatabaseConfig{MaxSize: "1GB", VacuumInterval: "1h"})
	if idle.CheckAndVacuum(ctx) {
		t.Fatalf("expected no vacuum below the size limit")
	}

	tight := NewCleaner(store, config.DatabaseConfig{MaxSize: "1KB", VacuumInterval: "1h"})
	if !tight.CheckAndVacuum(ctx) {
		t.Fatalf("expected vacuum on a bloated file")
	}
}

func TestCleanerRunStopsOnCancel(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewCleaner(store, config.DatabaseConfig{MaxSize: "1GB", VacuumInterval: "10ms"}).Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("cleaner did not stop after cancel")
	}
}
