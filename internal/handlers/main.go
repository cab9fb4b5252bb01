package handlers

import (
	"context"
	"net/http"
	"time"

	"calboard/internal/database"
)

// Storage is the subset of database.Store the endpoints use.
type Storage interface {
	InsertLog(ctx context.Context, name string, calories int64, proof *string, date string) (int64, error)
	AllLogs(ctx context.Context) ([]database.LogEntry, error)
	LastReset(ctx context.Context) (int64, error)
	ClearLogs(ctx context.Context) error
	SetLastReset(ctx context.Context, ts int64) error
}

// Handler serves the leaderboard API. It holds no leaderboard state of its
// own; every request reads storage.
type Handler struct {
	store Storage
	now   func() time.Time
}

func New(store Storage) *Handler {
	return &Handler{store: store, now: time.Now}
}

// Register mounts the API routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/data", h.GetData)
	mux.HandleFunc("POST /api/entry", h.AddEntry)
	mux.HandleFunc("POST /api/reset", h.Reset)
	mux.HandleFunc("GET /api/health", h.Health)
}
