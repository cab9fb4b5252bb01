package handlers

import (
	"net/http"

	"calboard/internal/leaderboard"
	"calboard/pkg/utils"
)

type DataResponse struct {
	Users     []leaderboard.User `json:"users"`
	LastReset int64              `json:"lastReset"`
}

// GetData returns the aggregated board.
// GET /api/data
//
// The marker and the logs are two separate reads. A reset landing between
// them can pair a newer lastReset with the older log snapshot.
func (h *Handler) GetData(w http.ResponseWriter, r *http.Request) {
	ctx := storageContext(r)

	lastReset, err := h.store.LastReset(ctx)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	logs, err := h.store.AllLogs(ctx)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, DataResponse{
		Users:     leaderboard.Aggregate(logs),
		LastReset: lastReset,
	})
}
