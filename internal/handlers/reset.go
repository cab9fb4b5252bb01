package handlers

import (
	"net/http"

	"calboard/internal/appinfo"
	"calboard/pkg/logger"
	"calboard/pkg/utils"
)

type ResetResponse struct {
	Message   string `json:"message"`
	LastReset int64  `json:"lastReset"`
}

// Reset wipes every log and moves the reset marker to now.
// POST /api/reset
//
// Logs are cleared before the marker is written and the two steps are not
// atomic: if the second one fails the board is empty but lastReset is stale.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := storageContext(r)
	newReset := h.now().UnixMilli()

	if err := h.store.ClearLogs(ctx); err != nil {
		writeStorageError(w, err)
		return
	}
	appinfo.ResetEntries()

	if err := h.store.SetLastReset(ctx, newReset); err != nil {
		logger.LogWarn("Logs cleared but lastReset not updated: %v", err)
		writeStorageError(w, err)
		return
	}

	logger.LogInfo("Leaderboard reset at %d", newReset)
	utils.WriteJSON(w, http.StatusOK, ResetResponse{Message: "Leaderboard reset", LastReset: newReset})
}
