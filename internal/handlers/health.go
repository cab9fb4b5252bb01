package handlers

import (
	"net/http"
	"runtime"
	"time"

	"calboard/internal/appinfo"
	"calboard/pkg/utils"
)

type HealthResponse struct {
	Status        string `json:"status"`
	Uptime        string `json:"uptime"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	Entries       int64  `json:"entries"`
	Resets        int64  `json:"resets"`
	Goroutines    int    `json:"goroutines"`
}

// Health reports process counters. It does not touch the database.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	uptime := appinfo.Uptime()
	utils.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		Entries:       appinfo.TotalEntries.Load(),
		Resets:        appinfo.ResetCount.Load(),
		Goroutines:    runtime.NumGoroutine(),
	})
}
