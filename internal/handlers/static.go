package handlers

import (
	"net/http"
	"os"

	"calboard/pkg/logger"
)

// MountStatic serves the frontend bundle in dir at "/". It reports false and
// mounts nothing when dir is empty or not a directory.
func MountStatic(mux *http.ServeMux, dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.LogWarn("Static directory '%s' not found, frontend will not be served.", dir)
		return false
	}

	mux.Handle("GET /", http.FileServer(http.Dir(dir)))
	logger.LogInfo("Serving frontend from %s", dir)
	return true
}
