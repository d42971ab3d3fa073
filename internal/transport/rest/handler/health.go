package handler

import (
	"net/http"
	"sync/atomic"
	"time"
)

// Health handles GET /health. The process is up whenever it can answer;
// inference health is informational.
func Health(healthy *atomic.Bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":           "ok",
			"timestamp":        time.Now().UTC().Format(time.RFC3339),
			"inferenceHealthy": healthy != nil && healthy.Load(),
		})
	}
}
