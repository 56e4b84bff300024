package http

import (
	"net/http"
	"time"
)

// handleRoot returns the service banner.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"message": "Collie API",
	})
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.store == nil {
		checks["trip_store"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["trip_store"] = "ok"
	}

	if s.recommender == nil {
		checks["recommender"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["recommender"] = "ok"
	}

	if s.publisher == nil {
		checks["prefetch_publisher"] = "not_configured" // optional, does not gate readiness
	} else {
		checks["prefetch_publisher"] = "ok"
	}

	metrics := s.tracer.GetMetrics()
	writeJSON(w, httpStatus, map[string]any{
		"status": status,
		"checks": checks,
		"metrics": map[string]any{
			"total_requests":           metrics.TotalRequests,
			"average_response_time_us": metrics.AverageResponseTime,
		},
	})
}
