package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "latency stats unavailable", http.StatusServiceUnavailable)
		return
	}

	resp := map[string]any{
		"window":     s.cfg.StatsWindow.String(),
		"operations": s.stats.Snapshot(),
	}
	if s.orchestrator != nil {
		resp["queue_depth"] = s.orchestrator.QueueDepth()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
