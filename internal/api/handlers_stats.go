package api

import (
	"encoding/json"
	"net/http"
)

type llmStatsResponse struct {
	Model             string  `json:"model"`
	Count             int     `json:"count"`
	Failed            int     `json:"failed"`
	FailureRate       float64 `json:"failure_rate"`
	AvgMs             float64 `json:"avg_ms"`
	P50Ms             float64 `json:"p50_ms"`
	P95Ms             float64 `json:"p95_ms"`
	MinMs             int64   `json:"min_ms"`
	MaxMs             int64   `json:"max_ms"`
	RequestsPerMinute int     `json:"requests_per_minute"`
}

// handleLLMStats reports completion latency over the client's rolling window.
func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.llm == nil || s.llm.Stats == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}

	snap := s.llm.Stats.Snapshot()
	resp := llmStatsResponse{
		Model:             s.llm.Model(),
		Count:             snap.Count,
		Failed:            snap.Failed,
		AvgMs:             snap.AvgMs,
		P50Ms:             snap.P50Ms,
		P95Ms:             snap.P95Ms,
		MinMs:             snap.MinMs,
		MaxMs:             snap.MaxMs,
		RequestsPerMinute: s.cfg.RequestsPerMinute,
	}
	if snap.Count > 0 {
		resp.FailureRate = float64(snap.Failed) / float64(snap.Count)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
