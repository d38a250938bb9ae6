package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/omarshaarawi/rosterbot/internal/repository/memory"
)

type healthResponse struct {
	Status    string     `json:"status"`
	LastCycle *cycleInfo `json:"last_cycle,omitempty"`
}

type cycleInfo struct {
	ID       string    `json:"id"`
	Week     int       `json:"week"`
	RanAt    time.Time `json:"ran_at"`
	Executed int       `json:"executed"`
	Failures int       `json:"failures"`
	Error    string    `json:"error,omitempty"`
}

// healthHandler answers liveness checks with the outcome of the last
// roster cycle, if one has run.
func healthHandler(repo *memory.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		if report := repo.LastCycle(); report != nil {
			resp.LastCycle = &cycleInfo{
				ID:       report.CycleID,
				Week:     report.Week,
				RanAt:    report.RanAt,
				Executed: report.Executed,
				Failures: len(report.Failures),
				Error:    report.Error,
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("Error writing health response", "error", err)
		}
	}
}

func newHTTPServer(addr string, repo *memory.Repository) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", healthHandler(repo))
	mux.HandleFunc("/healthz", healthHandler(repo))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
