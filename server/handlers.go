package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/theoremus-urban-solutions/gtfsrt-feed-monitor/feed"
)

type feedResponse struct {
	TripUpdates      []feed.TripUpdate      `json:"tripUpdates"`
	VehiclePositions []feed.VehiclePosition `json:"vehiclePositions"`
	FetchedAt        *string                `json:"fetchedAt"`
}

type healthResponse struct {
	Status    string  `json:"status"`
	FetchedAt *string `json:"fetchedAt"`
	LastError *string `json:"lastError"`
}

// handleFeed returns the current snapshot, optionally filtered by the q
// query parameter. Before the first successful refresh it returns the
// empty-collections form with 200: absence of data is not a server error.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Current()
	if term := r.URL.Query().Get("q"); term != "" {
		snap = feed.Search(snap, term)
	}

	writeJSON(w, http.StatusOK, feedResponse{
		TripUpdates:      snap.TripUpdates,
		VehiclePositions: snap.VehiclePositions,
		FetchedAt:        formatFetchedAt(snap.FetchedAt),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		FetchedAt: formatFetchedAt(s.store.Current().FetchedAt),
	}
	if s.sched != nil {
		if err := s.sched.LastError(); err != nil {
			msg := err.Error()
			resp.LastError = &msg
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// formatFetchedAt renders the refresh time as RFC3339, or nil before the
// first successful refresh.
func formatFetchedAt(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
