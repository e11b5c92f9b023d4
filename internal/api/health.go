package api

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Mode        string `json:"mode"`
	Ticker      string `json:"ticker"`
	LastRefresh string `json:"lastRefresh,omitempty"`
	Clients     int    `json:"streamClients"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Mode:      s.state.Mode(),
		Ticker:    s.ticker,
		Clients:   s.hub.Clients(),
	}
	if t := s.state.LastRefresh(); !t.IsZero() {
		resp.LastRefresh = t.UTC().Format(time.RFC3339)
	} else {
		resp.Status = "starting"
	}
	writeJSON(w, http.StatusOK, resp)
}
