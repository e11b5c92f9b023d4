package api

import (
	"net/http"
)

func (s *Server) handleDisplayLatest(w http.ResponseWriter, r *http.Request) {
	d := s.hub.Latest()
	if d == nil {
		writeError(w, http.StatusNotFound, "nothing published yet")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.gas != nil {
		if g := s.gas(); g != nil {
			writeJSON(w, http.StatusOK, g)
			return
		}
		writeError(w, http.StatusNotFound, "no gas reading yet")
		return
	}

	snap := s.state.Snapshot()
	if snap == nil {
		writeError(w, http.StatusNotFound, "no snapshot yet")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
