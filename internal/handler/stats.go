package handler

import "net/http"

// ListStats handles GET /stats: usage statistics for all of the user's gear.
func (s *Server) ListStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats.List(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, r, err, "usage stats")
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(stats, statsToResponse))
}
