package http

import "net/http"

func (s *Server) TeamAveragesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		avg, err := s.Stats.TeamAverages(r.Context(), ownerID(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, avg)
	}
}

func (s *Server) PlayerAveragesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		avgs, err := s.Stats.PlayerAverages(r.Context(), ownerID(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, avgs)
	}
}
