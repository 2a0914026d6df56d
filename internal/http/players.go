package http

import (
	"net/http"

	"github.com/mauv0809/hoopsheet/internal/team"
)

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.ListPlayers(r.Context(), ownerID(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func (s *Server) GetPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, err := s.Store.GetPlayer(r.Context(), ownerID(r), r.PathValue("id"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

func (s *Server) CreatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input team.PlayerInput
		if err := decodeJSON(w, r, &input); err != nil {
			writeErr(w, err)
			return
		}
		player, err := s.Store.CreatePlayer(r.Context(), ownerID(r), input)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) UpdatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input team.PlayerInput
		if err := decodeJSON(w, r, &input); err != nil {
			writeErr(w, err)
			return
		}
		player, err := s.Store.UpdatePlayer(r.Context(), ownerID(r), r.PathValue("id"), input)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

func (s *Server) DeletePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Store.DeletePlayer(r.Context(), ownerID(r), r.PathValue("id")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// PlayerSeriesHandler returns the player's game-by-game lines, oldest first.
func (s *Server) PlayerSeriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, playerID := ownerID(r), r.PathValue("id")
		if _, err := s.Store.GetPlayer(r.Context(), owner, playerID); err != nil {
			writeErr(w, err)
			return
		}
		series, err := s.Stats.PlayerSeries(r.Context(), owner, playerID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, series)
	}
}
