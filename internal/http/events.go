package http

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gosimple/slug"
	"github.com/mauv0809/hoopsheet/internal/domain"
	"github.com/mauv0809/hoopsheet/internal/team"
)

func (s *Server) ListEventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := domain.EventFilter{Type: domain.EventType(r.URL.Query().Get("type"))}
		if filter.Type != "" && !filter.Type.Valid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown event type %q", filter.Type))
			return
		}
		events, err := s.Store.ListEvents(r.Context(), ownerID(r), filter)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, events)
	}
}

func (s *Server) GetEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := s.Store.GetEvent(r.Context(), ownerID(r), r.PathValue("id"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, event)
	}
}

func (s *Server) CreateEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input team.EventInput
		if err := decodeJSON(w, r, &input); err != nil {
			writeErr(w, err)
			return
		}
		event, err := s.Store.CreateEvent(r.Context(), ownerID(r), input)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, event)
	}
}

func (s *Server) UpdateEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input team.EventInput
		if err := decodeJSON(w, r, &input); err != nil {
			writeErr(w, err)
			return
		}
		event, err := s.Store.UpdateEvent(r.Context(), ownerID(r), r.PathValue("id"), input)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, event)
	}
}

func (s *Server) DeleteEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Store.DeleteEvent(r.Context(), ownerID(r), r.PathValue("id")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// BoxScoreHandler returns one line per player with statistics for the event.
func (s *Server) BoxScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, eventID := ownerID(r), r.PathValue("id")
		if _, err := s.Store.GetEvent(r.Context(), owner, eventID); err != nil {
			writeErr(w, err)
			return
		}
		lines, err := s.Stats.EventSeries(r.Context(), owner, eventID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, lines)
	}
}

// BoxScoreCSVHandler exports the box score as a CSV attachment named after the event.
func (s *Server) BoxScoreCSVHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, eventID := ownerID(r), r.PathValue("id")
		event, err := s.Store.GetEvent(r.Context(), owner, eventID)
		if err != nil {
			writeErr(w, err)
			return
		}
		lines, err := s.Stats.EventSeries(r.Context(), owner, eventID)
		if err != nil {
			writeErr(w, err)
			return
		}

		name := slug.Make(event.Title)
		if name == "" {
			name = "event-" + event.ID
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, name))

		cw := csv.NewWriter(w)
		cw.Write([]string{"player", "jersey_number", "points", "rebounds", "assists", "steals", "blocks"})
		for _, l := range lines {
			jersey := ""
			if l.JerseyNumber != nil {
				jersey = strconv.Itoa(*l.JerseyNumber)
			}
			cw.Write([]string{
				l.PlayerName, jersey,
				strconv.Itoa(l.Points), strconv.Itoa(l.Rebounds), strconv.Itoa(l.Assists),
				strconv.Itoa(l.Steals), strconv.Itoa(l.Blocks),
			})
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			log.Error("Failed to write CSV export", "error", err, "eventID", eventID)
		}
	}
}
