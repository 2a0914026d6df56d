package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/hoopsheet/internal/domain"
)

func (s *Server) ListAttendanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := domain.AttendanceFilter{EventID: r.URL.Query().Get("event_id")}
		records, err := s.Store.ListAttendance(r.Context(), ownerID(r), filter)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

// SaveAttendanceHandler accepts one record, or a batch under "records" for
// the event named by "event_id".
func (s *Server) SaveAttendanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req attendanceRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeErr(w, err)
			return
		}

		if req.Records == nil {
			record, err := s.Store.UpsertAttendance(r.Context(), ownerID(r), req.AttendanceInput)
			if err != nil {
				writeErr(w, err)
				return
			}
			writeJSON(w, http.StatusOK, record)
			return
		}

		if req.EventID == "" {
			writeError(w, http.StatusBadRequest, "event_id is required for a batch")
			return
		}
		records, err := s.Store.UpsertAttendanceBatch(r.Context(), ownerID(r), req.EventID, req.Records)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func (s *Server) ListStatisticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := domain.StatisticFilter{
			EventID:  r.URL.Query().Get("event_id"),
			PlayerID: r.URL.Query().Get("player_id"),
		}
		records, err := s.Store.ListStatistics(r.Context(), ownerID(r), filter)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

// SaveStatisticsHandler saves the box score of one event and announces it so
// a recap can be posted. A failed announcement does not fail the save.
func (s *Server) SaveStatisticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req statisticsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeErr(w, err)
			return
		}
		if req.EventID == "" {
			writeError(w, http.StatusBadRequest, "event_id is required")
			return
		}

		owner := ownerID(r)
		records, err := s.Store.UpsertStatisticsBatch(r.Context(), owner, req.EventID, req.Statistics)
		if err != nil {
			writeErr(w, err)
			return
		}

		if err := s.Processor.PublishStatsRecorded(r.Context(), owner, req.EventID, isDryRunFromContext(r)); err != nil {
			log.Error("Statistics saved but not announced", "error", err, "eventID", req.EventID)
		}
		writeJSON(w, http.StatusOK, records)
	}
}
