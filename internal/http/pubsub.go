package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/hoopsheet/internal/pubsub"
	"github.com/mauv0809/hoopsheet/internal/team"
)

// StatsRecordedPushHandler receives Pub/Sub push deliveries of stats-recorded
// events. It runs behind requirePushAuth, so the owner named in a message was
// published by this service. Events that no longer exist are acknowledged so
// they are not redelivered.
func (s *Server) StatsRecordedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		log.FromContext(r.Context()).Debug("Received stats-recorded message", "body", string(bodyBytes))

		var pubsubMsg pubsub.PushRequest
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var msg pubsub.StatsRecorded
		if err := s.pubsub.ProcessMessage(rawData, &msg); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		err = s.Processor.HandleStatsRecorded(r.Context(), msg, isDryRunFromContext(r))
		switch {
		case errors.Is(err, team.ErrNotFound):
			log.Warn("Dropping stats-recorded message for unknown event", "eventID", msg.EventID, "messageID", pubsubMsg.Message.ID)
		case err != nil:
			http.Error(w, "Failed to process message", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
