package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// noopClient is used when no Google Cloud project is configured. It decodes
// pushed messages but drops everything it is asked to publish.
type noopClient struct{}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventStatsRecorded EventType = "stats-recorded"
)

// StatsRecorded is published after a box score was saved for an event.
type StatsRecorded struct {
	OwnerID string `msgpack:"owner_id"`
	EventID string `msgpack:"event_id"`
}

// PushRequest is the JSON body Pub/Sub posts to push subscriptions.
type PushRequest struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data string `json:"data"` // base64-encoded message payload
	} `json:"message"`
}
