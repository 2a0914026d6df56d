package processor

import (
	"github.com/mauv0809/hoopsheet/internal/metrics"
	"github.com/mauv0809/hoopsheet/internal/pubsub"
	"github.com/mauv0809/hoopsheet/internal/stats"
)

// Processor turns saved box scores into game recaps.
type Processor struct {
	store    Store
	stats    *stats.Service
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
}
