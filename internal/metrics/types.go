package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	StoreWrites         *prometheus.CounterVec
	StoreWriteFailures  *prometheus.CounterVec
	AggregationDuration *prometheus.HistogramVec
	RequestDuration     *prometheus.HistogramVec
	SignIns             prometheus.Counter
	SignInFailures      prometheus.Counter
	RecapsProcessed     prometheus.Counter
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
