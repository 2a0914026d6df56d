package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		StoreWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hoopsheet_store_writes_total",
			Help: "The total number of successful writes per collection.",
		}, []string{"collection"}),
		StoreWriteFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hoopsheet_store_write_failures_total",
			Help: "The total number of failed writes per collection.",
		}, []string{"collection"}),
		AggregationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hoopsheet_aggregation_duration_seconds",
			Help:    "The duration of computing a statistics view.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"view"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hoopsheet_http_request_duration_seconds",
			Help:    "The duration of HTTP requests per route.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),
		SignIns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoopsheet_sign_ins_total",
			Help: "The total number of successful sign-ins.",
		}),
		SignInFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoopsheet_sign_in_failures_total",
			Help: "The total number of rejected sign-ins.",
		}),
		RecapsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoopsheet_recaps_processed_total",
			Help: "The total number of game recaps built from recorded statistics.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoopsheet_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hoopsheet_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hoopsheet_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.StoreWrites,
		s.StoreWriteFailures,
		s.AggregationDuration,
		s.RequestDuration,
		s.SignIns,
		s.SignInFailures,
		s.RecapsProcessed,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncStoreWrites(collection string) {
	s.StoreWrites.WithLabelValues(collection).Inc()
}

func (s *Service) IncStoreWriteFailures(collection string) {
	s.StoreWriteFailures.WithLabelValues(collection).Inc()
}

func (s *Service) ObserveAggregationDuration(view string, duration float64) {
	s.AggregationDuration.WithLabelValues(view).Observe(duration)
}

func (s *Service) ObserveRequestDuration(route string, duration float64) {
	s.RequestDuration.WithLabelValues(route).Observe(duration)
}

func (s *Service) IncSignIns() {
	s.SignIns.Inc()
}

func (s *Service) IncSignInFailures() {
	s.SignInFailures.Inc()
}

func (s *Service) IncRecapsProcessed() {
	s.RecapsProcessed.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
