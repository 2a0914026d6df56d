package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncStoreWrites(collection string)
	IncStoreWriteFailures(collection string)
	ObserveAggregationDuration(view string, duration float64)
	ObserveRequestDuration(route string, duration float64)
	IncSignIns()
	IncSignInFailures()
	IncRecapsProcessed()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
