package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	storeWrites          map[string]int
	storeWriteFailures   map[string]int
	aggregationDurations map[string][]float64
	requestDurations     map[string][]float64
	signIns              int
	signInFailures       int
	recapsProcessed      int
	slackNotifSent       int
	slackNotifFailed     int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		storeWrites:          make(map[string]int),
		storeWriteFailures:   make(map[string]int),
		aggregationDurations: make(map[string][]float64),
		requestDurations:     make(map[string][]float64),
	}
}

func (m *Mock) IncStoreWrites(collection string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeWrites[collection]++
}

func (m *Mock) IncStoreWriteFailures(collection string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeWriteFailures[collection]++
}

func (m *Mock) ObserveAggregationDuration(view string, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aggregationDurations[view] = append(m.aggregationDurations[view], duration)
}

func (m *Mock) ObserveRequestDuration(route string, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestDurations[route] = append(m.requestDurations[route], duration)
}

func (m *Mock) IncSignIns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signIns++
}

func (m *Mock) IncSignInFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signInFailures++
}

func (m *Mock) IncRecapsProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recapsProcessed++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// StoreWrites returns how often IncStoreWrites was called for collection.
func (m *Mock) StoreWrites(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeWrites[collection]
}

// StoreWriteFailures returns how often IncStoreWriteFailures was called for collection.
func (m *Mock) StoreWriteFailures(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeWriteFailures[collection]
}

// AggregationRuns returns the number of observed durations for view.
func (m *Mock) AggregationRuns(view string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.aggregationDurations[view])
}

// Requests returns the number of observed durations for route.
func (m *Mock) Requests(route string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requestDurations[route])
}

// SignIns returns the number of times IncSignIns was called.
func (m *Mock) SignIns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signIns
}

// SignInFailures returns the number of times IncSignInFailures was called.
func (m *Mock) SignInFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signInFailures
}

// RecapsProcessed returns the number of times IncRecapsProcessed was called.
func (m *Mock) RecapsProcessed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recapsProcessed
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
