package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.IncStoreWrites("statistics")
	svc.IncStoreWrites("statistics")
	svc.IncStoreWrites("players")
	svc.IncStoreWriteFailures("events")
	svc.IncSignIns()
	svc.IncSlackNotifSent()

	assert.Equal(t, 2.0, testutil.ToFloat64(svc.StoreWrites.WithLabelValues("statistics")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.StoreWrites.WithLabelValues("players")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.StoreWriteFailures.WithLabelValues("events")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.SignIns))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.SlackNotifSent))
	assert.Equal(t, 0.0, testutil.ToFloat64(svc.SlackNotifFailed))
}

func TestMetricsHandler_ExposesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)
	svc.SetStartupTime(1.5)
	svc.ObserveAggregationDuration("team_averages", 0.001)

	rr := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/metrics", nil)
	require.NoError(t, err)
	NewMetricsHandler(reg).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "hoopsheet_startup_duration_seconds 1.5")
	assert.Contains(t, rr.Body.String(), `hoopsheet_aggregation_duration_seconds_count{view="team_averages"} 1`)
}
