//go:build unit

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shareit/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := metrics.New("shareit_test")

	m.ObserveHTTP(http.MethodGet, "/api/bookings", http.StatusOK, 10*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "/api/bookings", http.StatusOK, 20*time.Millisecond)
	m.BookingCreated()
	m.BookingDecided("APPROVED")
	m.BookingDecided("REJECTED")
	m.BookingDecided("APPROVED")
	m.TxRetried("40001")

	expected := `
# HELP shareit_test_booking_decisions_total Owner decisions by resulting status.
# TYPE shareit_test_booking_decisions_total counter
shareit_test_booking_decisions_total{status="APPROVED"} 2
shareit_test_booking_decisions_total{status="REJECTED"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "shareit_test_booking_decisions_total"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `shareit_test_http_requests_total{method="GET",route="/api/bookings",status="200"} 2`)
	assert.Contains(t, rec.Body.String(), "shareit_test_bookings_created_total 1")
	assert.Contains(t, rec.Body.String(), `shareit_test_db_tx_retries_total{sqlstate="40001"} 1`)
}

func TestInstancesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New("same")
		metrics.New("same")
	})
}
