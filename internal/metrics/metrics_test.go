package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.CommandsTotal.WithLabelValues("bug").Inc()
	m.CommandsTotal.WithLabelValues("bug").Inc()
	m.CommandsTotal.WithLabelValues("stats").Inc()
	m.UnauthorizedTotal.Inc()
	m.ReportsSubmittedTotal.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("bug")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("stats")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UnauthorizedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsSubmittedTotal))
}

func TestMetrics_ObserveAttempt(t *testing.T) {
	m := New()

	m.ObserveAttempt("POST", "/bugs/", 200, nil)
	m.ObserveAttempt("POST", "/bugs/", 500, errors.New("server error"))
	m.ObserveAttempt("POST", "/bugs/", 500, errors.New("server error"))
	m.ObserveAttempt("GET", "/bugs/stats", 0, errors.New("connection refused"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BackendAttemptsTotal.WithLabelValues("POST", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BackendAttemptsTotal.WithLabelValues("POST", "500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BackendAttemptsTotal.WithLabelValues("GET", "network_error")))
}

func TestMetrics_FreshRegistriesAreIndependent(t *testing.T) {
	first := New()
	second := New()

	first.UnauthorizedTotal.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(first.UnauthorizedTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.UnauthorizedTotal))
}
