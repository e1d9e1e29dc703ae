// Package metrics exposes prometheus counters for the bot plus the
// /metrics and /healthz listener.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Metrics holds every counter the bot records
type Metrics struct {
	registry *prometheus.Registry

	// CommandsTotal counts handled commands by name
	CommandsTotal *prometheus.CounterVec

	// UnauthorizedTotal counts rejected access attempts
	UnauthorizedTotal prometheus.Counter

	// ReportsSubmittedTotal counts bug reports submitted to the backend
	ReportsSubmittedTotal prometheus.Counter

	// BackendAttemptsTotal counts backend request attempts by method and outcome
	BackendAttemptsTotal *prometheus.CounterVec
}

// New creates the metrics set on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bugbot_commands_total",
			Help: "Number of bot commands handled, by command.",
		}, []string{"command"}),
		UnauthorizedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bugbot_unauthorized_total",
			Help: "Number of rejected access attempts.",
		}),
		ReportsSubmittedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bugbot_reports_submitted_total",
			Help: "Number of bug reports submitted to the backend.",
		}),
		BackendAttemptsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bugbot_backend_attempts_total",
			Help: "Number of backend request attempts, by method and outcome.",
		}, []string{"method", "outcome"}),
	}
}

// ObserveAttempt implements backend.AttemptObserver
func (m *Metrics) ObserveAttempt(method, _ string, statusCode int, err error) {
	outcome := "ok"
	switch {
	case statusCode > 0:
		outcome = strconv.Itoa(statusCode)
	case err != nil:
		outcome = "network_error"
	}
	m.BackendAttemptsTotal.WithLabelValues(method, outcome).Inc()
}

// Serve runs the /metrics and /healthz listener until the context is
// cancelled. Blocks; run it in its own goroutine.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			log.WithError(err).Warn("Failed to write health response")
		}
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("Metrics server shutdown failed")
		}
	}()

	log.WithField("addr", addr).Info("Metrics listener starting")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
