package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_api_requests_total",
			Help: "Total number of requests sent to the storefront backend.",
		},
		[]string{"code", "method"},
	)
	apiRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_api_request_duration_seconds",
			Help:    "Duration of storefront backend requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	apiRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_api_requests_in_flight",
			Help: "Current number of storefront backend requests awaiting a response.",
		},
	)
)

// InstrumentTransport records count, latency and in-flight requests for every
// call made through next.
func InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperInFlight(apiRequestsInFlight,
		promhttp.InstrumentRoundTripperCounter(apiRequestsTotal,
			promhttp.InstrumentRoundTripperDuration(apiRequestsDuration, next),
		),
	)
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", Handler())

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
			slog.Error("⚠️ Metrics server shutdown encountered an issue", slog.String("error", err.Error()))
		}
	}()

	slog.Info("📈 Serving metrics", slog.String("address", addr))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
