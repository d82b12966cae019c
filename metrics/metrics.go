package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	ReportRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securecheck_report_runs_total",
		Help: "Report executions by outcome (ok, empty, failed, cached).",
	}, []string{"outcome"})
	Predictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securecheck_predictions_total",
		Help: "Predictions served, split by whether history matched or the fallback was used.",
	}, []string{"source"})
	PredictionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securecheck_predictions_rejected_total",
		Help: "Prediction requests rejected as invalid.",
	})
	DataSourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securecheck_datasource_failures_total",
		Help: "Failed data source calls by operation.",
	}, []string{"op"})
	SnapshotDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "securecheck_snapshot_load_seconds",
		Help:    "Time spent loading the ledger snapshot.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
	})
	SnapshotRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "securecheck_snapshot_rows",
		Help: "Rows in the most recently loaded snapshot.",
	})
)

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("metrics server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
