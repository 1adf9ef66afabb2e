package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	runsTotal     *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	datasetRows   *prometheus.GaugeVec
	finalEquity   *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		runsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edgelab_runs_total",
				Help: "Total number of pipeline runs by outcome",
			},
			[]string{"ticker", "status"},
		),
		stageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "edgelab_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		datasetRows: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "edgelab_dataset_rows",
				Help: "Aligned dataset rows per partition in the last run",
			},
			[]string{"partition"},
		),
		finalEquity: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "edgelab_final_equity",
				Help: "Last equity-curve value of the most recent run",
			},
			[]string{"ticker"},
		),
	}
}

// RecordRun records a completed or failed pipeline run.
func (r *Recorder) RecordRun(ticker, status string) {
	r.runsTotal.WithLabelValues(ticker, status).Inc()
}

// RecordStageDuration records one stage's wall time in seconds.
func (r *Recorder) RecordStageDuration(stage string, seconds float64) {
	r.stageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordDatasetRows records partition sizes after the split.
func (r *Recorder) RecordDatasetRows(partition string, rows int) {
	r.datasetRows.WithLabelValues(partition).Set(float64(rows))
}

// RecordFinalEquity records the final cumulative return of a run.
func (r *Recorder) RecordFinalEquity(ticker string, value float64) {
	r.finalEquity.WithLabelValues(ticker).Set(value)
}
