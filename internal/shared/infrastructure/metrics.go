package infrastructure

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StepObserver reçoit la durée et la taille de chaque étape de calcul
type StepObserver interface {
	ObserveStep(table, step string, elapsed time.Duration, rows int)
}

// NopObserver n'enregistre rien
type NopObserver struct{}

// ObserveStep ne fait rien
func (NopObserver) ObserveStep(string, string, time.Duration, int) {}

// PipelineMetrics expose les étapes de calcul sous forme de métriques Prometheus
type PipelineMetrics struct {
	stepDuration *prometheus.HistogramVec
	stepRows     *prometheus.GaugeVec
	loadDuration *prometheus.HistogramVec
}

// NewPipelineMetrics crée et enregistre les métriques sur le registerer donné
func NewPipelineMetrics(reg prometheus.Registerer) (*PipelineMetrics, error) {
	m := &PipelineMetrics{
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "olist",
			Name:      "feature_step_duration_seconds",
			Help:      "Duration of each feature derivation step.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"table", "step"}),
		stepRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "olist",
			Name:      "feature_step_rows",
			Help:      "Number of rows produced by the last run of a step.",
		}, []string{"table", "step"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "olist",
			Name:      "table_load_duration_seconds",
			Help:      "Duration of loading one source table.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"table"}),
	}

	for _, c := range []prometheus.Collector{m.stepDuration, m.stepRows, m.loadDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveStep enregistre une étape de calcul
func (m *PipelineMetrics) ObserveStep(table, step string, elapsed time.Duration, rows int) {
	m.stepDuration.WithLabelValues(table, step).Observe(elapsed.Seconds())
	m.stepRows.WithLabelValues(table, step).Set(float64(rows))
}

// ObserveLoad enregistre le chargement d'une table source
func (m *PipelineMetrics) ObserveLoad(table string, elapsed time.Duration) {
	m.loadDuration.WithLabelValues(table).Observe(elapsed.Seconds())
}
