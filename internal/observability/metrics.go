package observability

import (
	"time"

	"github.com/LordIdra/Netheopoiesis/internal/breeding"
	"github.com/prometheus/client_golang/prometheus"
)

// BreedMetrics: Prometheus-метрики реестра и попыток скрещивания.
//
// Метрики:
// * <ns>_breed_results_total{type} — counter исходов по типу
// * <ns>_breed_resolve_duration_seconds — histogram времени разрешения
// * <ns>_registry_plants — gauge количества растений
// * <ns>_registry_pairs — gauge количества пар
type BreedMetrics struct {
	results  *prometheus.CounterVec
	duration prometheus.Histogram
	plants   prometheus.Gauge
	pairs    prometheus.Gauge
}

// NewBreedMetrics создаёт метрики и регистрирует их в reg (nil: дефолтный регистр).
func NewBreedMetrics(namespace string, reg prometheus.Registerer) *BreedMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &BreedMetrics{
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breed_results_total",
			Help:      "Исходы попыток скрещивания по типу.",
		}, []string{"type"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "breed_resolve_duration_seconds",
			Help:      "Время поиска подходящей пары.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		plants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_plants",
			Help:      "Количество зарегистрированных растений.",
		}),
		pairs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_pairs",
			Help:      "Количество зарегистрированных пар скрещивания.",
		}),
	}

	reg.MustRegister(m.results, m.duration, m.plants, m.pairs)
	return m
}

// ObserveResult учитывает исход и длительность разрешения
func (m *BreedMetrics) ObserveResult(t breeding.ResultType, took time.Duration) {
	if m == nil {
		return
	}
	m.results.WithLabelValues(t.String()).Inc()
	m.duration.Observe(took.Seconds())
}

// SetRegistrySize обновляет размеры реестра
func (m *BreedMetrics) SetRegistrySize(plants, pairs int) {
	if m == nil {
		return
	}
	m.plants.Set(float64(plants))
	m.pairs.Set(float64(pairs))
}
