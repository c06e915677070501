package world

import (
	"github.com/annel0/park-engine/internal/tile"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics - Prometheus-метрики карты.
// Методы допускают nil-получатель: карта без метрик просто их не обновляет.
type Metrics struct {
	elements        prometheus.Gauge
	inserted        *prometheus.CounterVec
	removed         *prometheus.CounterVec
	integrityErrors prometheus.Counter
	resizes         prometheus.Counter
}

// NewMetrics создаёт метрики и регистрирует их в reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		elements: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "park",
			Subsystem: "map",
			Name:      "elements",
			Help:      "Текущее число элементов карты.",
		}),
		inserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "park",
			Subsystem: "map",
			Name:      "elements_inserted_total",
			Help:      "Вставленные элементы по видам.",
		}, []string{"kind"}),
		removed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "park",
			Subsystem: "map",
			Name:      "elements_removed_total",
			Help:      "Удаленные элементы по видам.",
		}, []string{"kind"}),
		integrityErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "park",
			Subsystem: "map",
			Name:      "integrity_errors_total",
			Help:      "Тайлы, не прошедшие проверку целостности.",
		}),
		resizes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "park",
			Subsystem: "map",
			Name:      "resizes_total",
			Help:      "Число изменений размера карты.",
		}),
	}
	reg.MustRegister(m.elements, m.inserted, m.removed, m.integrityErrors, m.resizes)
	return m
}

func (m *Metrics) setElements(n int) {
	if m == nil {
		return
	}
	m.elements.Set(float64(n))
}

func (m *Metrics) elementInserted(kind tile.ElementType, total int) {
	if m == nil {
		return
	}
	m.inserted.WithLabelValues(kind.String()).Inc()
	m.elements.Set(float64(total))
}

func (m *Metrics) elementRemoved(kind tile.ElementType, total int) {
	if m == nil {
		return
	}
	m.removed.WithLabelValues(kind.String()).Inc()
	m.elements.Set(float64(total))
}

func (m *Metrics) integrityFailed(tiles int) {
	if m == nil {
		return
	}
	m.integrityErrors.Add(float64(tiles))
}

func (m *Metrics) resized(total int) {
	if m == nil {
		return
	}
	m.resizes.Inc()
	m.elements.Set(float64(total))
}
