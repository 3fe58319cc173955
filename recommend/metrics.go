package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts recommendation traffic. All counters are safe for concurrent use.
type Metrics struct {
	Requests       prometheus.Counter
	Empty          prometheus.Counter
	UnknownColumns prometheus.Counter
	Charts         *prometheus.CounterVec
}

// NewMetrics registers the recommendation counters on reg under namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "The total number of processed recommendation requests",
		}),
		Empty: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_empty_total",
			Help:      "The total number of requests with no eligible chart",
		}),
		UnknownColumns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_columns_total",
			Help:      "The total number of selected columns missing from the dataset",
		}),
		Charts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charts_recommended_total",
			Help:      "The total number of times each chart type was recommended",
		}, []string{"chart"}),
	}
}

func (m *Metrics) observe(r Report, unknown int) {
	if m == nil {
		return
	}
	m.Requests.Inc()
	if unknown > 0 {
		m.UnknownColumns.Add(float64(unknown))
	}
	if len(r.Recommendations) == 0 {
		m.Empty.Inc()
	}
	for _, rec := range r.Recommendations {
		m.Charts.WithLabelValues(string(rec.Chart.ID)).Inc()
	}
}
