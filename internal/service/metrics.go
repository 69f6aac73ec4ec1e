package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the domain counters of the registry service.
// A nil *Metrics records nothing.
type Metrics struct {
	datasetsCreated prometheus.Counter
	operationErrors *prometheus.CounterVec
}

// NewMetrics creates the service counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		datasetsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "datasets_created_total",
				Help: "Total number of datasets registered.",
			},
		),
		operationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dataset_operation_errors_total",
				Help: "Total number of failed registry operations by operation and error code.",
			},
			[]string{"operation", "code"},
		),
	}

	if err := reg.Register(m.datasetsCreated); err != nil {
		return nil, err
	}
	if err := reg.Register(m.operationErrors); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observeCreated() {
	if m == nil {
		return
	}
	m.datasetsCreated.Inc()
}

func (m *Metrics) observeError(operation string, err error) {
	if m == nil || err == nil {
		return
	}
	m.operationErrors.WithLabelValues(operation, ErrorCode(err)).Inc()
}
