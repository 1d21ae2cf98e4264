package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	objtreeNamespace = "objtree"
	serdeSubsystem   = "serde"

	directionLabelName = "direction"
	resultLabelName    = "result"
	pointerLabelName   = "pointer"
)

// Directions and pointer kinds used as label values.
const (
	DirectionWrite = "write"
	DirectionRead  = "read"

	PointerOwned  = "owned"
	PointerLink   = "link"
	PointerShared = "shared"
	PointerNil    = "nil"
)

// buckets are pass durations in milliseconds: [0.01 0.04 ... 2621.44].
var buckets = prometheus.ExponentialBuckets(0.01, 4, 10)

type Metrics struct {
	Passes   *prometheus.CounterVec
	Nodes    *prometheus.CounterVec
	Pointers *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		Passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: objtreeNamespace,
				Subsystem: serdeSubsystem,
				Name:      "passes_total",
				Help:      "number of finished passes by direction and result",
			}, []string{directionLabelName, resultLabelName}),

		Nodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: objtreeNamespace,
				Subsystem: serdeSubsystem,
				Name:      "nodes_total",
				Help:      "number of tree nodes created or entered",
			}, []string{directionLabelName}),

		Pointers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: objtreeNamespace,
				Subsystem: serdeSubsystem,
				Name:      "pointers_total",
				Help:      "number of pointer nodes by ownership",
			}, []string{directionLabelName, pointerLabelName}),

		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: objtreeNamespace,
				Subsystem: serdeSubsystem,
				Name:      "pass_duration_milliseconds",
				Help:      "pass duration in milliseconds",
				Buckets:   buckets,
			}, []string{directionLabelName}),
	}
}

// Register adds every collector to r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Passes, m.Nodes, m.Pointers, m.Duration} {
		if err := r.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// ObservePass records one finished pass.
func (m *Metrics) ObservePass(direction string, nodes int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}

	m.Passes.WithLabelValues(direction, result).Inc()
	m.Nodes.WithLabelValues(direction).Add(float64(nodes))
	m.Duration.WithLabelValues(direction).Observe(float64(elapsed.Microseconds()) / 1000)
}

func (m *Metrics) CountPointer(direction, kind string) {
	if m == nil {
		return
	}

	m.Pointers.WithLabelValues(direction, kind).Inc()
}
