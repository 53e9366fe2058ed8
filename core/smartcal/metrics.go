package smartcal

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	generationLatency *prometheus.HistogramVec
	schedulesTotal    *prometheus.CounterVec
	generatorFailures prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.HistogramVec, *prometheus.CounterVec, prometheus.Counter) {
	lat := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schedule_generation_latency_seconds",
			Help:    "Latency of a full schedule generation request",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"strategy"},
	)
	tot := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedules_generated_total",
			Help: "Number of schedules produced, by strategy",
		},
		[]string{"strategy"},
	)
	fail := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "generator_failures_total",
			Help: "Number of external generator calls that fell back to rule-based allocation",
		},
	)
	return lat, tot, fail
}

func init() {
	generationLatency, schedulesTotal, generatorFailures = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers planner metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(generationLatency, schedulesTotal, generatorFailures)
}

// ResetMetrics reinitializes metric collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	generationLatency, schedulesTotal, generatorFailures = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
