package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/akif5298/flowstate/core/metrics"
)

// PromSink records schedule generation events in Prometheus metrics.
type PromSink struct {
	generations *prometheus.CounterVec
	items       *prometheus.HistogramVec
}

// NewPromSink registers generation metrics on the default Prometheus
// registerer. The Prometheus server should be started separately with
// StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	generations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_generation_events_total",
		Help: "Total number of schedule generation events",
	}, []string{"strategy"})
	items := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_items_per_generation",
		Help:    "Number of items in each produced schedule",
		Buckets: prometheus.LinearBuckets(0, 2, 10),
	}, []string{"strategy"})

	if err := reg.Register(generations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			generations = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(items); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			items = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	return &PromSink{generations: generations, items: items}, nil
}

// RecordGeneration increments the per-strategy counters.
func (s *PromSink) RecordGeneration(res coremetrics.GenerationResult) error {
	s.generations.WithLabelValues(res.Strategy).Inc()
	s.items.WithLabelValues(res.Strategy).Observe(float64(res.Items))
	return nil
}

// StartPromServer exposes /metrics on the given port. It blocks.
func StartPromServer(port string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}
