// Package app wires configuration, storage, ingest and the planner into a
// runnable service.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akif5298/flowstate/config"
	coregen "github.com/akif5298/flowstate/core/generator"
	coremetrics "github.com/akif5298/flowstate/core/metrics"
	"github.com/akif5298/flowstate/core/model"
	"github.com/akif5298/flowstate/core/profile"
	"github.com/akif5298/flowstate/core/smartcal"
	"github.com/akif5298/flowstate/infra/generator"
	"github.com/akif5298/flowstate/infra/ingest"
	"github.com/akif5298/flowstate/infra/logger"
	"github.com/akif5298/flowstate/infra/metrics"
	"github.com/akif5298/flowstate/infra/storage"
	"github.com/akif5298/flowstate/internal/eventbus"
)

// Service orchestrates the schedule planner and the sample ingest bridge.
type Service struct {
	Planner     *smartcal.Planner
	Collector   *ingest.Collector
	db          *sql.DB
	bus         eventbus.EventBus
	log         logger.Logger
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration. The ingest collector is only
// created when a broker is configured; the Gemini generator is only created
// when an API key is configured, otherwise every request takes the rule-based
// path.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	db, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	stores := storage.NewStores(db)
	cal := storage.NewCalendarSource(db)
	agg := profile.NewAggregator(stores, logger.New("profile"))

	var gen *generator.GeminiGenerator
	if cfg.Generator.APIKey != "" {
		gen, err = generator.NewGeminiGenerator(ctx, cfg.Generator, logger.New("gemini"))
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("gemini generator: %w", err)
		}
	} else {
		logg.Warnf("no generator api key configured, schedules will use the rule-based path only")
	}

	var sinks []coremetrics.MetricsSink
	promEnabled := cfg.Metrics.PrometheusEnabled
	promPort := cfg.Metrics.PrometheusPort
	if promEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.MetricsSink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	var schedGen coregen.ScheduleGenerator
	if gen != nil {
		schedGen = gen
	}
	planner, err := smartcal.NewPlanner(agg, cal, schedGen, logger.New("planner"), sink, bus)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("planner: %w", err)
	}

	svc := &Service{
		Planner:     planner,
		db:          db,
		bus:         bus,
		log:         logg,
		promEnabled: promEnabled,
		promPort:    promPort,
	}
	if cfg.Ingest.Broker != "" {
		collector, err := ingest.NewCollector(cfg.Ingest, storage.NewWriter(db), logger.New("ingest"))
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ingest collector: %w", err)
		}
		svc.Collector = collector
	}
	return svc, nil
}

// GenerateSchedule produces a schedule for the user via the planner.
func (s *Service) GenerateSchedule(ctx context.Context, userID string, tasks []model.Task) (model.Schedule, error) {
	return s.Planner.GenerateSchedule(ctx, userID, tasks)
}

// Run starts the ingest bridge and the metrics endpoint, then blocks until
// the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.Collector != nil {
		go func() {
			if err := s.Collector.Run(ctx); err != nil {
				s.log.Errorf("ingest collector: %v", err)
			}
		}()
	}
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	<-ctx.Done()
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return s.db.Close()
}
