package smartcal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akif5298/flowstate/core/allocator"
	"github.com/akif5298/flowstate/core/calendar"
	"github.com/akif5298/flowstate/core/events"
	"github.com/akif5298/flowstate/core/generator"
	"github.com/akif5298/flowstate/core/logger"
	"github.com/akif5298/flowstate/core/metrics"
	"github.com/akif5298/flowstate/core/model"
	"github.com/akif5298/flowstate/core/pattern"
	"github.com/akif5298/flowstate/core/profile"
	"github.com/akif5298/flowstate/core/reconcile"
	"github.com/akif5298/flowstate/internal/eventbus"
)

const (
	// StrategyGenerator labels schedules produced from generator text.
	StrategyGenerator = "generator"
	// StrategyFallback labels schedules produced by the rule-based allocator.
	StrategyFallback = "fallback"

	fallbackPrefix = "Schedule generated using rule-based optimization (generator unavailable).\n\n"
)

// Planner is the single entry point for schedule generation. It aggregates
// the user's signal profile, asks the external generator for a draft schedule
// and reconciles it, falling back to the rule-based allocator when the
// generator is unavailable. A Planner serializes generation per instance.
type Planner struct {
	aggregator *profile.Aggregator
	calendar   calendar.EventSource
	generator  generator.ScheduleGenerator
	reconciler *reconcile.Reconciler
	log        logger.Logger
	sink       metrics.MetricsSink
	bus        eventbus.EventBus
	mu         sync.Mutex
}

// NewPlanner creates a Planner. The generator may be nil, in which case every
// request takes the rule-based path. The sink and bus may be nil.
func NewPlanner(agg *profile.Aggregator, cal calendar.EventSource, gen generator.ScheduleGenerator, log logger.Logger, sink metrics.MetricsSink, bus eventbus.EventBus) (*Planner, error) {
	if agg == nil || cal == nil || log == nil {
		return nil, fmt.Errorf("smartcal: nil parameter provided to NewPlanner")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Planner{
		aggregator: agg,
		calendar:   cal,
		generator:  gen,
		reconciler: reconcile.New(log),
		log:        log,
		sink:       sink,
		bus:        bus,
	}, nil
}

// GenerateSchedule produces a conflict-free schedule for the rest of today.
// The caller always receives a schedule unless the request itself is invalid
// or the context was cancelled before any data could be collected; partial
// data and generator failures degrade instead of erroring.
func (p *Planner) GenerateSchedule(ctx context.Context, userID string, tasks []model.Task) (model.Schedule, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if userID == "" {
		return model.Schedule{}, fmt.Errorf("smartcal: user id is required")
	}
	requestID := uuid.NewString()
	started := time.Now()
	p.log.Debugw("starting schedule generation", map[string]any{
		"request_id": requestID,
		"user_id":    userID,
		"tasks":      len(tasks),
	})

	prof := p.aggregator.Collect(ctx, userID)
	if err := ctx.Err(); err != nil {
		return model.Schedule{}, fmt.Errorf("collect user data: %w", err)
	}

	now := time.Now()
	existing, err := p.calendar.Events(ctx, userID, now, now.Add(24*time.Hour))
	if err != nil {
		p.log.Errorf("calendar events: %v", err)
		existing = nil
	}
	predictions := p.aggregator.TodayPredictions(ctx, userID, prof)
	sleepInfo := pattern.ExtractSleepInfo(prof)

	if p.generator != nil {
		p.publish(events.StrategyEvent{RequestID: requestID, Action: "generator_attempt"})
		req := generator.Request{
			Predictions:    predictions,
			TaskNames:      taskNames(tasks),
			Tasks:          tasks,
			ExistingEvents: eventStrings(existing),
			SleepInfo:      sleepInfo,
		}
		text, genErr := p.generator.Generate(ctx, req)
		if genErr == nil {
			schedule := p.reconciler.Reconcile(now, text, existing, tasks)
			p.record(requestID, userID, StrategyGenerator, schedule, started)
			return schedule, nil
		}
		p.log.Errorf("generator failed, using rule-based fallback: %v", genErr)
		generatorFailures.Inc()
		p.publish(events.StrategyEvent{RequestID: requestID, Action: "generator_failure", Err: genErr})
	}

	p.publish(events.StrategyEvent{RequestID: requestID, Action: "rule_based_fallback"})
	energy := pattern.AnalyzeEnergy(prof)
	cognitive := pattern.AnalyzeCognitive(prof)
	schedule := allocator.Allocate(now, energy, cognitive, existing, tasks)
	schedule.Summary = fallbackPrefix + schedule.Summary
	p.record(requestID, userID, StrategyFallback, schedule, started)
	return schedule, nil
}

func (p *Planner) record(requestID, userID, strategy string, schedule model.Schedule, started time.Time) {
	elapsed := time.Since(started)
	generationLatency.WithLabelValues(strategy).Observe(elapsed.Seconds())
	schedulesTotal.WithLabelValues(strategy).Inc()
	if err := p.sink.RecordGeneration(metrics.GenerationResult{
		RequestID: requestID,
		UserID:    userID,
		Strategy:  strategy,
		Items:     len(schedule.Items),
		Duration:  elapsed,
		Time:      started,
	}); err != nil {
		p.log.Warnf("record generation metrics: %v", err)
	}
	p.publish(events.ScheduleEvent{
		RequestID: requestID,
		UserID:    userID,
		Items:     len(schedule.Items),
		Fallback:  strategy == StrategyFallback,
	})
	p.log.Infof("schedule generated: strategy=%s items=%d elapsed=%s", strategy, len(schedule.Items), elapsed)
}

func (p *Planner) publish(e eventbus.Event) {
	if p.bus != nil {
		p.bus.Publish(e)
	}
}

func taskNames(tasks []model.Task) []string {
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Name
	}
	return names
}

func eventStrings(events []model.ExistingEvent) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.PromptString()
	}
	return out
}
