package smartcal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/akif5298/flowstate/core/events"
	"github.com/akif5298/flowstate/core/generator"
	"github.com/akif5298/flowstate/core/metrics"
	"github.com/akif5298/flowstate/core/model"
	"github.com/akif5298/flowstate/core/profile"
	"github.com/akif5298/flowstate/core/storage"
	"github.com/akif5298/flowstate/infra/logger"
	"github.com/akif5298/flowstate/internal/eventbus"
)

type emptyBiometricStore struct{}

func (emptyBiometricStore) Range(context.Context, string, time.Time, time.Time) ([]model.BiometricSample, error) {
	return nil, nil
}

type emptyPredictionStore struct{}

func (emptyPredictionStore) Range(context.Context, string, time.Time, time.Time) ([]model.EnergyPrediction, error) {
	return nil, nil
}

type emptyTypingStore struct{}

func (emptyTypingStore) Range(context.Context, string, time.Time, time.Time) ([]model.TypingSample, error) {
	return nil, nil
}

type emptyReactionStore struct{}

func (emptyReactionStore) Range(context.Context, string, time.Time, time.Time) ([]model.ReactionSample, error) {
	return nil, nil
}

func testAggregator() *profile.Aggregator {
	return profile.NewAggregator(storage.Stores{
		Biometric:  emptyBiometricStore{},
		Prediction: emptyPredictionStore{},
		Typing:     emptyTypingStore{},
		Reaction:   emptyReactionStore{},
	}, logger.NopLogger{})
}

type fakeCalendar struct {
	events []model.ExistingEvent
	err    error
}

func (f *fakeCalendar) Events(ctx context.Context, userID string, start, end time.Time) ([]model.ExistingEvent, error) {
	return f.events, f.err
}

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(ctx context.Context, req generator.Request) (string, error) {
	return f.text, f.err
}

type recordingSink struct {
	results []metrics.GenerationResult
}

func (s *recordingSink) RecordGeneration(res metrics.GenerationResult) error {
	s.results = append(s.results, res)
	return nil
}

func drain(ch <-chan eventbus.Event) []eventbus.Event {
	var out []eventbus.Event
	for {
		select {
		case e := <-ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

func strategyActions(evs []eventbus.Event) []string {
	var out []string
	for _, e := range evs {
		if se, ok := e.(events.StrategyEvent); ok {
			out = append(out, se.Action)
		}
	}
	return out
}

func TestGenerateSchedule_GeneratorPath(t *testing.T) {
	sink := &recordingSink{}
	gen := &fakeGenerator{text: "9:00 AM - Write report"}
	planner, err := NewPlanner(testAggregator(), &fakeCalendar{}, gen, logger.NopLogger{}, sink, nil)
	if err != nil {
		t.Fatalf("planner: %v", err)
	}

	tasks := []model.Task{{Name: "Write report", Requirement: model.EnergyHigh}}
	schedule, err := planner.GenerateSchedule(context.Background(), "user-1", tasks)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(schedule.Items) != 1 || schedule.Items[0].Title != "Write report" {
		t.Fatalf("expected the generated task, got %+v", schedule.Items)
	}
	if strings.HasPrefix(schedule.Summary, fallbackPrefix) {
		t.Errorf("generator path must not carry the fallback prefix:\n%s", schedule.Summary)
	}
	if len(sink.results) != 1 || sink.results[0].Strategy != StrategyGenerator {
		t.Errorf("expected one generator record, got %+v", sink.results)
	}
}

func TestGenerateSchedule_FallsBackOnGeneratorError(t *testing.T) {
	sink := &recordingSink{}
	bus := eventbus.New()
	sub := bus.Subscribe()
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	planner, err := NewPlanner(testAggregator(), &fakeCalendar{}, gen, logger.NopLogger{}, sink, bus)
	if err != nil {
		t.Fatalf("planner: %v", err)
	}

	tasks := []model.Task{{Name: "Write report", Requirement: model.EnergyHigh}}
	schedule, err := planner.GenerateSchedule(context.Background(), "user-1", tasks)
	if err != nil {
		t.Fatalf("expected graceful fallback, got %v", err)
	}
	if !strings.HasPrefix(schedule.Summary, fallbackPrefix) {
		t.Errorf("expected fallback prefix, got:\n%s", schedule.Summary)
	}
	if len(sink.results) != 1 || sink.results[0].Strategy != StrategyFallback {
		t.Errorf("expected one fallback record, got %+v", sink.results)
	}

	actions := strategyActions(drain(sub))
	want := []string{"generator_attempt", "generator_failure", "rule_based_fallback"}
	if len(actions) != len(want) {
		t.Fatalf("expected actions %v, got %v", want, actions)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Errorf("action[%d]: expected %q, got %q", i, want[i], actions[i])
		}
	}
}

func TestGenerateSchedule_NilGeneratorUsesRuleBasedPath(t *testing.T) {
	bus := eventbus.New()
	sub := bus.Subscribe()
	planner, err := NewPlanner(testAggregator(), &fakeCalendar{}, nil, logger.NopLogger{}, nil, bus)
	if err != nil {
		t.Fatalf("planner: %v", err)
	}

	schedule, err := planner.GenerateSchedule(context.Background(), "user-1", nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(schedule.Summary, fallbackPrefix) {
		t.Errorf("expected fallback prefix, got:\n%s", schedule.Summary)
	}
	actions := strategyActions(drain(sub))
	if len(actions) != 1 || actions[0] != "rule_based_fallback" {
		t.Errorf("expected only the fallback event, got %v", actions)
	}
}

func TestGenerateSchedule_RequiresUserID(t *testing.T) {
	planner, err := NewPlanner(testAggregator(), &fakeCalendar{}, nil, logger.NopLogger{}, nil, nil)
	if err != nil {
		t.Fatalf("planner: %v", err)
	}
	if _, err := planner.GenerateSchedule(context.Background(), "", nil); err == nil {
		t.Fatal("expected an error for a missing user id")
	}
}

func TestGenerateSchedule_CancelledContext(t *testing.T) {
	planner, err := NewPlanner(testAggregator(), &fakeCalendar{}, nil, logger.NopLogger{}, nil, nil)
	if err != nil {
		t.Fatalf("planner: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := planner.GenerateSchedule(ctx, "user-1", nil); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}

func TestGenerateSchedule_CalendarErrorDegrades(t *testing.T) {
	cal := &fakeCalendar{err: errors.New("calendar unavailable")}
	planner, err := NewPlanner(testAggregator(), cal, nil, logger.NopLogger{}, nil, nil)
	if err != nil {
		t.Fatalf("planner: %v", err)
	}
	schedule, err := planner.GenerateSchedule(context.Background(), "user-1",
		[]model.Task{{Name: "Write report", Requirement: model.EnergyMedium}})
	if err != nil {
		t.Fatalf("expected degraded schedule, got %v", err)
	}
	if !strings.HasPrefix(schedule.Summary, fallbackPrefix) {
		t.Errorf("expected fallback prefix, got:\n%s", schedule.Summary)
	}
}

func TestNewPlanner_NilParameters(t *testing.T) {
	if _, err := NewPlanner(nil, &fakeCalendar{}, nil, logger.NopLogger{}, nil, nil); err == nil {
		t.Error("expected error for nil aggregator")
	}
	if _, err := NewPlanner(testAggregator(), nil, nil, logger.NopLogger{}, nil, nil); err == nil {
		t.Error("expected error for nil calendar")
	}
	if _, err := NewPlanner(testAggregator(), &fakeCalendar{}, nil, nil, nil, nil); err == nil {
		t.Error("expected error for nil logger")
	}
}
