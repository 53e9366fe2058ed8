package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akif5298/flowstate/core/model"
	"github.com/akif5298/flowstate/core/storage"
	"github.com/akif5298/flowstate/infra/logger"
)

type fakeBiometricStore struct {
	samples []model.BiometricSample
	err     error
	delay   time.Duration
}

func (f *fakeBiometricStore) Range(ctx context.Context, userID string, start, end time.Time) ([]model.BiometricSample, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.samples, f.err
}

type fakePredictionStore struct {
	predictions []model.EnergyPrediction
	err         error
	delay       time.Duration
	calls       int
	lastStart   time.Time
	lastEnd     time.Time
}

func (f *fakePredictionStore) Range(ctx context.Context, userID string, start, end time.Time) ([]model.EnergyPrediction, error) {
	f.calls++
	f.lastStart, f.lastEnd = start, end
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.predictions, f.err
}

type fakeTypingStore struct {
	samples []model.TypingSample
	err     error
}

func (f *fakeTypingStore) Range(ctx context.Context, userID string, start, end time.Time) ([]model.TypingSample, error) {
	return f.samples, f.err
}

type fakeReactionStore struct {
	samples []model.ReactionSample
	err     error
}

func (f *fakeReactionStore) Range(ctx context.Context, userID string, start, end time.Time) ([]model.ReactionSample, error) {
	return f.samples, f.err
}

func fakeStores() (storage.Stores, *fakeBiometricStore, *fakePredictionStore) {
	bio := &fakeBiometricStore{samples: []model.BiometricSample{{HeartRate: 60}}}
	pred := &fakePredictionStore{predictions: []model.EnergyPrediction{{Timestamp: time.Now(), Level: model.EnergyHigh}}}
	return storage.Stores{
		Biometric:  bio,
		Prediction: pred,
		Typing:     &fakeTypingStore{samples: []model.TypingSample{{WordsPerMinute: 70}}},
		Reaction:   &fakeReactionStore{samples: []model.ReactionSample{{TimeMs: 230}}},
	}, bio, pred
}

func TestCollect_MergesAllSources(t *testing.T) {
	stores, _, _ := fakeStores()
	agg := NewAggregator(stores, logger.NopLogger{})

	profile := agg.Collect(context.Background(), "user-1")
	if len(profile.Biometric) != 1 || len(profile.EnergyPredictions) != 1 ||
		len(profile.Typing) != 1 || len(profile.Reaction) != 1 {
		t.Fatalf("expected all sources merged, got %+v", profile)
	}
}

func TestCollect_StoreErrorDegradesToEmpty(t *testing.T) {
	stores, bio, _ := fakeStores()
	bio.err = errors.New("connection refused")
	bio.samples = nil
	agg := NewAggregator(stores, logger.NopLogger{})

	profile := agg.Collect(context.Background(), "user-1")
	if len(profile.Biometric) != 0 {
		t.Errorf("expected empty biometric slice, got %+v", profile.Biometric)
	}
	if len(profile.EnergyPredictions) != 1 || len(profile.Typing) != 1 || len(profile.Reaction) != 1 {
		t.Errorf("healthy sources must still be merged: %+v", profile)
	}
}

func TestCollect_SlowStoreAbandonedAtTimeout(t *testing.T) {
	stores, bio, _ := fakeStores()
	bio.delay = 500 * time.Millisecond
	agg := NewAggregator(stores, logger.NopLogger{})
	agg.CollectTimeout = 50 * time.Millisecond

	start := time.Now()
	profile := agg.Collect(context.Background(), "user-1")
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Fatalf("collect did not respect timeout, took %v", elapsed)
	}
	if len(profile.Biometric) != 0 {
		t.Errorf("expected slow source abandoned, got %+v", profile.Biometric)
	}
	if len(profile.EnergyPredictions) != 1 {
		t.Errorf("fast sources must still be merged: %+v", profile)
	}
}

func TestTodayPredictions_FiltersProfileWithoutFetching(t *testing.T) {
	stores, _, pred := fakeStores()
	agg := NewAggregator(stores, logger.NopLogger{})

	now := time.Now()
	profile := model.NewUserDataProfile()
	profile.EnergyPredictions = []model.EnergyPrediction{
		{Timestamp: now, Level: model.EnergyHigh},
		{Timestamp: now.AddDate(0, 0, -1), Level: model.EnergyLow},
	}

	today := agg.TodayPredictions(context.Background(), "user-1", profile)
	if len(today) != 1 || today[0].Level != model.EnergyHigh {
		t.Fatalf("expected only today's prediction, got %+v", today)
	}
	if pred.calls != 0 {
		t.Errorf("expected no store fetch when the profile has predictions, got %d calls", pred.calls)
	}
}

func TestTodayPredictions_TargetedFetchOnEmptyProfile(t *testing.T) {
	stores, _, pred := fakeStores()
	agg := NewAggregator(stores, logger.NopLogger{})

	today := agg.TodayPredictions(context.Background(), "user-1", model.NewUserDataProfile())
	if len(today) != 1 {
		t.Fatalf("expected the fetched prediction, got %+v", today)
	}
	if pred.calls != 1 {
		t.Fatalf("expected exactly one targeted fetch, got %d", pred.calls)
	}
	if pred.lastEnd.Sub(pred.lastStart) != 24*time.Hour {
		t.Errorf("expected a one-day query window, got %v - %v", pred.lastStart, pred.lastEnd)
	}
}

func TestTodayPredictions_FetchTimeoutYieldsEmpty(t *testing.T) {
	stores, _, pred := fakeStores()
	pred.delay = 500 * time.Millisecond
	agg := NewAggregator(stores, logger.NopLogger{})
	agg.PredictionTimeout = 50 * time.Millisecond

	today := agg.TodayPredictions(context.Background(), "user-1", model.NewUserDataProfile())
	if len(today) != 0 {
		t.Fatalf("expected empty result on timeout, got %+v", today)
	}
}
