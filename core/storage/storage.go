package storage

import (
	"context"
	"time"

	"github.com/akif5298/flowstate/core/model"
)

// The four signal stores are independent collaborators. Each exposes a range
// query over one sample kind; the aggregator treats a store that errors or
// does not answer in time as having returned no samples.

// BiometricStore serves biometric samples.
type BiometricStore interface {
	Range(ctx context.Context, userID string, start, end time.Time) ([]model.BiometricSample, error)
}

// PredictionStore serves energy-level predictions.
type PredictionStore interface {
	Range(ctx context.Context, userID string, start, end time.Time) ([]model.EnergyPrediction, error)
}

// TypingStore serves typing-speed samples.
type TypingStore interface {
	Range(ctx context.Context, userID string, start, end time.Time) ([]model.TypingSample, error)
}

// ReactionStore serves reaction-time samples.
type ReactionStore interface {
	Range(ctx context.Context, userID string, start, end time.Time) ([]model.ReactionSample, error)
}

// Stores bundles the four signal stores consumed by the profile aggregator.
type Stores struct {
	Biometric  BiometricStore
	Prediction PredictionStore
	Typing     TypingStore
	Reaction   ReactionStore
}
