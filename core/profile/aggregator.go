package profile

import (
	"context"
	"time"

	"github.com/akif5298/flowstate/core/logger"
	"github.com/akif5298/flowstate/core/model"
	"github.com/akif5298/flowstate/core/storage"
)

const (
	// DefaultCollectTimeout bounds the fan-in wait over the four stores.
	DefaultCollectTimeout = 10 * time.Second
	// DefaultPredictionTimeout bounds the targeted today-predictions fetch.
	DefaultPredictionTimeout = 5 * time.Second

	// collectionWindow is how far back signal history is requested.
	collectionWindow = 30 * 24 * time.Hour
	// predictionHorizon extends the prediction query into the future.
	predictionHorizon = 24 * time.Hour
)

// Aggregator fans out range queries to the four signal stores and merges
// whatever answered within the timeout into a single profile. A store that
// errors or stays silent contributes an empty slice; aggregation itself never
// fails.
type Aggregator struct {
	stores            storage.Stores
	log               logger.Logger
	CollectTimeout    time.Duration
	PredictionTimeout time.Duration
}

// NewAggregator creates an Aggregator with the default timeouts.
func NewAggregator(stores storage.Stores, log logger.Logger) *Aggregator {
	return &Aggregator{
		stores:            stores,
		log:               log,
		CollectTimeout:    DefaultCollectTimeout,
		PredictionTimeout: DefaultPredictionTimeout,
	}
}

// Collect gathers the last 30 days of signal data for the user. Each store is
// queried concurrently into its own result slot; the wait is local, so a slow
// store is abandoned without cancelling its underlying request.
func (a *Aggregator) Collect(ctx context.Context, userID string) *model.UserDataProfile {
	now := time.Now()
	start := now.Add(-collectionWindow)
	profile := model.NewUserDataProfile()

	bio := make(chan []model.BiometricSample, 1)
	pred := make(chan []model.EnergyPrediction, 1)
	typ := make(chan []model.TypingSample, 1)
	react := make(chan []model.ReactionSample, 1)

	go func() {
		s, err := a.stores.Biometric.Range(ctx, userID, start, now)
		if err != nil {
			a.log.Errorf("biometric range query: %v", err)
			s = nil
		}
		bio <- s
	}()
	go func() {
		s, err := a.stores.Prediction.Range(ctx, userID, start, now.Add(predictionHorizon))
		if err != nil {
			a.log.Errorf("prediction range query: %v", err)
			s = nil
		}
		pred <- s
	}()
	go func() {
		s, err := a.stores.Typing.Range(ctx, userID, start, now)
		if err != nil {
			a.log.Errorf("typing range query: %v", err)
			s = nil
		}
		typ <- s
	}()
	go func() {
		s, err := a.stores.Reaction.Range(ctx, userID, start, now)
		if err != nil {
			a.log.Errorf("reaction range query: %v", err)
			s = nil
		}
		react <- s
	}()

	timer := time.NewTimer(a.CollectTimeout)
	defer timer.Stop()

	for pending := 4; pending > 0; {
		select {
		case s := <-bio:
			if s != nil {
				profile.Biometric = s
			}
			bio = nil
			pending--
		case s := <-pred:
			if s != nil {
				profile.EnergyPredictions = s
			}
			pred = nil
			pending--
		case s := <-typ:
			if s != nil {
				profile.Typing = s
			}
			typ = nil
			pending--
		case s := <-react:
			if s != nil {
				profile.Reaction = s
			}
			react = nil
			pending--
		case <-timer.C:
			a.log.Warnf("profile collection timed out with %d source(s) pending, continuing with partial data", pending)
			pending = 0
		}
	}

	a.log.Debugw("profile collected", map[string]any{
		"user_id":     userID,
		"biometric":   len(profile.Biometric),
		"predictions": len(profile.EnergyPredictions),
		"typing":      len(profile.Typing),
		"reaction":    len(profile.Reaction),
	})
	return profile
}

// TodayPredictions returns the energy predictions falling inside today's date
// bounds. In-profile predictions are preferred; only when the profile carries
// none is a targeted fetch issued, bounded by the shorter prediction timeout.
func (a *Aggregator) TodayPredictions(ctx context.Context, userID string, profile *model.UserDataProfile) []model.EnergyPrediction {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	if len(profile.EnergyPredictions) > 0 {
		today := []model.EnergyPrediction{}
		for _, p := range profile.EnergyPredictions {
			if p.Timestamp.After(dayStart) && p.Timestamp.Before(dayEnd) {
				today = append(today, p)
			}
		}
		return today
	}

	ch := make(chan []model.EnergyPrediction, 1)
	go func() {
		s, err := a.stores.Prediction.Range(ctx, userID, dayStart, dayEnd)
		if err != nil {
			a.log.Errorf("today prediction query: %v", err)
			s = nil
		}
		ch <- s
	}()

	timer := time.NewTimer(a.PredictionTimeout)
	defer timer.Stop()
	select {
	case s := <-ch:
		if s == nil {
			return []model.EnergyPrediction{}
		}
		return s
	case <-timer.C:
		a.log.Warnf("today prediction fetch timed out, continuing without predictions")
		return []model.EnergyPrediction{}
	}
}
