package pattern

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/akif5298/flowstate/core/model"
)

const (
	defaultSleepQuality   = 0.7
	defaultSleepMinutes   = 480.0
	defaultReactionTimeMs = 250.0

	// topHours caps the number of peak/low hours reported.
	topHours = 3
)

// AnalyzeEnergy reduces the profile's energy predictions into peak and low
// hours of day plus sleep averages. Pure and total: an empty profile yields
// empty hour sets and the documented defaults.
func AnalyzeEnergy(profile *model.UserDataProfile) model.EnergyPatternSummary {
	summary := model.EnergyPatternSummary{
		PeakHours:       []int{},
		LowHours:        []int{},
		AvgSleepQuality: defaultSleepQuality,
		AvgSleepMinutes: defaultSleepMinutes,
	}

	scoresByHour := map[int][]float64{}
	for _, p := range profile.EnergyPredictions {
		h := p.Timestamp.Hour()
		scoresByHour[h] = append(scoresByHour[h], p.Level.Score())
	}
	ranked := rankHoursByMean(scoresByHour)

	for i := 0; i < len(ranked) && i < topHours; i++ {
		summary.PeakHours = append(summary.PeakHours, ranked[i].hour)
	}
	// Low hours are read from the tail of the same descending ranking; ties
	// keep whatever order the descending sort produced.
	for i := len(ranked) - 1; i >= 0 && i >= len(ranked)-topHours; i-- {
		summary.LowHours = append(summary.LowHours, ranked[i].hour)
	}

	if quality := meanOf(profile.Biometric, func(b model.BiometricSample) (float64, bool) {
		if b.SleepQuality == nil {
			return 0, false
		}
		return *b.SleepQuality, true
	}); !math.IsNaN(quality) {
		summary.AvgSleepQuality = quality
	}
	if minutes := meanOf(profile.Biometric, func(b model.BiometricSample) (float64, bool) {
		if b.SleepMinutes == nil {
			return 0, false
		}
		return float64(*b.SleepMinutes), true
	}); !math.IsNaN(minutes) {
		summary.AvgSleepMinutes = minutes
	}
	return summary
}

// AnalyzeCognitive reduces typing and reaction samples into peak cognitive
// hours and an average reaction time.
func AnalyzeCognitive(profile *model.UserDataProfile) model.CognitivePatternSummary {
	summary := model.CognitivePatternSummary{
		PeakCognitiveHours: []int{},
		AvgReactionTimeMs:  defaultReactionTimeMs,
	}

	wpmByHour := map[int][]float64{}
	for _, t := range profile.Typing {
		h := t.Timestamp.Hour()
		wpmByHour[h] = append(wpmByHour[h], float64(t.WordsPerMinute))
	}
	ranked := rankHoursByMean(wpmByHour)
	for i := 0; i < len(ranked) && i < topHours; i++ {
		summary.PeakCognitiveHours = append(summary.PeakCognitiveHours, ranked[i].hour)
	}

	if rt := meanOf(profile.Reaction, func(r model.ReactionSample) (float64, bool) {
		if r.AverageMs != nil {
			return *r.AverageMs, true
		}
		return r.TimeMs, true
	}); !math.IsNaN(rt) {
		summary.AvgReactionTimeMs = rt
	}
	return summary
}

type hourMean struct {
	hour int
	mean float64
}

// rankHoursByMean computes the per-hour mean and sorts descending by mean.
// Hours with equal means keep ascending hour order so results are stable.
func rankHoursByMean(byHour map[int][]float64) []hourMean {
	ranked := make([]hourMean, 0, len(byHour))
	for h, vals := range byHour {
		ranked = append(ranked, hourMean{hour: h, mean: stat.Mean(vals, nil)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].mean != ranked[j].mean {
			return ranked[i].mean > ranked[j].mean
		}
		return ranked[i].hour < ranked[j].hour
	})
	return ranked
}

// meanOf averages the values selected from samples, returning NaN when no
// sample carries the field so callers can keep their default.
func meanOf[T any](samples []T, sel func(T) (float64, bool)) float64 {
	var vals []float64
	for _, s := range samples {
		if v, ok := sel(s); ok {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}
