package model

import "time"

// EnergyLevel is the ordinal energy classification used across predictions
// and task requirements.
type EnergyLevel int

const (
	EnergyUnknown EnergyLevel = iota
	EnergyLow
	EnergyMedium
	EnergyHigh
)

// String returns a human-readable representation of the energy level.
func (l EnergyLevel) String() string {
	switch l {
	case EnergyHigh:
		return "HIGH"
	case EnergyMedium:
		return "MEDIUM"
	case EnergyLow:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// ParseEnergyLevel maps the wire representation to an EnergyLevel.
// Unrecognized values map to EnergyUnknown.
func ParseEnergyLevel(s string) EnergyLevel {
	switch s {
	case "HIGH", "high":
		return EnergyHigh
	case "MEDIUM", "medium":
		return EnergyMedium
	case "LOW", "low":
		return EnergyLow
	default:
		return EnergyUnknown
	}
}

// Score maps the level to the ordinal used by the pattern analyzer.
// Unknown levels score as medium.
func (l EnergyLevel) Score() float64 {
	switch l {
	case EnergyHigh:
		return 3
	case EnergyMedium:
		return 2
	case EnergyLow:
		return 1
	default:
		return 2
	}
}

// BiometricSample is a single biometric reading. Sleep fields are optional;
// a nil pointer means the source did not report that field.
type BiometricSample struct {
	Timestamp    time.Time `json:"timestamp"`
	HeartRate    float64   `json:"heart_rate"`
	SleepQuality *float64  `json:"sleep_quality,omitempty"` // [0,1]
	SleepMinutes *int      `json:"sleep_minutes,omitempty"`
}

// EnergyPrediction is an opaque labeled forecast for a point in time.
type EnergyPrediction struct {
	Timestamp  time.Time   `json:"timestamp"`
	Level      EnergyLevel `json:"level"`
	Confidence float64     `json:"confidence"` // [0,1]
}

// TypingSample records one typing-speed test.
type TypingSample struct {
	Timestamp      time.Time `json:"timestamp"`
	WordsPerMinute int       `json:"words_per_minute"`
	Accuracy       float64   `json:"accuracy"`
}

// ReactionSample records one reaction-time test. AverageMs is preferred when
// present, falling back to the single-trial value.
type ReactionSample struct {
	Timestamp time.Time `json:"timestamp"`
	TimeMs    float64   `json:"time_ms"`
	AverageMs *float64  `json:"average_ms,omitempty"`
}

// UserDataProfile aggregates one collection cycle of signal data. All slices
// default to empty so a source that timed out degrades to no data instead of
// failing the request. The profile lives for a single schedule generation.
type UserDataProfile struct {
	Biometric         []BiometricSample
	EnergyPredictions []EnergyPrediction
	Typing            []TypingSample
	Reaction          []ReactionSample
}

// NewUserDataProfile returns a profile with all sources empty.
func NewUserDataProfile() *UserDataProfile {
	return &UserDataProfile{
		Biometric:         []BiometricSample{},
		EnergyPredictions: []EnergyPrediction{},
		Typing:            []TypingSample{},
		Reaction:          []ReactionSample{},
	}
}

// EnergyPatternSummary is the per-request reduction of energy predictions.
type EnergyPatternSummary struct {
	PeakHours       []int   // up to 3 hours of day, best first
	LowHours        []int   // up to 3 hours of day, worst first
	AvgSleepQuality float64 // [0,1]
	AvgSleepMinutes float64
}

// CognitivePatternSummary is the per-request reduction of cognitive samples.
type CognitivePatternSummary struct {
	PeakCognitiveHours []int
	AvgReactionTimeMs  float64
}
