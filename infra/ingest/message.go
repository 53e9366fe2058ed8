package ingest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/akif5298/flowstate/core/model"
)

// Sample kinds carried on the ingest topics.
const (
	KindBiometric = "biometric"
	KindTyping    = "typing"
	KindReaction  = "reaction"
)

// envelope is the JSON payload published by collection devices.
type envelope struct {
	UserID         string    `json:"user_id"`
	RecordedAt     time.Time `json:"recorded_at"`
	HeartRate      float64   `json:"heart_rate,omitempty"`
	SleepQuality   *float64  `json:"sleep_quality,omitempty"`
	SleepMinutes   *int      `json:"sleep_minutes,omitempty"`
	WordsPerMinute int       `json:"words_per_minute,omitempty"`
	Accuracy       float64   `json:"accuracy,omitempty"`
	TimeMs         float64   `json:"time_ms,omitempty"`
	AverageMs      *float64  `json:"average_ms,omitempty"`
}

func decodeEnvelope(payload []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return envelope{}, fmt.Errorf("decode sample payload: %w", err)
	}
	if env.UserID == "" {
		return envelope{}, fmt.Errorf("decode sample payload: user_id is required")
	}
	if env.RecordedAt.IsZero() {
		env.RecordedAt = time.Now()
	}
	return env, nil
}

// DecodeBiometric parses a biometric sample message.
func DecodeBiometric(payload []byte) (string, model.BiometricSample, error) {
	env, err := decodeEnvelope(payload)
	if err != nil {
		return "", model.BiometricSample{}, err
	}
	return env.UserID, model.BiometricSample{
		Timestamp:    env.RecordedAt,
		HeartRate:    env.HeartRate,
		SleepQuality: env.SleepQuality,
		SleepMinutes: env.SleepMinutes,
	}, nil
}

// DecodeTyping parses a typing-speed sample message.
func DecodeTyping(payload []byte) (string, model.TypingSample, error) {
	env, err := decodeEnvelope(payload)
	if err != nil {
		return "", model.TypingSample{}, err
	}
	return env.UserID, model.TypingSample{
		Timestamp:      env.RecordedAt,
		WordsPerMinute: env.WordsPerMinute,
		Accuracy:       env.Accuracy,
	}, nil
}

// DecodeReaction parses a reaction-time sample message.
func DecodeReaction(payload []byte) (string, model.ReactionSample, error) {
	env, err := decodeEnvelope(payload)
	if err != nil {
		return "", model.ReactionSample{}, err
	}
	return env.UserID, model.ReactionSample{
		Timestamp: env.RecordedAt,
		TimeMs:    env.TimeMs,
		AverageMs: env.AverageMs,
	}, nil
}
