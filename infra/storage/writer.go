package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akif5298/flowstate/core/model"
)

// Writer persists incoming samples. It backs the MQTT ingest bridge; the
// scheduling core itself never writes.
type Writer struct {
	db *sql.DB
}

// NewWriter creates a Writer over the shared pool.
func NewWriter(db *sql.DB) *Writer {
	return &Writer{db: db}
}

// InsertBiometric stores one biometric sample.
func (w *Writer) InsertBiometric(ctx context.Context, userID string, s model.BiometricSample) error {
	var quality sql.NullFloat64
	if s.SleepQuality != nil {
		quality = sql.NullFloat64{Float64: *s.SleepQuality, Valid: true}
	}
	var minutes sql.NullInt64
	if s.SleepMinutes != nil {
		minutes = sql.NullInt64{Int64: int64(*s.SleepMinutes), Valid: true}
	}
	_, err := w.db.ExecContext(ctx,
		`INSERT INTO biometric_samples (user_id, recorded_at, heart_rate, sleep_quality, sleep_minutes)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, s.Timestamp, s.HeartRate, quality, minutes)
	if err != nil {
		return fmt.Errorf("insert biometric sample: %w", err)
	}
	return nil
}

// InsertTyping stores one typing-speed sample.
func (w *Writer) InsertTyping(ctx context.Context, userID string, s model.TypingSample) error {
	_, err := w.db.ExecContext(ctx,
		`INSERT INTO typing_samples (user_id, recorded_at, words_per_minute, accuracy)
		 VALUES ($1, $2, $3, $4)`,
		userID, s.Timestamp, s.WordsPerMinute, s.Accuracy)
	if err != nil {
		return fmt.Errorf("insert typing sample: %w", err)
	}
	return nil
}

// InsertReaction stores one reaction-time sample.
func (w *Writer) InsertReaction(ctx context.Context, userID string, s model.ReactionSample) error {
	var avg sql.NullFloat64
	if s.AverageMs != nil {
		avg = sql.NullFloat64{Float64: *s.AverageMs, Valid: true}
	}
	_, err := w.db.ExecContext(ctx,
		`INSERT INTO reaction_samples (user_id, recorded_at, time_ms, average_ms)
		 VALUES ($1, $2, $3, $4)`,
		userID, s.Timestamp, s.TimeMs, avg)
	if err != nil {
		return fmt.Errorf("insert reaction sample: %w", err)
	}
	return nil
}
