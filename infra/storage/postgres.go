// Package storage provides the PostgreSQL-backed implementations of the
// signal stores and the calendar event source. These are thin range-query
// wrappers; all scheduling logic lives in core.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/akif5298/flowstate/core/model"
	corestorage "github.com/akif5298/flowstate/core/storage"
)

// Config holds the Postgres connection settings.
type Config struct {
	DSN          string `json:"dsn"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 10
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 2
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("storage: dsn is required")
	}
	return nil
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewStores bundles the four Postgres-backed signal stores over one pool.
func NewStores(db *sql.DB) corestorage.Stores {
	return corestorage.Stores{
		Biometric:  &BiometricStore{db: db},
		Prediction: &PredictionStore{db: db},
		Typing:     &TypingStore{db: db},
		Reaction:   &ReactionStore{db: db},
	}
}

// BiometricStore serves biometric samples from the biometric_samples table.
type BiometricStore struct {
	db *sql.DB
}

// Range returns samples in [start, end] ordered by timestamp.
func (s *BiometricStore) Range(ctx context.Context, userID string, start, end time.Time) ([]model.BiometricSample, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT recorded_at, heart_rate, sleep_quality, sleep_minutes
		 FROM biometric_samples
		 WHERE user_id = $1 AND recorded_at BETWEEN $2 AND $3
		 ORDER BY recorded_at`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query biometric samples: %w", err)
	}
	defer rows.Close()

	var out []model.BiometricSample
	for rows.Next() {
		var b model.BiometricSample
		var quality sql.NullFloat64
		var minutes sql.NullInt64
		if err := rows.Scan(&b.Timestamp, &b.HeartRate, &quality, &minutes); err != nil {
			return nil, fmt.Errorf("scan biometric sample: %w", err)
		}
		if quality.Valid {
			q := quality.Float64
			b.SleepQuality = &q
		}
		if minutes.Valid {
			m := int(minutes.Int64)
			b.SleepMinutes = &m
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// PredictionStore serves energy predictions from the energy_predictions table.
type PredictionStore struct {
	db *sql.DB
}

// Range returns predictions in [start, end] ordered by timestamp.
func (s *PredictionStore) Range(ctx context.Context, userID string, start, end time.Time) ([]model.EnergyPrediction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT predicted_at, level, confidence
		 FROM energy_predictions
		 WHERE user_id = $1 AND predicted_at BETWEEN $2 AND $3
		 ORDER BY predicted_at`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query energy predictions: %w", err)
	}
	defer rows.Close()

	var out []model.EnergyPrediction
	for rows.Next() {
		var p model.EnergyPrediction
		var level string
		if err := rows.Scan(&p.Timestamp, &level, &p.Confidence); err != nil {
			return nil, fmt.Errorf("scan energy prediction: %w", err)
		}
		p.Level = model.ParseEnergyLevel(level)
		out = append(out, p)
	}
	return out, rows.Err()
}

// TypingStore serves typing-speed samples from the typing_samples table.
type TypingStore struct {
	db *sql.DB
}

// Range returns samples in [start, end] ordered by timestamp.
func (s *TypingStore) Range(ctx context.Context, userID string, start, end time.Time) ([]model.TypingSample, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT recorded_at, words_per_minute, accuracy
		 FROM typing_samples
		 WHERE user_id = $1 AND recorded_at BETWEEN $2 AND $3
		 ORDER BY recorded_at`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query typing samples: %w", err)
	}
	defer rows.Close()

	var out []model.TypingSample
	for rows.Next() {
		var t model.TypingSample
		if err := rows.Scan(&t.Timestamp, &t.WordsPerMinute, &t.Accuracy); err != nil {
			return nil, fmt.Errorf("scan typing sample: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ReactionStore serves reaction-time samples from the reaction_samples table.
type ReactionStore struct {
	db *sql.DB
}

// Range returns samples in [start, end] ordered by timestamp.
func (s *ReactionStore) Range(ctx context.Context, userID string, start, end time.Time) ([]model.ReactionSample, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT recorded_at, time_ms, average_ms
		 FROM reaction_samples
		 WHERE user_id = $1 AND recorded_at BETWEEN $2 AND $3
		 ORDER BY recorded_at`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query reaction samples: %w", err)
	}
	defer rows.Close()

	var out []model.ReactionSample
	for rows.Next() {
		var r model.ReactionSample
		var avg sql.NullFloat64
		if err := rows.Scan(&r.Timestamp, &r.TimeMs, &avg); err != nil {
			return nil, fmt.Errorf("scan reaction sample: %w", err)
		}
		if avg.Valid {
			a := avg.Float64
			r.AverageMs = &a
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
