package ingest

import (
	"testing"
	"time"
)

func TestDecodeBiometric(t *testing.T) {
	payload := []byte(`{"user_id":"u1","recorded_at":"2026-08-29T07:00:00Z","heart_rate":58,"sleep_quality":0.85,"sleep_minutes":450}`)
	userID, sample, err := DecodeBiometric(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if userID != "u1" {
		t.Errorf("expected user u1, got %q", userID)
	}
	if sample.HeartRate != 58 {
		t.Errorf("expected heart rate 58, got %v", sample.HeartRate)
	}
	if sample.SleepQuality == nil || *sample.SleepQuality != 0.85 {
		t.Errorf("expected sleep quality 0.85, got %v", sample.SleepQuality)
	}
	if sample.SleepMinutes == nil || *sample.SleepMinutes != 450 {
		t.Errorf("expected sleep minutes 450, got %v", sample.SleepMinutes)
	}
	if !sample.Timestamp.Equal(time.Date(2026, 8, 29, 7, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected timestamp %v", sample.Timestamp)
	}
}

func TestDecodeBiometric_OptionalFieldsStayNil(t *testing.T) {
	_, sample, err := DecodeBiometric([]byte(`{"user_id":"u1","heart_rate":60}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sample.SleepQuality != nil || sample.SleepMinutes != nil {
		t.Errorf("expected nil sleep fields, got %v %v", sample.SleepQuality, sample.SleepMinutes)
	}
}

func TestDecode_MissingUserID(t *testing.T) {
	if _, _, err := DecodeTyping([]byte(`{"words_per_minute":70}`)); err == nil {
		t.Fatal("expected an error for a missing user_id")
	}
}

func TestDecode_InvalidJSON(t *testing.T) {
	if _, _, err := DecodeReaction([]byte(`{`)); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestDecode_MissingTimestampDefaultsToNow(t *testing.T) {
	before := time.Now()
	_, sample, err := DecodeTyping([]byte(`{"user_id":"u1","words_per_minute":70,"accuracy":0.97}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sample.Timestamp.Before(before) || sample.Timestamp.After(time.Now()) {
		t.Errorf("expected timestamp defaulted to now, got %v", sample.Timestamp)
	}
	if sample.WordsPerMinute != 70 || sample.Accuracy != 0.97 {
		t.Errorf("unexpected sample %+v", sample)
	}
}

func TestDecodeReaction_AverageMs(t *testing.T) {
	_, sample, err := DecodeReaction([]byte(`{"user_id":"u1","time_ms":310,"average_ms":285.5}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sample.TimeMs != 310 {
		t.Errorf("expected time_ms 310, got %v", sample.TimeMs)
	}
	if sample.AverageMs == nil || *sample.AverageMs != 285.5 {
		t.Errorf("expected average_ms 285.5, got %v", sample.AverageMs)
	}
}
