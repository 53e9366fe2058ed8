package model

import (
	"testing"
	"time"
)

func TestEnergyLevelRoundTrip(t *testing.T) {
	for _, l := range []EnergyLevel{EnergyHigh, EnergyMedium, EnergyLow} {
		if got := ParseEnergyLevel(l.String()); got != l {
			t.Errorf("ParseEnergyLevel(%q) = %v, want %v", l.String(), got, l)
		}
	}
	if got := ParseEnergyLevel("turbo"); got != EnergyUnknown {
		t.Errorf("expected unknown for unrecognized value, got %v", got)
	}
}

func TestEnergyLevelScore(t *testing.T) {
	cases := map[EnergyLevel]float64{
		EnergyHigh:    3,
		EnergyMedium:  2,
		EnergyLow:     1,
		EnergyUnknown: 2,
	}
	for level, want := range cases {
		if got := level.Score(); got != want {
			t.Errorf("%v.Score() = %v, want %v", level, got, want)
		}
	}
}

func TestExistingEventOverlaps(t *testing.T) {
	ev := ExistingEvent{
		StartTime: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 8, 29, 11, 0, 0, 0, time.UTC),
	}
	cases := []struct {
		start, end time.Time
		want       bool
	}{
		{ev.StartTime.Add(-time.Hour), ev.StartTime, false},            // touching before
		{ev.EndTime, ev.EndTime.Add(time.Hour), false},                 // touching after
		{ev.StartTime.Add(30 * time.Minute), ev.EndTime, true},         // inside
		{ev.StartTime.Add(-time.Hour), ev.EndTime.Add(time.Hour), true}, // covering
	}
	for _, c := range cases {
		if got := ev.Overlaps(c.start, c.end); got != c.want {
			t.Errorf("Overlaps(%v, %v) = %v, want %v", c.start, c.end, got, c.want)
		}
	}
}

func TestExistingEventPromptString(t *testing.T) {
	ev := ExistingEvent{
		Title:     "Standup",
		StartTime: time.Date(2026, 8, 29, 9, 5, 0, 0, time.UTC),
	}
	if got := ev.PromptString(); got != "9:05 - Standup" {
		t.Errorf("unexpected prompt string %q", got)
	}
}
