package model

import (
	"fmt"
	"time"
)

// Task is a user-declared unit of work with a relative energy cost. Names are
// assumed unique within a request; duplicates both resolve to the first.
type Task struct {
	Name        string      `json:"name"`
	Requirement EnergyLevel `json:"requirement"`
}

// ExistingEvent is a pre-committed calendar block. It is never moved or
// resized; the allocator and reconciler must not schedule anything over it.
type ExistingEvent struct {
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Overlaps reports whether the [start,end) interval intersects the event.
func (e ExistingEvent) Overlaps(start, end time.Time) bool {
	return start.Before(e.EndTime) && end.After(e.StartTime)
}

// PromptString renders the event the way it is presented to the generator.
func (e ExistingEvent) PromptString() string {
	return fmt.Sprintf("%d:%02d - %s", e.StartTime.Hour(), e.StartTime.Minute(), e.Title)
}

// TimeSlot is a one-hour candidate slot, generated fresh per allocation run
// and consumed once assigned.
type TimeSlot struct {
	StartTime time.Time
	Hour      int
	Available bool
}

// ItemType classifies a scheduled item.
type ItemType int

const (
	ItemExistingEvent ItemType = iota
	ItemGeneratedTask
	ItemBreak
	ItemSuggestion
)

// String returns a human-readable representation of the item type.
func (t ItemType) String() string {
	switch t {
	case ItemExistingEvent:
		return "EXISTING_EVENT"
	case ItemGeneratedTask:
		return "GENERATED_TASK"
	case ItemBreak:
		return "BREAK"
	case ItemSuggestion:
		return "SUGGESTION"
	default:
		return "unknown"
	}
}

// ScheduledItem is one entry of the produced schedule.
type ScheduledItem struct {
	Title       string      `json:"title"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     time.Time   `json:"end_time"`
	Type        ItemType    `json:"type"`
	EnergyLevel EnergyLevel `json:"energy_level,omitempty"`
	Reasoning   string      `json:"reasoning,omitempty"`
}

// Schedule is the optimizer's output: items sorted by start time plus a
// human-readable summary. It is returned once and not persisted here.
type Schedule struct {
	Items   []ScheduledItem `json:"items"`
	Summary string          `json:"summary"`
}
