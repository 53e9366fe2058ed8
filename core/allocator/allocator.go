// Package allocator implements the deterministic, rule-based schedule
// optimizer used when the external generator is unavailable. It assigns
// one-hour slots to tasks bucketed by energy requirement, preferring the
// analyzed peak or low hours and never overlapping existing events.
package allocator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/akif5298/flowstate/core/model"
)

const slotDuration = time.Hour

// Allocate builds a best-effort schedule from "now" to end-of-day. Tasks that
// cannot be placed without a conflict are dropped rather than reported; the
// function is total and performs no I/O.
func Allocate(now time.Time, energy model.EnergyPatternSummary, cognitive model.CognitivePatternSummary, events []model.ExistingEvent, tasks []model.Task) model.Schedule {
	schedule := model.Schedule{Items: []model.ScheduledItem{}}

	slots := buildSlots(now, events, &schedule)

	var high, medium, low []model.Task
	for _, t := range tasks {
		switch t.Requirement {
		case model.EnergyHigh:
			high = append(high, t)
		case model.EnergyLow:
			low = append(low, t)
		default:
			medium = append(medium, t)
		}
	}

	for _, t := range high {
		if slot, ok := takeBestSlot(&slots, energy.PeakHours, cognitive.PeakCognitiveHours, events); ok {
			schedule.Items = append(schedule.Items, model.ScheduledItem{
				Title:       t.Name,
				StartTime:   slot.StartTime,
				EndTime:     slot.StartTime.Add(slotDuration),
				Type:        model.ItemGeneratedTask,
				EnergyLevel: model.EnergyHigh,
				Reasoning:   fmt.Sprintf("Scheduled during peak energy hours (%d:00) for optimal performance", slot.Hour),
			})
		}
	}
	for _, t := range medium {
		if slot, ok := takeBestSlot(&slots, nil, nil, events); ok {
			schedule.Items = append(schedule.Items, model.ScheduledItem{
				Title:       t.Name,
				StartTime:   slot.StartTime,
				EndTime:     slot.StartTime.Add(slotDuration),
				Type:        model.ItemGeneratedTask,
				EnergyLevel: model.EnergyMedium,
				Reasoning:   fmt.Sprintf("Scheduled at %d:00", slot.Hour),
			})
		}
	}
	for _, t := range low {
		if slot, ok := takeBestSlot(&slots, energy.LowHours, nil, events); ok {
			schedule.Items = append(schedule.Items, model.ScheduledItem{
				Title:       t.Name,
				StartTime:   slot.StartTime,
				EndTime:     slot.StartTime.Add(slotDuration),
				Type:        model.ItemGeneratedTask,
				EnergyLevel: model.EnergyLow,
				Reasoning:   fmt.Sprintf("Scheduled during low energy period (%d:00) for less demanding tasks", slot.Hour),
			})
		}
	}

	sort.Slice(schedule.Items, func(i, j int) bool {
		return schedule.Items[i].StartTime.Before(schedule.Items[j].StartTime)
	})
	schedule.Summary = summarize(schedule, energy)
	return schedule
}

// buildSlots generates hour-aligned candidate slots from now to end-of-day.
// A slot whose start falls inside an existing event is withheld from the pool
// and the event is emitted into the schedule instead.
func buildSlots(now time.Time, events []model.ExistingEvent, schedule *model.Schedule) []model.TimeSlot {
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
	emitted := map[string]bool{}

	var slots []model.TimeSlot
	for cursor := now; cursor.Before(endOfDay); cursor = cursor.Add(slotDuration) {
		slot := model.TimeSlot{StartTime: cursor, Hour: cursor.Hour(), Available: true}
		for _, ev := range events {
			if !ev.StartTime.After(cursor) && ev.EndTime.After(cursor) {
				slot.Available = false
				key := fmt.Sprintf("%s@%d", ev.Title, ev.StartTime.UnixNano())
				if !emitted[key] {
					emitted[key] = true
					schedule.Items = append(schedule.Items, model.ScheduledItem{
						Title:     ev.Title,
						StartTime: ev.StartTime,
						EndTime:   ev.EndTime,
						Type:      model.ItemExistingEvent,
					})
				}
				break
			}
		}
		if slot.Available {
			slots = append(slots, slot)
		}
	}
	return slots
}

// takeBestSlot picks and removes the best candidate slot. Preference order:
// any conflict-free slot whose hour is in preferred, then one in secondary,
// then the first remaining conflict-free slot. A slot whose one-hour span
// would overlap any existing event is never selected.
func takeBestSlot(slots *[]model.TimeSlot, preferred, secondary []int, events []model.ExistingEvent) (model.TimeSlot, bool) {
	usable := func(s model.TimeSlot) bool {
		if !s.Available {
			return false
		}
		end := s.StartTime.Add(slotDuration)
		for _, ev := range events {
			if ev.Overlaps(s.StartTime, end) {
				return false
			}
		}
		return true
	}

	pick := func(hours []int) (int, bool) {
		for _, h := range hours {
			for i, s := range *slots {
				if s.Hour == h && usable(s) {
					return i, true
				}
			}
		}
		return 0, false
	}

	var idx int
	var found bool
	if idx, found = pick(preferred); !found {
		if idx, found = pick(secondary); !found {
			for i, s := range *slots {
				if usable(s) {
					idx, found = i, true
					break
				}
			}
		}
	}
	if !found {
		return model.TimeSlot{}, false
	}
	slot := (*slots)[idx]
	*slots = append((*slots)[:idx], (*slots)[idx+1:]...)
	return slot, true
}

func summarize(schedule model.Schedule, energy model.EnergyPatternSummary) string {
	var b strings.Builder
	b.WriteString("Smart Schedule Generated\n\n")
	fmt.Fprintf(&b, "Scheduled %d items\n", len(schedule.Items))
	fmt.Fprintf(&b, "Peak energy hours: %v\n", energy.PeakHours)
	fmt.Fprintf(&b, "Average sleep quality: %.1f%%\n", energy.AvgSleepQuality*100)
	b.WriteString("\nYour schedule is optimized based on:\n")
	b.WriteString("- Energy level predictions\n")
	b.WriteString("- Cognitive performance patterns\n")
	b.WriteString("- Existing calendar events\n")
	b.WriteString("- Task energy requirements\n")
	return b.String()
}
