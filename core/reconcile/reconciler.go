// Package reconcile turns the external generator's free-text schedule into a
// validated model.Schedule. The generated text is untrusted: lines without a
// recognizable time token are ignored, described activities must resolve to a
// caller-declared task, and anything inside the sleep window or overlapping
// an immutable event is discarded.
package reconcile

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/akif5298/flowstate/core/logger"
	"github.com/akif5298/flowstate/core/model"
	"github.com/akif5298/flowstate/core/pattern"
)

var timeToken = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(AM|PM|am|pm)?`)

const taskDuration = time.Hour

// Reconciler validates generated schedule text against the task catalog and
// the immutable calendar.
type Reconciler struct {
	log logger.Logger
}

// New creates a Reconciler.
func New(log logger.Logger) *Reconciler {
	return &Reconciler{log: log}
}

// Reconcile parses the generated text line by line and produces a schedule
// anchored on the day of "now". Existing events are carried through verbatim;
// every accepted generated line becomes a one-hour GENERATED_TASK carrying the
// caller-declared energy level for the matched task.
func (r *Reconciler) Reconcile(now time.Time, text string, events []model.ExistingEvent, tasks []model.Task) model.Schedule {
	schedule := model.Schedule{Items: []model.ScheduledItem{}}
	for _, ev := range events {
		schedule.Items = append(schedule.Items, model.ScheduledItem{
			Title:     ev.Title,
			StartTime: ev.StartTime,
			EndTime:   ev.EndTime,
			Type:      model.ItemExistingEvent,
		})
	}

	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Name
	}

	for _, line := range strings.Split(text, "\n") {
		item, ok := r.parseLine(now, line, events, tasks, names)
		if ok {
			schedule.Items = append(schedule.Items, item)
		}
	}

	sort.Slice(schedule.Items, func(i, j int) bool {
		return schedule.Items[i].StartTime.Before(schedule.Items[j].StartTime)
	})
	schedule.Summary = fmt.Sprintf("AI-Generated Schedule\n\nScheduled %d items\n\nAI Schedule:\n%s",
		len(schedule.Items), text)
	return schedule
}

// parseLine extracts at most one scheduled task from a generated line.
// Returning false covers every rejection: headings, missing time token,
// malformed components, unmatched descriptions, sleep-window hits and event
// conflicts.
func (r *Reconciler) parseLine(now time.Time, line string, events []model.ExistingEvent, tasks []model.Task, names []string) (model.ScheduledItem, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "*") {
		return model.ScheduledItem{}, false
	}

	loc := timeToken.FindStringSubmatchIndex(line)
	if loc == nil {
		return model.ScheduledItem{}, false
	}
	groups := timeToken.FindStringSubmatch(line)
	hour, err := strconv.Atoi(groups[1])
	if err != nil {
		r.log.Debugf("could not parse line %q: %v", line, err)
		return model.ScheduledItem{}, false
	}
	minute, err := strconv.Atoi(groups[2])
	if err != nil {
		r.log.Debugf("could not parse line %q: %v", line, err)
		return model.ScheduledItem{}, false
	}
	if hour > 23 || minute > 59 {
		r.log.Debugf("could not parse line %q: time out of range", line)
		return model.ScheduledItem{}, false
	}
	switch strings.ToUpper(groups[3]) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 {
		r.log.Debugf("could not parse line %q: time out of range", line)
		return model.ScheduledItem{}, false
	}

	desc := strings.TrimSpace(line[loc[1]:])
	desc = trimSeparator(desc)
	// A second strip handles "3:00 AM: Gym" where a colon follows the period.
	if strings.HasPrefix(desc, ":") {
		desc = strings.TrimSpace(desc[1:])
	}

	matched := MatchTask(desc, names)
	if matched == "" {
		r.log.Debugf("no matching task for description %q, treating as explanatory text", desc)
		return model.ScheduledItem{}, false
	}

	if pattern.InSleepWindow(hour) {
		r.log.Debugf("skipping task %q at %d:00, inside sleep window", matched, hour)
		return model.ScheduledItem{}, false
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	end := start.Add(taskDuration)
	for _, ev := range events {
		if ev.Overlaps(start, end) {
			r.log.Debugf("skipping task %q at %d:00, conflicts with existing event %q", matched, hour, ev.Title)
			return model.ScheduledItem{}, false
		}
	}

	level := model.EnergyMedium
	for _, t := range tasks {
		if t.Name == matched {
			if t.Requirement != model.EnergyUnknown {
				level = t.Requirement
			}
			break
		}
	}

	return model.ScheduledItem{
		Title:       matched,
		StartTime:   start,
		EndTime:     end,
		Type:        model.ItemGeneratedTask,
		EnergyLevel: level,
		Reasoning:   "AI-scheduled: " + desc,
	}, true
}

// trimSeparator strips a single leading "-", "•" or ":" plus whitespace.
func trimSeparator(desc string) string {
	for _, sep := range []string{"-", "•", ":"} {
		if strings.HasPrefix(desc, sep) {
			return strings.TrimSpace(desc[len(sep):])
		}
	}
	return desc
}
