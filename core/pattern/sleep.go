package pattern

import (
	"fmt"
	"strings"

	"github.com/akif5298/flowstate/core/model"
)

// Fixed exclusion window enforced on generated tasks, independent of any
// extracted sleep estimate. Hours 23 and 0 through 5 are never schedulable.
const (
	sleepWindowStart = 23
	sleepWindowEnd   = 6
)

// InSleepWindow reports whether the hour of day falls in the fixed sleep
// window. The dynamically extracted sleep estimate does not feed into this
// policy; see ExtractSleepInfo.
func InSleepWindow(hour int) bool {
	return hour >= sleepWindowStart || hour < sleepWindowEnd
}

// ExtractSleepInfo derives a short human-readable description of the user's
// typical wake time, sleep-start time and sleep duration from biometric
// samples. The text annotates the generator prompt only; it is not enforced.
// It returns "" when no sample carries a positive sleep duration, signalling
// callers to rely on the fixed default window.
func ExtractSleepInfo(profile *model.UserDataProfile) string {
	var wakeHours, startHours []int
	var durationHours []float64

	for _, b := range profile.Biometric {
		if b.SleepMinutes == nil || *b.SleepMinutes <= 0 {
			continue
		}
		startHour := b.Timestamp.Hour()
		startHours = append(startHours, startHour)
		wakeHours = append(wakeHours, (startHour+*b.SleepMinutes/60)%24)
		durationHours = append(durationHours, float64(*b.SleepMinutes/60))
	}
	if len(wakeHours) == 0 {
		return ""
	}

	modalWake := mode(wakeHours)
	avgWake := intMean(wakeHours)
	avgStart := intMean(startHours)

	var avgDuration float64
	for _, d := range durationHours {
		avgDuration += d
	}
	avgDuration /= float64(len(durationHours))

	var b strings.Builder
	wakeDisplay, wakePeriod := clock12(modalWake)
	avgWakeDisplay, avgWakePeriod := clock12(int(avgWake))
	startDisplay, startPeriod := clock12(int(avgStart))
	fmt.Fprintf(&b, "Typical wake-up time: %d:00 %s (average: %d:00 %s)\n",
		wakeDisplay, wakePeriod, avgWakeDisplay, avgWakePeriod)
	fmt.Fprintf(&b, "Typical sleep start time: %d:00 %s\n", startDisplay, startPeriod)
	fmt.Fprintf(&b, "Average sleep duration: %.1f hours\n", avgDuration)
	return b.String()
}

// mode returns the most frequent value; ties break on first appearance.
func mode(values []int) int {
	counts := map[int]int{}
	best, bestCount := values[0], 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

func intMean(values []int) float64 {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// clock12 converts an hour of day to its 12-hour display form.
func clock12(hour int) (int, string) {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour
	if hour > 12 {
		display = hour - 12
	} else if hour == 0 {
		display = 12
	}
	return display, period
}
