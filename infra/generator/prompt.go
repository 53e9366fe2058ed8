package generator

import (
	"fmt"
	"strings"

	coregen "github.com/akif5298/flowstate/core/generator"
	"github.com/akif5298/flowstate/core/model"
	"github.com/akif5298/flowstate/core/pattern"
)

// BuildSchedulePrompt renders the generator prompt: sleep rules, hour-by-hour
// energy predictions, peak/low analysis, the task catalog with energy tags,
// immutable events, and strict output-format instructions. The reconciler
// depends on the requested "H:MM AM/PM" line format.
func BuildSchedulePrompt(req coregen.Request) string {
	var b strings.Builder
	b.WriteString("You are an AI productivity coach creating an optimized daily schedule based on data-driven energy predictions.\n\n")

	if req.SleepInfo != "" {
		b.WriteString("SLEEP PATTERNS (CRITICAL - DO NOT SCHEDULE DURING SLEEP HOURS):\n")
		b.WriteString(req.SleepInfo)
		b.WriteString("\nCRITICAL SLEEP RULES:\n")
		b.WriteString("- NEVER schedule tasks between 11:00 PM and 6:00 AM (sleep hours)\n")
		b.WriteString("- All tasks must be scheduled between 6:00 AM and 11:00 PM only\n\n")
	} else {
		b.WriteString("SLEEP PATTERNS:\n")
		b.WriteString("CRITICAL: Do NOT schedule tasks between 11:00 PM and 6:00 AM (sleep hours).\n")
		b.WriteString("All tasks must be scheduled between 6:00 AM and 11:00 PM only.\n\n")
	}

	b.WriteString("ENERGY PREDICTIONS FOR TODAY (Hour-by-Hour Data):\n")
	b.WriteString("Use these predictions to match task energy requirements to predicted energy levels.\n\n")
	writeHourlyPredictions(&b, req.Predictions)

	summary := pattern.AnalyzeEnergy(&model.UserDataProfile{EnergyPredictions: req.Predictions})
	b.WriteString("\nENERGY ANALYSIS SUMMARY:\n")
	b.WriteString("PEAK ENERGY HOURS (best for HIGH energy tasks): ")
	writeHourList(&b, summary.PeakHours)
	b.WriteString("\nLOW ENERGY HOURS (best for LOW energy tasks): ")
	writeHourList(&b, summary.LowHours)
	b.WriteString("\n\n")

	b.WriteString("TASKS TO SCHEDULE (with energy intensity):\n")
	for i, name := range req.TaskNames {
		level := model.EnergyMedium
		if i < len(req.Tasks) && req.Tasks[i].Requirement != model.EnergyUnknown {
			level = req.Tasks[i].Requirement
		}
		fmt.Fprintf(&b, "%d. %s [Energy: %s]\n", i+1, name, level)
	}
	b.WriteString("\n")

	if len(req.ExistingEvents) > 0 {
		b.WriteString("EXISTING CALENDAR EVENTS (cannot be moved):\n")
		for _, ev := range req.ExistingEvents {
			b.WriteString("- " + ev + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("CRITICAL OUTPUT FORMAT REQUIREMENTS:\n")
	b.WriteString("You MUST return ONLY a schedule in this EXACT format. Do NOT include any explanations, introductions, or additional text.\n")
	b.WriteString("Each line must be in this format: HH:MM AM/PM - HH:MM AM/PM: EXACT_TASK_NAME\n")
	b.WriteString("Use ONLY the exact task names from the TASKS TO SCHEDULE list above. Do NOT create new tasks or add descriptions.\n\n")

	b.WriteString("SCHEDULING INSTRUCTIONS:\n")
	b.WriteString("1. Schedule ONLY the tasks listed above, using their EXACT names\n")
	b.WriteString("2. NEVER schedule tasks between 11:00 PM and 6:00 AM\n")
	b.WriteString("3. Match task energy to predicted energy: HIGH tasks during peak hours, LOW tasks during low hours\n")
	b.WriteString("4. Existing calendar events are IMMUTABLE; never schedule tasks at the same time\n")
	b.WriteString("5. Each task should be scheduled for approximately 1 hour\n")
	b.WriteString("6. Do NOT add breaks, meals, or any tasks not in the list\n")
	return b.String()
}

// writeHourlyPredictions lists the latest prediction per hour in ascending
// hour order.
func writeHourlyPredictions(b *strings.Builder, predictions []model.EnergyPrediction) {
	latest := map[int]model.EnergyPrediction{}
	for _, p := range predictions {
		latest[p.Timestamp.Hour()] = p
	}
	if len(latest) == 0 {
		b.WriteString("No energy predictions available for today. Use general patterns: morning = higher energy, afternoon = medium, evening = lower.\n")
		return
	}
	for hour := 0; hour < 24; hour++ {
		p, ok := latest[hour]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "- %s: %s energy (confidence: %.0f%%)\n",
			clock12(hour), p.Level, p.Confidence*100)
	}
}

func writeHourList(b *strings.Builder, hours []int) {
	for i, h := range hours {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(clock12(h))
	}
}

func clock12(hour int) string {
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
	return fmt.Sprintf("%d:00 %s", display, period)
}
