package format

import (
	"strconv"
	"strings"
)

// WellnessEntry renders one wellness record. Sections and indentation
// follow the intervals.icu wellness schema; every documented field has its
// own line regardless of what the payload carried.
func WellnessEntry(m map[string]any) string {
	var b strings.Builder

	b.WriteString("Date: " + str(m, "date") + "\n")
	b.WriteString("ID: " + str(m, "id") + "\n\n")

	b.WriteString("Training Metrics:\n")
	b.WriteString("  Fitness (CTL): " + num(m, "ctl", 1) + "\n")
	b.WriteString("  Fatigue (ATL): " + num(m, "atl", 1) + "\n")
	b.WriteString("  Ramp Rate: " + num(m, "rampRate", 2) + "\n")
	b.WriteString("  CTL Load: " + num(m, "ctlLoad", 1) + "\n")
	b.WriteString("  ATL Load: " + num(m, "atlLoad", 1) + "\n\n")

	b.WriteString("Sport-Specific Info:\n")
	writeSportInfo(&b, m)
	b.WriteByte('\n')

	b.WriteString("Vital Signs:\n")
	b.WriteString("  Weight: " + numUnit(m, "weight", 1, "kg") + "\n")
	b.WriteString("  Resting HR: " + numUnit(m, "restingHR", 0, "bpm") + "\n")
	b.WriteString("  HRV: " + num(m, "hrv", 1) + "\n")
	b.WriteString("  HRV SDNN: " + num(m, "hrvSDNN", 1) + "\n")
	b.WriteString("  Average Sleeping HR: " + numUnit(m, "avgSleepingHR", 0, "bpm") + "\n")
	b.WriteString("  SpO2: " + pct(m, "spO2", 1) + "\n")
	b.WriteString("  Blood Pressure: " + num(m, "systolic", 0) + "/" + num(m, "diastolic", 0) + " mmHg\n")
	b.WriteString("  Respiration: " + numUnit(m, "respiration", 1, "breaths/min") + "\n")
	b.WriteString("  Blood Glucose: " + numUnit(m, "bloodGlucose", 1, "mmol/L") + "\n")
	b.WriteString("  Lactate: " + numUnit(m, "lactate", 1, "mmol/L") + "\n")
	b.WriteString("  VO2 Max: " + numUnit(m, "vo2max", 1, "ml/kg/min") + "\n")
	b.WriteString("  Body Fat: " + pct(m, "bodyFat", 1) + "\n")
	b.WriteString("  Abdomen: " + numUnit(m, "abdomen", 1, "cm") + "\n")
	b.WriteString("  Baevsky Stress Index: " + num(m, "baevskySI", 1) + "\n\n")

	b.WriteString("Sleep & Recovery:\n")
	b.WriteString("  Sleep: " + sleepHours(m) + "\n")
	b.WriteString("  Sleep Score: " + scored(m, "sleepScore", 0, "/100") + "\n")
	b.WriteString("  Sleep Quality: " + scored(m, "sleepQuality", 0, "/10") + "\n")
	b.WriteString("  Readiness: " + scored(m, "readiness", 1, "/10") + "\n\n")

	b.WriteString("Menstrual Tracking:\n")
	b.WriteString("  Menstrual Phase: " + phase(m, "menstrualPhase") + "\n")
	b.WriteString("  Predicted Phase: " + phase(m, "menstrualPhasePredicted") + "\n\n")

	b.WriteString("Subjective Feelings:\n")
	b.WriteString("  Soreness: " + scored(m, "soreness", 0, "/10") + "\n")
	b.WriteString("  Fatigue: " + scored(m, "fatigue", 0, "/10") + "\n")
	b.WriteString("  Stress: " + scored(m, "stress", 0, "/10") + "\n")
	b.WriteString("  Mood: " + scored(m, "mood", 0, "/10") + "\n")
	b.WriteString("  Motivation: " + scored(m, "motivation", 0, "/10") + "\n")
	b.WriteString("  Injury Level: " + scored(m, "injury", 0, "/10") + "\n\n")

	b.WriteString("Nutrition & Hydration:\n")
	b.WriteString("  Calories Consumed: " + numUnit(m, "kcalConsumed", 0, "kcal") + "\n")
	b.WriteString("  Hydration Score: " + scored(m, "hydration", 0, "/10") + "\n")
	b.WriteString("  Hydration Volume: " + numUnit(m, "hydrationVolume", 0, "ml") + "\n\n")

	b.WriteString("Activity:\n")
	b.WriteString("  Steps: " + num(m, "steps", 0) + "\n\n")

	b.WriteString("Comments: " + str(m, "comments") + "\n")
	b.WriteString("Status: " + lockedStatus(m) + "\n")
	b.WriteString("Last Updated: " + str(m, "updated"))

	return b.String()
}

// WellnessEntries renders a list of wellness records in input order.
func WellnessEntries(items []map[string]any) string {
	blocks := make([]string, 0, len(items))
	for _, m := range items {
		blocks = append(blocks, WellnessEntry(m))
	}
	return joinBlocks(blocks)
}

func numUnit(m map[string]any, key string, prec int, unit string) string {
	s := num(m, key, prec)
	if s == Placeholder {
		return s
	}
	return s + " " + unit
}

func pct(m map[string]any, key string, prec int) string {
	s := num(m, key, prec)
	if s == Placeholder {
		return s
	}
	return s + "%"
}

// scored attaches "/10"-style denominators to subjective ratings.
func scored(m map[string]any, key string, prec int, denom string) string {
	s := num(m, key, prec)
	if s == Placeholder {
		return s
	}
	return s + denom
}

func phase(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return Placeholder
	}
	return capitalized(v)
}

// sleepHours converts sleepSecs to hours; some responses carry sleepHours
// directly instead.
func sleepHours(m map[string]any) string {
	if secs, ok := m["sleepSecs"].(float64); ok {
		return strconv.FormatFloat(secs/3600, 'f', 2, 64) + " hours"
	}
	if hours, ok := m["sleepHours"].(float64); ok {
		return strconv.FormatFloat(hours, 'f', 2, 64) + " hours"
	}
	return Placeholder
}

func lockedStatus(m map[string]any) string {
	if locked, ok := m["locked"].(bool); ok && locked {
		return "Locked"
	}
	return "Unlocked"
}

func writeSportInfo(b *strings.Builder, m map[string]any) {
	sports, ok := m["sportInfo"].([]any)
	if !ok || len(sports) == 0 {
		b.WriteString("  None available\n")
		return
	}
	for _, s := range sports {
		sm, ok := s.(map[string]any)
		if !ok {
			continue
		}
		b.WriteString("  * " + str(sm, "type") + ": eFTP = " + num(sm, "eftp", 0) + "\n")
	}
}
