package format

import (
	"strconv"
	"strings"
)

// EventSummary renders the short form of a calendar event.
func EventSummary(m map[string]any) string {
	var b strings.Builder
	b.WriteString("Date: " + str(m, "start_date_local") + "\n")
	b.WriteString("ID: " + str(m, "id") + "\n")
	b.WriteString("Type: " + eventType(m) + "\n")
	b.WriteString("Name: " + str(m, "name") + "\n")
	b.WriteString("Description: " + str(m, "description"))
	return b.String()
}

// EventSummaries renders a list of events in input order.
func EventSummaries(items []map[string]any) string {
	blocks := make([]string, 0, len(items))
	for _, m := range items {
		blocks = append(blocks, EventSummary(m))
	}
	return joinBlocks(blocks)
}

// EventDetails renders the full form of one event, appending workout, race
// and calendar blocks when the payload carries them.
func EventDetails(m map[string]any) string {
	var b strings.Builder
	b.WriteString("Event Details:\n\n")
	b.WriteString("ID: " + str(m, "id") + "\n")
	b.WriteString("Date: " + str(m, "date") + "\n")
	b.WriteString("Name: " + str(m, "name") + "\n")
	b.WriteString("Description: " + str(m, "description"))

	if workout, ok := m["workout"].(map[string]any); ok {
		b.WriteString("\n\nWorkout Information:\n")
		b.WriteString("Workout ID: " + str(workout, "id") + "\n")
		b.WriteString("Sport: " + str(workout, "sport") + "\n")
		b.WriteString("Duration: " + num(workout, "duration", 0) + " s\n")
		b.WriteString("TSS: " + num(workout, "tss", 0))
		if intervals, ok := workout["intervals"].([]any); ok {
			b.WriteString("\nIntervals: " + strconv.Itoa(len(intervals)))
		}
	}

	if isTruthy(m["race"]) {
		b.WriteString("\n\nRace Information:\n")
		b.WriteString("Priority: " + str(m, "priority") + "\n")
		b.WriteString("Result: " + str(m, "result"))
	}

	if cal, ok := m["calendar"].(map[string]any); ok {
		b.WriteString("\n\nCalendar: " + str(cal, "name"))
	}

	return b.String()
}

// eventType derives the display type from the workout/race markers.
func eventType(m map[string]any) string {
	switch {
	case isTruthy(m["workout"]):
		return "Workout"
	case isTruthy(m["race"]):
		return "Race"
	default:
		return "Other"
	}
}

// isTruthy mirrors the upstream convention where markers arrive either as
// booleans or as embedded objects.
func isTruthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case map[string]any:
		return len(x) > 0
	case nil:
		return false
	default:
		return true
	}
}
