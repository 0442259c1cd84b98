package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineCount(s string) int {
	return len(strings.Split(s, "\n"))
}

// requireOrder asserts the substrings appear in the given order.
func requireOrder(t *testing.T, s string, subs ...string) {
	t.Helper()
	pos := 0
	for _, sub := range subs {
		idx := strings.Index(s[pos:], sub)
		require.GreaterOrEqual(t, idx, 0, "expected %q after position %d in:\n%s", sub, pos, s)
		pos += idx + len(sub)
	}
}

func TestActivityIsDeterministic(t *testing.T) {
	m := map[string]any{
		"id":       float64(42),
		"name":     "Morning Ride",
		"type":     "Ride",
		"distance": float64(40250.5),
		"duration": float64(5400),
	}
	first := Activity(m)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Activity(m))
	}
}

func TestActivityFixedOrderScenario(t *testing.T) {
	m := map[string]any{
		"id":       float64(123),
		"name":     "Morning Ride",
		"distance": nil,
	}
	out := Activity(m)

	assert.Contains(t, out, "ID: 123\n")
	assert.Contains(t, out, "Name: Morning Ride\n")
	assert.Contains(t, out, "Distance: "+Placeholder+"\n")
	requireOrder(t, out, "ID: 123", "Name: Morning Ride", "Distance: "+Placeholder)
}

func TestActivityLineCountInvariant(t *testing.T) {
	full := map[string]any{
		"id": float64(1), "name": "Ride", "type": "Ride",
		"startTime": "2024-01-01T08:00:00Z", "description": "easy spin",
		"distance": float64(1000), "duration": float64(3600),
		"average_heartrate": float64(140), "icu_ctl": float64(55.2),
	}
	sparse := map[string]any{"id": float64(2)}
	empty := map[string]any{}

	want := lineCount(Activity(full))
	assert.Equal(t, want, lineCount(Activity(sparse)))
	assert.Equal(t, want, lineCount(Activity(empty)))
}

func TestActivityUnitsAndPrecision(t *testing.T) {
	m := map[string]any{
		"distance":          float64(40250),
		"duration":          float64(5400),
		"average_speed":     float64(7.456),
		"average_heartrate": float64(142),
		"icu_weight":        float64(71),
	}
	out := Activity(m)

	assert.Contains(t, out, "Distance: 40250.0 m\n")
	assert.Contains(t, out, "Duration: 5400 s\n")
	assert.Contains(t, out, "Average Speed: 7.46 m/s\n")
	assert.Contains(t, out, "Average Heart Rate: 142 bpm\n")
	assert.Contains(t, out, "Weight: 71.0 kg\n")
}

func TestActivityTimestampReformatted(t *testing.T) {
	out := Activity(map[string]any{"startTime": "2024-01-01T08:00:00Z"})
	assert.Contains(t, out, "Date: 2024-01-01 08:00:00\n")

	// Bare dates pass through untouched.
	out = Activity(map[string]any{"start_date_local": "2024-01-01"})
	assert.Contains(t, out, "Date: 2024-01-01\n")
}

func TestActivitiesEmptyListIsNoResults(t *testing.T) {
	assert.Equal(t, NoResults, Activities(nil))
	assert.Equal(t, NoResults, Activities([]map[string]any{}))
}

func TestActivitiesOneBlockPerItemInOrder(t *testing.T) {
	items := []map[string]any{
		{"id": float64(1), "name": "First"},
		{"id": float64(2), "name": "Second"},
		{"id": float64(3), "name": "Third"},
	}
	out := Activities(items)

	requireOrder(t, out, "Name: First", "Name: Second", "Name: Third")
	assert.Equal(t, 3, strings.Count(out, "ID: "))
}

func TestActivityDetailsZones(t *testing.T) {
	m := map[string]any{
		"id": float64(9),
		"zones": map[string]any{
			"power": []any{
				map[string]any{"number": float64(1), "secondsInZone": float64(600)},
				map[string]any{"number": float64(2), "secondsInZone": float64(1200)},
			},
			"hr": []any{
				map[string]any{"number": float64(1), "secondsInZone": float64(900)},
			},
		},
	}
	out := ActivityDetails(m)

	assert.Contains(t, out, "Power Zones:\nZone 1: 600 seconds\nZone 2: 1200 seconds")
	assert.Contains(t, out, "Heart Rate Zones:\nZone 1: 900 seconds")
}

func TestActivityDetailsWithoutZonesMatchesSummary(t *testing.T) {
	m := map[string]any{"id": float64(9), "name": "Ride"}
	assert.Equal(t, Activity(m), ActivityDetails(m))
}

func TestWellnessEntryPlaceholders(t *testing.T) {
	out := WellnessEntry(map[string]any{"date": "2024-01-01"})

	assert.Contains(t, out, "Date: 2024-01-01\n")
	assert.Contains(t, out, "  Fitness (CTL): "+Placeholder+"\n")
	assert.Contains(t, out, "  Weight: "+Placeholder+"\n")
	assert.Contains(t, out, "  Sleep: "+Placeholder+"\n")
	assert.Contains(t, out, "Status: Unlocked\n")
	assert.Contains(t, out, "Sport-Specific Info:\n  None available\n")
}

func TestWellnessEntryValues(t *testing.T) {
	m := map[string]any{
		"date":      "2024-01-01",
		"ctl":       float64(54.3),
		"sleepSecs": float64(27000),
		"restingHR": float64(48),
		"systolic":  float64(120),
		"diastolic": float64(80),
		"locked":    true,
		"sportInfo": []any{
			map[string]any{"type": "Ride", "eftp": float64(250)},
		},
	}
	out := WellnessEntry(m)

	assert.Contains(t, out, "  Fitness (CTL): 54.3\n")
	assert.Contains(t, out, "  Sleep: 7.50 hours\n")
	assert.Contains(t, out, "  Resting HR: 48 bpm\n")
	assert.Contains(t, out, "  Blood Pressure: 120/80 mmHg\n")
	assert.Contains(t, out, "Status: Locked\n")
	assert.Contains(t, out, "  * Ride: eFTP = 250\n")
}

func TestWellnessLineCountInvariant(t *testing.T) {
	sparse := WellnessEntry(map[string]any{})
	full := WellnessEntry(map[string]any{
		"date": "2024-01-01", "id": "w1", "ctl": float64(50), "atl": float64(40),
		"weight": float64(70), "sleepSecs": float64(28800), "soreness": float64(2),
	})
	assert.Equal(t, lineCount(sparse), lineCount(full))
}

func TestEventSummaryTypeDerivation(t *testing.T) {
	race := EventSummary(map[string]any{"id": "e1", "race": true})
	assert.Contains(t, race, "Type: Race\n")

	workout := EventSummary(map[string]any{"id": "e2", "workout": map[string]any{"id": "w1"}})
	assert.Contains(t, workout, "Type: Workout\n")

	other := EventSummary(map[string]any{"id": "e3"})
	assert.Contains(t, other, "Type: Other\n")
}

func TestEventSummariesEmptyListIsNoResults(t *testing.T) {
	assert.Equal(t, NoResults, EventSummaries(nil))
}

func TestEventDetailsBlocks(t *testing.T) {
	m := map[string]any{
		"id": "e1", "date": "2024-01-01", "name": "Spring Classic", "description": "A race",
		"workout": map[string]any{
			"id": "w1", "sport": "Ride", "duration": float64(3600), "tss": float64(50),
			"intervals": []any{1.0, 2.0},
		},
		"race": true, "priority": "A", "result": "1st",
		"calendar": map[string]any{"name": "Main"},
	}
	out := EventDetails(m)

	assert.Contains(t, out, "Event Details:\n")
	assert.Contains(t, out, "Workout Information:\n")
	assert.Contains(t, out, "Intervals: 2")
	assert.Contains(t, out, "Race Information:\n")
	assert.Contains(t, out, "Priority: A\n")
	assert.Contains(t, out, "Calendar: Main")
}

func TestIntervalsRendering(t *testing.T) {
	m := map[string]any{
		"id":       "i1",
		"analyzed": true,
		"icu_intervals": []any{
			map[string]any{
				"type": "work", "label": "Rep 1",
				"elapsed_time": float64(60), "moving_time": float64(60),
				"distance":      float64(100),
				"average_watts": float64(200), "max_watts": float64(300),
				"average_watts_kg": float64(3), "max_watts_kg": float64(5),
				"average_heartrate": float64(150), "max_heartrate": float64(160),
			},
		},
		"icu_groups": []any{
			map[string]any{"id": "G1", "count": float64(4), "average_watts": float64(210)},
		},
	}
	out := Intervals(m)

	assert.Contains(t, out, "Intervals Analysis:\n")
	assert.Contains(t, out, "ID: i1\n")
	assert.Contains(t, out, "Analyzed: true\n")
	assert.Contains(t, out, "[1] Rep 1 (work)\n")
	assert.Contains(t, out, "  Average Power: 200 W (3.00 W/kg)\n")
	assert.Contains(t, out, "Group: G1 (Contains 4 intervals)\n")
	// Absent metrics still get their line, marked unavailable.
	assert.Contains(t, out, "  Decoupling: "+Placeholder+"\n")
}

func TestIntervalsDeterministic(t *testing.T) {
	m := map[string]any{"id": "i1", "icu_intervals": []any{map[string]any{"label": "Rep 1"}}}
	assert.Equal(t, Intervals(m), Intervals(m))
}
