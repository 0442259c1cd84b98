package format

import (
	"strings"
)

// activitySections is the fixed output table for one activity. Key lists
// carry the documented fallbacks between the camelCase and snake_case field
// names intervals.icu uses across endpoints.
var activitySections = []section{
	{fields: []field{
		{label: "ID", keys: []string{"id"}, prec: 0},
		{label: "Name", keys: []string{"name"}},
		{label: "Type", keys: []string{"type"}},
		{label: "Date", keys: []string{"startTime", "start_date_local", "start_date"}, conv: timestamp},
		{label: "Description", keys: []string{"description"}},
		{label: "Distance", keys: []string{"distance"}, unit: "m", prec: 1},
		{label: "Duration", keys: []string{"duration", "elapsed_time"}, unit: "s", prec: 0},
		{label: "Moving Time", keys: []string{"moving_time"}, unit: "s", prec: 0},
		{label: "Elevation Gain", keys: []string{"elevationGain", "total_elevation_gain"}, unit: "m", prec: 0},
		{label: "Elevation Loss", keys: []string{"total_elevation_loss"}, unit: "m", prec: 0},
	}},
	{title: "Power Data:", fields: []field{
		{label: "Average Power", keys: []string{"avgPower", "icu_average_watts", "average_watts"}, unit: "W", prec: 0},
		{label: "Weighted Avg Power", keys: []string{"icu_weighted_avg_watts"}, unit: "W", prec: 0},
		{label: "Training Load", keys: []string{"trainingLoad", "icu_training_load"}, prec: 0},
		{label: "FTP", keys: []string{"icu_ftp"}, unit: "W", prec: 0},
		{label: "Kilojoules", keys: []string{"icu_joules"}, unit: "kJ", prec: 0},
		{label: "Intensity", keys: []string{"icu_intensity"}, prec: 1},
		{label: "Power:HR Ratio", keys: []string{"icu_power_hr"}, prec: 2},
		{label: "Variability Index", keys: []string{"icu_variability_index"}, prec: 2},
	}},
	{title: "Heart Rate Data:", fields: []field{
		{label: "Average Heart Rate", keys: []string{"avgHr", "average_heartrate"}, unit: "bpm", prec: 0},
		{label: "Max Heart Rate", keys: []string{"max_heartrate"}, unit: "bpm", prec: 0},
		{label: "LTHR", keys: []string{"lthr"}, unit: "bpm", prec: 0},
		{label: "Resting HR", keys: []string{"icu_resting_hr"}, unit: "bpm", prec: 0},
		{label: "Decoupling", keys: []string{"decoupling"}, prec: 2},
	}},
	{title: "Other Metrics:", fields: []field{
		{label: "Cadence", keys: []string{"average_cadence"}, unit: "rpm", prec: 0},
		{label: "Calories", keys: []string{"calories"}, unit: "kcal", prec: 0},
		{label: "Average Speed", keys: []string{"average_speed"}, unit: "m/s", prec: 2},
		{label: "Max Speed", keys: []string{"max_speed"}, unit: "m/s", prec: 2},
		{label: "Average Stride", keys: []string{"average_stride"}, prec: 2},
		{label: "L/R Balance", keys: []string{"avg_lr_balance"}, prec: 1},
		{label: "Weight", keys: []string{"icu_weight"}, unit: "kg", prec: 1},
		{label: "Perceived Exertion", keys: []string{"perceived_exertion", "icu_rpe"}, unit: "/10", prec: 0},
		{label: "Session RPE", keys: []string{"session_rpe"}, prec: 0},
		{label: "Feel", keys: []string{"feel"}, unit: "/10", prec: 0},
	}},
	{title: "Environment:", fields: []field{
		{label: "Trainer", keys: []string{"trainer"}},
		{label: "Average Temp", keys: []string{"average_temp"}, unit: "°C", prec: 1},
		{label: "Min Temp", keys: []string{"min_temp"}, unit: "°C", prec: 1},
		{label: "Max Temp", keys: []string{"max_temp"}, unit: "°C", prec: 1},
		{label: "Avg Wind Speed", keys: []string{"average_wind_speed"}, unit: "km/h", prec: 1},
		{label: "Headwind", keys: []string{"headwind_percent"}, unit: "%", prec: 0},
		{label: "Tailwind", keys: []string{"tailwind_percent"}, unit: "%", prec: 0},
	}},
	{title: "Training Metrics:", fields: []field{
		{label: "Fitness (CTL)", keys: []string{"icu_ctl"}, prec: 1},
		{label: "Fatigue (ATL)", keys: []string{"icu_atl"}, prec: 1},
		{label: "TRIMP", keys: []string{"trimp"}, prec: 0},
		{label: "Polarization Index", keys: []string{"polarization_index"}, prec: 2},
		{label: "Power Load", keys: []string{"power_load"}, prec: 0},
		{label: "HR Load", keys: []string{"hr_load"}, prec: 0},
		{label: "Pace Load", keys: []string{"pace_load"}, prec: 0},
		{label: "Efficiency Factor", keys: []string{"icu_efficiency_factor"}, prec: 2},
	}},
	{title: "Device Info:", fields: []field{
		{label: "Device", keys: []string{"device_name"}},
		{label: "Power Meter", keys: []string{"power_meter"}},
		{label: "File Type", keys: []string{"file_type"}},
	}},
}

// Activity renders one activity payload as a fixed-order text block.
func Activity(m map[string]any) string {
	var b strings.Builder
	writeSections(&b, m, activitySections)
	return strings.TrimRight(b.String(), "\n")
}

// Activities renders a list of activities as one block per item in input
// order, or the no-results message for an empty list.
func Activities(items []map[string]any) string {
	blocks := make([]string, 0, len(items))
	for _, m := range items {
		blocks = append(blocks, Activity(m))
	}
	return joinBlocks(blocks)
}

// ActivityDetails renders the full activity block plus the time-in-zone
// breakdown when the payload carries one.
func ActivityDetails(m map[string]any) string {
	out := Activity(m)
	zones, ok := m["zones"].(map[string]any)
	if !ok {
		return out
	}
	var b strings.Builder
	b.WriteString(out)
	if power, ok := zones["power"].([]any); ok && len(power) > 0 {
		b.WriteString("\n\nPower Zones:\n")
		writeZones(&b, power)
	}
	if hr, ok := zones["hr"].([]any); ok && len(hr) > 0 {
		b.WriteString("\n\nHeart Rate Zones:\n")
		writeZones(&b, hr)
	}
	return b.String()
}

func writeZones(b *strings.Builder, zones []any) {
	for i, z := range zones {
		zm, ok := z.(map[string]any)
		if !ok {
			continue
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("Zone " + num(zm, "number", 0) + ": " + num(zm, "secondsInZone", 0) + " seconds")
	}
}
