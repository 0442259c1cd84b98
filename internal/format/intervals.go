package format

import (
	"strconv"
	"strings"
)

// Intervals renders the interval analysis of one activity: the header,
// then one block per individual interval, then one per interval group.
func Intervals(m map[string]any) string {
	var b strings.Builder
	b.WriteString("Intervals Analysis:\n\n")
	b.WriteString("ID: " + str(m, "id") + "\n")
	b.WriteString("Analyzed: " + analyzed(m) + "\n")

	if items, ok := m["icu_intervals"].([]any); ok && len(items) > 0 {
		b.WriteString("\nIndividual Intervals:\n\n")
		for i, item := range items {
			im, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if i > 0 {
				b.WriteString(blockSep)
			}
			writeInterval(&b, im, i+1)
		}
		b.WriteByte('\n')
	}

	if groups, ok := m["icu_groups"].([]any); ok && len(groups) > 0 {
		b.WriteString("\nInterval Groups:\n\n")
		for i, item := range groups {
			gm, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if i > 0 {
				b.WriteString(blockSep)
			}
			writeGroup(&b, gm, i+1)
		}
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n")
}

func analyzed(m map[string]any) string {
	v, ok := m["analyzed"]
	if !ok || v == nil {
		return Placeholder
	}
	if x, ok := v.(bool); ok {
		return strconv.FormatBool(x)
	}
	return str(m, "analyzed")
}

func writeInterval(b *strings.Builder, m map[string]any, n int) {
	label := str(m, "label")
	if label == Placeholder {
		label = "Interval " + strconv.Itoa(n)
	}
	b.WriteString("[" + strconv.Itoa(n) + "] " + label + " (" + str(m, "type") + ")\n")
	b.WriteString("Duration: " + num(m, "elapsed_time", 0) + " s (moving: " + num(m, "moving_time", 0) + " s)\n")
	b.WriteString("Distance: " + num(m, "distance", 1) + " m\n")
	b.WriteString("Start-End Indices: " + num(m, "start_index", 0) + "-" + num(m, "end_index", 0) + "\n\n")

	b.WriteString("Power Metrics:\n")
	b.WriteString("  Average Power: " + num(m, "average_watts", 0) + " W (" + num(m, "average_watts_kg", 2) + " W/kg)\n")
	b.WriteString("  Max Power: " + num(m, "max_watts", 0) + " W (" + num(m, "max_watts_kg", 2) + " W/kg)\n")
	b.WriteString("  Weighted Avg Power: " + num(m, "weighted_average_watts", 0) + " W\n")
	b.WriteString("  Intensity: " + num(m, "intensity", 1) + "\n")
	b.WriteString("  Training Load: " + num(m, "training_load", 0) + "\n")
	b.WriteString("  Joules: " + num(m, "joules", 0) + "\n")
	b.WriteString("  Joules > FTP: " + num(m, "joules_above_ftp", 0) + "\n")
	b.WriteString("  Power Zone: " + num(m, "zone", 0) + " (" + num(m, "zone_min_watts", 0) + "-" + num(m, "zone_max_watts", 0) + " W)\n")
	b.WriteString("  W' Balance: Start " + num(m, "wbal_start", 0) + ", End " + num(m, "wbal_end", 0) + "\n")
	b.WriteString("  L/R Balance: " + num(m, "avg_lr_balance", 1) + "\n")
	b.WriteString("  Variability: " + num(m, "w5s_variability", 2) + "\n")
	b.WriteString("  Torque: Avg " + num(m, "average_torque", 1) + ", Min " + num(m, "min_torque", 1) + ", Max " + num(m, "max_torque", 1) + "\n\n")

	b.WriteString("Heart Rate & Metabolic:\n")
	b.WriteString("  Heart Rate: Avg " + num(m, "average_heartrate", 0) + ", Min " + num(m, "min_heartrate", 0) + ", Max " + num(m, "max_heartrate", 0) + " bpm\n")
	b.WriteString("  Decoupling: " + num(m, "decoupling", 2) + "\n")
	b.WriteString("  DFA α1: " + num(m, "average_dfa_a1", 2) + "\n")
	b.WriteString("  Respiration: " + num(m, "average_respiration", 1) + " breaths/min\n")
	b.WriteString("  EPOC: " + num(m, "average_epoc", 1) + "\n")
	b.WriteString("  SmO2: " + num(m, "average_smo2", 1) + "% / " + num(m, "average_smo2_2", 1) + "%\n")
	b.WriteString("  THb: " + num(m, "average_thb", 2) + " / " + num(m, "average_thb_2", 2) + "\n\n")

	b.WriteString("Speed & Cadence:\n")
	b.WriteString("  Speed: Avg " + num(m, "average_speed", 2) + ", Min " + num(m, "min_speed", 2) + ", Max " + num(m, "max_speed", 2) + " m/s\n")
	b.WriteString("  GAP: " + num(m, "gap", 2) + " m/s\n")
	b.WriteString("  Cadence: Avg " + num(m, "average_cadence", 0) + ", Min " + num(m, "min_cadence", 0) + ", Max " + num(m, "max_cadence", 0) + " rpm\n")
	b.WriteString("  Stride: " + num(m, "average_stride", 2) + "\n\n")

	b.WriteString("Elevation & Environment:\n")
	b.WriteString("  Elevation Gain: " + num(m, "total_elevation_gain", 0) + " m\n")
	b.WriteString("  Altitude: Min " + num(m, "min_altitude", 0) + ", Max " + num(m, "max_altitude", 0) + " m\n")
	b.WriteString("  Gradient: " + num(m, "average_gradient", 1) + "%\n")
	b.WriteString("  Temperature: " + num(m, "average_temp", 1) + " °C (Weather: " + num(m, "average_weather_temp", 1) + " °C, Feels like: " + num(m, "average_feels_like", 1) + " °C)\n")
	b.WriteString("  Wind: Speed " + num(m, "average_wind_speed", 1) + " km/h, Gust " + num(m, "average_wind_gust", 1) + " km/h, Direction " + num(m, "prevailing_wind_deg", 0) + "°\n")
	b.WriteString("  Headwind: " + num(m, "headwind_percent", 0) + "%, Tailwind: " + num(m, "tailwind_percent", 0) + "%")
}

func writeGroup(b *strings.Builder, m map[string]any, n int) {
	id := str(m, "id")
	if id == Placeholder {
		id = "Group " + strconv.Itoa(n)
	}
	b.WriteString("Group: " + id + " (Contains " + num(m, "count", 0) + " intervals)\n")
	b.WriteString("Duration: " + num(m, "elapsed_time", 0) + " s (moving: " + num(m, "moving_time", 0) + " s)\n")
	b.WriteString("Distance: " + num(m, "distance", 1) + " m\n\n")

	b.WriteString("Power: Avg " + num(m, "average_watts", 0) + " W (" + num(m, "average_watts_kg", 2) + " W/kg), Max " + num(m, "max_watts", 0) + " W\n")
	b.WriteString("W. Avg Power: " + num(m, "weighted_average_watts", 0) + " W, Intensity: " + num(m, "intensity", 1) + "\n")
	b.WriteString("Heart Rate: Avg " + num(m, "average_heartrate", 0) + ", Max " + num(m, "max_heartrate", 0) + " bpm\n")
	b.WriteString("Speed: Avg " + num(m, "average_speed", 2) + ", Max " + num(m, "max_speed", 2) + " m/s\n")
	b.WriteString("Cadence: Avg " + num(m, "average_cadence", 0) + ", Max " + num(m, "max_cadence", 0) + " rpm")
}
