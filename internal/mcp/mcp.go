// Package mcp implements the Model Context Protocol surface of the
// intervals.icu server.
//
// Each tool validates its parameters, issues one upstream call through the
// client adapter, and returns either formatted text or the fixed message
// for the classified error. Tools are exposed over stdio so any MCP-aware
// client (Claude Desktop, Cursor, etc.) can call them.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/icu-tools/intervals-mcp/internal/format"
	"github.com/icu-tools/intervals-mcp/internal/icu"
)

const dateLayout = "2006-01-02"

const (
	defaultLimit = 10
	maxLimit     = 50
)

func NewServer(c *icu.Client) *server.MCPServer {
	srv := server.NewMCPServer(
		"intervals-icu",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	registerTools(srv, c)
	return srv
}

func registerTools(srv *server.MCPServer, c *icu.Client) {
	// ─── get_activities ──────────────────────────────────────────────
	srv.AddTool(
		mcp.NewTool("get_activities",
			mcp.WithDescription("Get a list of activities for an athlete from intervals.icu. Returns a formatted summary per activity including distance, duration, power, and heart rate data."),
			mcp.WithString("athlete_id",
				mcp.Description("The intervals.icu athlete ID (optional, defaults to the configured athlete)"),
			),
			mcp.WithString("start_date",
				mcp.Description("Start date in YYYY-MM-DD format (optional, defaults to 30 days ago)"),
			),
			mcp.WithString("end_date",
				mcp.Description("End date in YYYY-MM-DD format (optional, defaults to today)"),
			),
			mcp.WithNumber("limit",
				mcp.Description(fmt.Sprintf("Maximum number of activities to return (1-%d, default: %d)", maxLimit, defaultLimit)),
			),
			mcp.WithBoolean("include_unnamed",
				mcp.Description("Whether to include unnamed activities (default: false)"),
			),
		),
		handleGetActivities(c),
	)

	// ─── get_activity_details ────────────────────────────────────────
	srv.AddTool(
		mcp.NewTool("get_activity_details",
			mcp.WithDescription("Get detailed information for a specific activity from intervals.icu, including power and heart rate zone breakdowns when available."),
			mcp.WithString("activity_id",
				mcp.Required(),
				mcp.Description("The intervals.icu activity ID"),
			),
		),
		handleGetActivityDetails(c),
	)

	// ─── get_activity_intervals ──────────────────────────────────────
	srv.AddTool(
		mcp.NewTool("get_activity_intervals",
			mcp.WithDescription("Get interval data for a specific activity from intervals.icu: per-interval power, heart rate, cadence, speed, and environmental metrics, plus grouped intervals if applicable."),
			mcp.WithString("activity_id",
				mcp.Required(),
				mcp.Description("The intervals.icu activity ID"),
			),
		),
		handleGetActivityIntervals(c),
	)

	// ─── get_events ──────────────────────────────────────────────────
	srv.AddTool(
		mcp.NewTool("get_events",
			mcp.WithDescription("Get calendar events (workouts, races, notes) for an athlete from intervals.icu."),
			mcp.WithString("athlete_id",
				mcp.Description("The intervals.icu athlete ID (optional, defaults to the configured athlete)"),
			),
			mcp.WithString("start_date",
				mcp.Description("Start date in YYYY-MM-DD format (optional, defaults to today)"),
			),
			mcp.WithString("end_date",
				mcp.Description("End date in YYYY-MM-DD format (optional, defaults to 30 days from today)"),
			),
		),
		handleGetEvents(c),
	)

	// ─── get_event_by_id ─────────────────────────────────────────────
	srv.AddTool(
		mcp.NewTool("get_event_by_id",
			mcp.WithDescription("Get detailed information for a specific event from intervals.icu, including workout, race, and calendar details."),
			mcp.WithString("event_id",
				mcp.Required(),
				mcp.Description("The intervals.icu event ID"),
			),
			mcp.WithString("athlete_id",
				mcp.Description("The intervals.icu athlete ID (optional, defaults to the configured athlete)"),
			),
		),
		handleGetEventByID(c),
	)

	// ─── get_wellness_data ───────────────────────────────────────────
	srv.AddTool(
		mcp.NewTool("get_wellness_data",
			mcp.WithDescription("Get wellness data for an athlete from intervals.icu: training load, vital signs, sleep, and subjective metrics per day."),
			mcp.WithString("athlete_id",
				mcp.Description("The intervals.icu athlete ID (optional, defaults to the configured athlete)"),
			),
			mcp.WithString("start_date",
				mcp.Description("Start date in YYYY-MM-DD format (optional, defaults to 30 days ago)"),
			),
			mcp.WithString("end_date",
				mcp.Description("End date in YYYY-MM-DD format (optional, defaults to today)"),
			),
		),
		handleGetWellness(c),
	)
}

// ─── Tool Handlers ───────────────────────────────────────────────────────────

func handleGetActivities(c *icu.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		athleteID := stringArgOr(req, "athlete_id", c.AthleteID())
		start := stringArgOr(req, "start_date", daysFromNow(-30))
		end := stringArgOr(req, "end_date", daysFromNow(0))
		limit := intArg(req, "limit", defaultLimit)
		includeUnnamed := boolArg(req, "include_unnamed")

		if err := validateRange(start, end); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if limit < 1 || limit > maxLimit {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid parameter: limit must be between 1 and %d.", maxLimit)), nil
		}

		// Over-fetch when unnamed activities will be filtered out.
		apiLimit := limit
		if !includeUnnamed {
			apiLimit = limit * 3
		}

		raw, err := c.Activities(ctx, athleteID, start, end, apiLimit)
		if err != nil {
			return mcp.NewToolResultError(errText("Error fetching activities", err)), nil
		}

		activities := decodeActivityList(raw)
		if !includeUnnamed {
			activities = filterNamed(activities)

			// Not enough named activities in the window: widen once into
			// the preceding 60 days. This is part of the documented
			// operation, not a retry.
			if len(activities) < limit {
				if oldest, err := time.Parse(dateLayout, start); err == nil {
					olderStart := oldest.AddDate(0, 0, -60).Format(dateLayout)
					olderEnd := oldest.AddDate(0, 0, -1).Format(dateLayout)
					if more, err := c.Activities(ctx, athleteID, olderStart, olderEnd, apiLimit); err == nil {
						activities = append(activities, filterNamed(decodeActivityList(more))...)
					}
				}
			}
		}

		if len(activities) > limit {
			activities = activities[:limit]
		}
		if len(activities) == 0 {
			return mcp.NewToolResultText(format.NoResults), nil
		}

		return mcp.NewToolResultText("Activities:\n\n" + format.Activities(activities)), nil
	}
}

func handleGetActivityDetails(c *icu.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		activityID := stringArgOr(req, "activity_id", "")
		if activityID == "" {
			return mcp.NewToolResultError("Invalid parameter: activity_id is required."), nil
		}

		raw, err := c.Activity(ctx, activityID)
		if err != nil {
			return mcp.NewToolResultError(errText(fmt.Sprintf("Error fetching activity %s", activityID), err)), nil
		}

		activity, ok := decodeObject(raw)
		if !ok {
			return mcp.NewToolResultText(fmt.Sprintf("No details found for activity %s.", activityID)), nil
		}

		return mcp.NewToolResultText(format.ActivityDetails(activity)), nil
	}
}

func handleGetActivityIntervals(c *icu.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		activityID := stringArgOr(req, "activity_id", "")
		if activityID == "" {
			return mcp.NewToolResultError("Invalid parameter: activity_id is required."), nil
		}

		raw, err := c.ActivityIntervals(ctx, activityID)
		if err != nil {
			return mcp.NewToolResultError(errText(fmt.Sprintf("Error fetching intervals for activity %s", activityID), err)), nil
		}

		data, ok := decodeObject(raw)
		if !ok {
			return mcp.NewToolResultText(fmt.Sprintf("No interval data found for activity %s.", activityID)), nil
		}
		if _, hasIntervals := data["icu_intervals"]; !hasIntervals {
			if _, hasGroups := data["icu_groups"]; !hasGroups {
				return mcp.NewToolResultText(fmt.Sprintf("No interval data found for activity %s.", activityID)), nil
			}
		}

		return mcp.NewToolResultText(format.Intervals(data)), nil
	}
}

func handleGetEvents(c *icu.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		athleteID := stringArgOr(req, "athlete_id", c.AthleteID())
		start := stringArgOr(req, "start_date", daysFromNow(0))
		end := stringArgOr(req, "end_date", daysFromNow(30))

		if err := validateRange(start, end); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		raw, err := c.Events(ctx, athleteID, start, end)
		if err != nil {
			return mcp.NewToolResultError(errText("Error fetching events", err)), nil
		}

		events := decodeList(raw)
		if len(events) == 0 {
			return mcp.NewToolResultText(format.NoResults), nil
		}

		return mcp.NewToolResultText("Events:\n\n" + format.EventSummaries(events)), nil
	}
}

func handleGetEventByID(c *icu.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		eventID := stringArgOr(req, "event_id", "")
		if eventID == "" {
			return mcp.NewToolResultError("Invalid parameter: event_id is required."), nil
		}
		athleteID := stringArgOr(req, "athlete_id", c.AthleteID())

		raw, err := c.Event(ctx, athleteID, eventID)
		if err != nil {
			return mcp.NewToolResultError(errText(fmt.Sprintf("Error fetching event %s", eventID), err)), nil
		}

		event, ok := decodeObject(raw)
		if !ok {
			return mcp.NewToolResultText(fmt.Sprintf("No details found for event %s.", eventID)), nil
		}

		return mcp.NewToolResultText(format.EventDetails(event)), nil
	}
}

func handleGetWellness(c *icu.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		athleteID := stringArgOr(req, "athlete_id", c.AthleteID())
		start := stringArgOr(req, "start_date", daysFromNow(-30))
		end := stringArgOr(req, "end_date", daysFromNow(0))

		if err := validateRange(start, end); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		raw, err := c.Wellness(ctx, athleteID, start, end)
		if err != nil {
			return mcp.NewToolResultError(errText("Error fetching wellness data", err)), nil
		}

		entries := decodeWellness(raw)
		if len(entries) == 0 {
			return mcp.NewToolResultText(format.NoResults), nil
		}

		return mcp.NewToolResultText("Wellness Data:\n\n" + format.WellnessEntries(entries)), nil
	}
}

// errText maps a classified adapter error to its fixed user-facing message.
func errText(prefix string, err error) string {
	var apiErr *icu.APIError
	if errors.As(err, &apiErr) {
		return prefix + ": " + apiErr.Message()
	}
	return prefix + ": " + err.Error()
}

// ─── Parameter helpers ───────────────────────────────────────────────────────

func stringArgOr(req mcp.CallToolRequest, key, fallback string) string {
	if v, ok := req.GetArguments()[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

func boolArg(req mcp.CallToolRequest, key string) bool {
	v, _ := req.GetArguments()[key].(bool)
	return v
}

func daysFromNow(days int) string {
	return time.Now().AddDate(0, 0, days).Format(dateLayout)
}

// validateRange rejects malformed or inverted date ranges before any
// network call happens.
func validateRange(start, end string) error {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return fmt.Errorf("Invalid parameter: start_date %q is not in YYYY-MM-DD format.", start)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return fmt.Errorf("Invalid parameter: end_date %q is not in YYYY-MM-DD format.", end)
	}
	if e.Before(s) {
		return fmt.Errorf("Invalid parameter: end_date %s is before start_date %s.", end, start)
	}
	return nil
}

// ─── Payload decoding ────────────────────────────────────────────────────────

// decodeList decodes a JSON array of objects, dropping non-object entries.
func decodeList(raw json.RawMessage) []map[string]any {
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, m := range items {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

// decodeActivityList accepts the shapes the activities endpoint has been
// observed to return: a plain array, an object wrapping an array, or a
// single activity object.
func decodeActivityList(raw json.RawMessage) []map[string]any {
	if items := decodeList(raw); items != nil {
		return items
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil
	}
	for _, v := range obj {
		if list, ok := v.([]any); ok {
			items := make([]map[string]any, 0, len(list))
			for _, item := range list {
				if m, ok := item.(map[string]any); ok {
					items = append(items, m)
				}
			}
			return items
		}
	}
	// A single activity object rather than a container.
	for _, key := range []string{"name", "startTime", "distance"} {
		if _, ok := obj[key]; ok {
			return []map[string]any{obj}
		}
	}
	return nil
}

// decodeObject decodes a single JSON object, accepting the first element
// when the endpoint wraps it in an array.
func decodeObject(raw json.RawMessage) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil && obj != nil {
		return obj, true
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err == nil && len(items) > 0 && items[0] != nil {
		return items[0], true
	}
	return nil, false
}

// decodeWellness accepts both shapes of the wellness endpoint: a list of
// entries, or a map keyed by date. Map entries get the date injected and
// are ordered by date so output is deterministic.
func decodeWellness(raw json.RawMessage) []map[string]any {
	if items := decodeList(raw); items != nil {
		return items
	}

	var byDate map[string]map[string]any
	if err := json.Unmarshal(raw, &byDate); err != nil || len(byDate) == 0 {
		return nil
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	entries := make([]map[string]any, 0, len(dates))
	for _, d := range dates {
		entry := byDate[d]
		if entry == nil {
			continue
		}
		if _, ok := entry["date"]; !ok {
			entry["date"] = d
		}
		entries = append(entries, entry)
	}
	return entries
}

func filterNamed(items []map[string]any) []map[string]any {
	named := make([]map[string]any, 0, len(items))
	for _, m := range items {
		name, _ := m["name"].(string)
		if name != "" && name != "Unnamed" {
			named = append(named, m)
		}
	}
	return named
}
