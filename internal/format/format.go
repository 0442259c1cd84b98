// Package format renders decoded intervals.icu JSON payloads as stable,
// human-readable text blocks.
//
// Every resource kind has a fixed ordered field table. A field absent from
// the payload renders the explicit "Not available" placeholder instead of
// being skipped, so the line count per kind never varies with the payload.
// All functions are pure: same payload in, byte-identical text out.
//
// Units are the metric ones intervals.icu itself declares (meters, seconds,
// watts, bpm, m/s, kg, °C, km/h); they are attached here, never guessed.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Placeholder marks a documented field the payload did not carry.
const Placeholder = "Not available"

// NoResults is what every empty list renders as, never an empty string.
const NoResults = "No results"

// blockSep separates per-item blocks in list output.
const blockSep = "\n\n"

// field is one row of a resource kind's output table: a label, the payload
// key(s) that may carry the value (first present wins), a fixed unit suffix
// and decimal precision for numbers.
type field struct {
	label string
	keys  []string
	unit  string
	prec  int
	conv  func(any) string // optional custom renderer for present values
}

// section groups fields under an optional header line.
type section struct {
	title  string
	fields []field
}

func lookup(m map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// renderValue turns a present value into text, applying unit and precision.
func renderValue(v any, f field) string {
	if f.conv != nil {
		return f.conv(v)
	}
	var s string
	switch x := v.(type) {
	case string:
		if x == "" {
			return Placeholder
		}
		s = x
	case float64:
		s = strconv.FormatFloat(x, 'f', f.prec, 64)
	case bool:
		s = strconv.FormatBool(x)
	default:
		s = fmt.Sprintf("%v", x)
	}
	return s + unitSuffix(f.unit)
}

// unitSuffix joins a unit to a value: "/10" and "%" attach directly,
// everything else gets a separating space.
func unitSuffix(unit string) string {
	if unit == "" {
		return ""
	}
	if strings.HasPrefix(unit, "/") || unit == "%" {
		return unit
	}
	return " " + unit
}

func writeField(b *strings.Builder, m map[string]any, f field) {
	b.WriteString(f.label)
	b.WriteString(": ")
	if v, ok := lookup(m, f.keys); ok {
		b.WriteString(renderValue(v, f))
	} else {
		b.WriteString(Placeholder)
	}
	b.WriteByte('\n')
}

func writeSections(b *strings.Builder, m map[string]any, sections []section) {
	for i, sec := range sections {
		if sec.title != "" {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(sec.title)
			b.WriteByte('\n')
		}
		for _, f := range sec.fields {
			writeField(b, m, f)
		}
	}
}

// num renders a numeric payload value with fixed precision, or the
// placeholder when absent. Used by composed lines that pack several values.
func num(m map[string]any, key string, prec int) string {
	v, ok := m[key]
	if !ok || v == nil {
		return Placeholder
	}
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', prec, 64)
	case string:
		if x == "" {
			return Placeholder
		}
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}

// str renders a string payload value, or the placeholder when absent.
func str(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return Placeholder
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	if s == "" {
		return Placeholder
	}
	return s
}

// timestamp reformats a full ISO timestamp as "2006-01-02 15:04:05"; short
// or unparseable values pass through untouched.
func timestamp(v any) string {
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	if len(s) <= 10 {
		return s
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02 15:04:05")
}

// capitalized upper-cases the first letter, for enum-ish string values.
func capitalized(v any) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return Placeholder
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// joinBlocks renders a list payload as per-item blocks in input order, or
// the fixed no-results message for an empty list.
func joinBlocks(blocks []string) string {
	if len(blocks) == 0 {
		return NoResults
	}
	return strings.Join(blocks, blockSep)
}
