// Package timeutil provides the canonical time representation used by the
// scheduling core: minutes since midnight, with parse/format adapters for the
// two wall-clock string forms the surrounding system exchanges.
//
// Malformed input is always an error; nothing is clamped or guessed. Call
// sites that own both ends of a string (items the core itself produced) may
// ignore the error.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock parses either a 24-hour "HH:MM" or a 12-hour "h:mm AM/PM" clock
// string into minutes since midnight.
func ParseClock(s string) (int, error) {
	raw := strings.ToUpper(strings.Join(strings.Fields(s), ""))
	if raw == "" {
		return 0, fmt.Errorf("empty time string")
	}

	isPM := strings.HasSuffix(raw, "PM")
	isAM := strings.HasSuffix(raw, "AM")
	if isPM || isAM {
		raw = raw[:len(raw)-2]
	}

	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM or h:mm AM/PM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if m < 0 || m > 59 {
		return 0, fmt.Errorf("minute out of range in %q", s)
	}

	switch {
	case isPM:
		if h < 1 || h > 12 {
			return 0, fmt.Errorf("hour out of range in %q", s)
		}
		if h != 12 {
			h += 12
		}
	case isAM:
		if h < 1 || h > 12 {
			return 0, fmt.Errorf("hour out of range in %q", s)
		}
		if h == 12 {
			h = 0
		}
	default:
		if h < 0 || h > 23 {
			return 0, fmt.Errorf("hour out of range in %q", s)
		}
	}

	return h*60 + m, nil
}

// Format24 renders minutes since midnight as "HH:MM". This is the form the
// rule-based scheduler emits.
func Format24(minutes int) string {
	minutes = wrap(minutes)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Format12 renders minutes since midnight as "h:mm AM/PM". This is the form
// the reschedulers emit; downstream string comparisons depend on the split,
// so the two formats are intentionally not unified.
func Format12(minutes int) string {
	minutes = wrap(minutes)
	h := minutes / 60
	m := minutes % 60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, m, period)
}

// Duration returns end-start in minutes for two clock strings.
func Duration(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}

// Minutes parses a clock string the core itself produced, returning 0 on
// malformed input. Use ParseClock for anything caller-supplied.
func Minutes(s string) int {
	m, _ := ParseClock(s)
	return m
}

func wrap(minutes int) int {
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	return minutes
}
