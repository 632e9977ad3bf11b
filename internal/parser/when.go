// Package parser turns natural language date and time expressions into the
// canonical forms stored on records: YYYY-MM-DD dates and zero-padded HH:MM
// times.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// WhenResult holds a parsed appointment moment and any error.
type WhenResult struct {
	Date  string
	Time  string
	Error error
}

// ParseWhen parses a natural language appointment moment relative to now.
// Supports formats like:
//   - "2026-03-10 14:00" (ISO)
//   - "amanhã 14:00", "tomorrow 2pm" (natural language)
//   - "sexta 09:30", "friday 9:30" (weekday)
func ParseWhen(input string, now time.Time) WhenResult {
	input = strings.TrimSpace(input)
	if input == "" {
		return WhenResult{Error: fmt.Errorf("date and time are required")}
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return WhenResult{Error: fmt.Errorf("could not parse %q", input)}
	}

	t := result.Time
	if t.Before(now) {
		// A bare weekday or clock time that already passed today means the
		// next occurrence, not a past one.
		if isSameDay(t, now) {
			t = t.AddDate(0, 0, 1)
		} else {
			return WhenResult{Error: fmt.Errorf("appointment must be in the future")}
		}
	}

	return WhenResult{
		Date: t.Format("2006-01-02"),
		Time: t.Format("15:04"),
	}
}

// ParseWhenArgs joins command arguments into one expression and parses it.
func ParseWhenArgs(args []string, now time.Time) WhenResult {
	if len(args) == 0 {
		return WhenResult{Error: fmt.Errorf("date and time are required")}
	}
	return ParseWhen(strings.Join(args, " "), now)
}

// clockRegex matches bare clock inputs: "8", "8h", "8:30", "08:30".
var clockRegex = regexp.MustCompile(`^(\d{1,2})(?:[h:](\d{2})?)?$`)

// ParseClock parses a daily medication time into zero-padded HH:MM. Accepts
// canonical "08:00" as well as shorthand like "8", "8h" and "8:30"; anything
// else goes through natural language parsing and keeps only the clock part.
func ParseClock(input string, now time.Time) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("time is required")
	}

	if match := clockRegex.FindStringSubmatch(input); match != nil {
		hour, _ := strconv.Atoi(match[1])
		minute := 0
		if match[2] != "" {
			minute, _ = strconv.Atoi(match[2])
		}
		if hour > 23 || minute > 59 {
			return "", fmt.Errorf("invalid time %q", input)
		}
		return fmt.Sprintf("%02d:%02d", hour, minute), nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return "", fmt.Errorf("could not parse time %q", input)
	}
	return result.Time.Format("15:04"), nil
}

// isSameDay checks if two times are on the same day.
func isSameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
