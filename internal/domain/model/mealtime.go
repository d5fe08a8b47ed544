package model

import (
	"fmt"
	"strings"
	"time"
)

// MealTime is the unit of delivery scheduling within a subscription day.
type MealTime string

const (
	MealTimeBreakfast MealTime = "breakfast"
	MealTimeLunch     MealTime = "lunch"
	MealTimeDinner    MealTime = "dinner"
)

// MealTimes lists all meal times in delivery order.
var MealTimes = []MealTime{MealTimeBreakfast, MealTimeLunch, MealTimeDinner}

// ParseMealTime normalizes raw input to a known meal time.
func ParseMealTime(raw string) (MealTime, error) {
	switch MealTime(strings.ToLower(strings.TrimSpace(raw))) {
	case MealTimeBreakfast:
		return MealTimeBreakfast, nil
	case MealTimeLunch:
		return MealTimeLunch, nil
	case MealTimeDinner:
		return MealTimeDinner, nil
	default:
		return "", fmt.Errorf("unknown meal time %q", raw)
	}
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date and pins it to noon UTC. Anchoring to the
// middle of the day keeps the calendar date stable regardless of the zone the
// value is later rendered or compared in.
func ParseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", raw, DateLayout)
	}
	return NormalizeDate(parsed), nil
}

// NormalizeDate returns the noon-UTC instant of t's UTC calendar day.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// SameDay reports whether both instants fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return NormalizeDate(a).Equal(NormalizeDate(b))
}
