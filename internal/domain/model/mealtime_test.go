package model

import (
	"testing"
	"time"
)

func TestParseMealTime(t *testing.T) {
	valid := map[string]MealTime{
		"breakfast": MealTimeBreakfast,
		"Lunch":     MealTimeLunch,
		" DINNER ":  MealTimeDinner,
	}
	for raw, want := range valid {
		got, err := ParseMealTime(raw)
		if err != nil || got != want {
			t.Errorf("ParseMealTime(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	for _, raw := range []string{"", "brunch", "supper"} {
		if _, err := ParseMealTime(raw); err == nil {
			t.Errorf("ParseMealTime(%q) must fail", raw)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Hour() != 12 || d.Location() != time.UTC {
		t.Fatalf("expected noon UTC anchor, got %v", d)
	}
	if d.Year() != 2026 || d.Month() != time.March || d.Day() != 5 {
		t.Fatalf("wrong calendar day: %v", d)
	}

	for _, raw := range []string{"", "05-03-2026", "2026-13-01", "2026-03-05T00:00:00Z"} {
		if _, err := ParseDate(raw); err == nil {
			t.Errorf("ParseDate(%q) must fail", raw)
		}
	}
}

func TestSameDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	a := time.Date(2026, 3, 5, 23, 45, 0, 0, time.UTC)
	b := time.Date(2026, 3, 6, 5, 0, 0, 0, ist) // 23:30 UTC on March 5

	if !SameDay(a, b) {
		t.Error("instants on the same UTC day must compare equal")
	}
	if SameDay(a, a.Add(24*time.Hour)) {
		t.Error("different UTC days must not compare equal")
	}
	if got := NormalizeDate(b); got.Day() != 5 || got.Hour() != 12 {
		t.Errorf("NormalizeDate = %v, want noon UTC March 5", got)
	}
}
