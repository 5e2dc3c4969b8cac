package schedule

import (
	"testing"
	"time"
)

func TestRecurrenceMatches(t *testing.T) {
	// 2026-04-13 é segunda-feira
	monday := time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC)
	sunday := monday.AddDate(0, 0, -1)

	rec := Recurrence{DaysOfWeek: []int{1, 3, 5}} // seg, qua, sex

	if !rec.Matches(monday) {
		t.Fatal("expected monday to match {1,3,5}")
	}
	if rec.Matches(sunday) {
		t.Fatal("expected sunday not to match {1,3,5}")
	}
	if !rec.Matches(monday.AddDate(0, 0, 2)) {
		t.Fatal("expected wednesday to match {1,3,5}")
	}
	if rec.Matches(monday.AddDate(0, 0, 1)) {
		t.Fatal("expected tuesday not to match {1,3,5}")
	}
}

func TestRecurrenceMatches_EmptyMeansEveryDay(t *testing.T) {
	rec := Recurrence{}
	day := time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		if !rec.Matches(day.AddDate(0, 0, i)) {
			t.Fatalf("expected empty rule to match %s", day.AddDate(0, 0, i).Weekday())
		}
	}
}

func TestRecurrenceSerializeParse(t *testing.T) {
	rec := Recurrence{
		DaysOfWeek: []int{2, 4},
		StartTime:  "12:00",
		EndTime:    "13:00",
	}

	parsed, err := ParseRecurrence(rec.Serialize())
	if err != nil {
		t.Fatalf("ParseRecurrence: %v", err)
	}
	if parsed.StartTime != "12:00" || parsed.EndTime != "13:00" {
		t.Fatalf("unexpected times: %+v", parsed)
	}
	if len(parsed.DaysOfWeek) != 2 || parsed.DaysOfWeek[0] != 2 || parsed.DaysOfWeek[1] != 4 {
		t.Fatalf("unexpected days: %+v", parsed.DaysOfWeek)
	}
}

func TestParseRecurrence_Empty(t *testing.T) {
	rec, err := ParseRecurrence("")
	if err != nil {
		t.Fatalf("ParseRecurrence(\"\"): %v", err)
	}
	if len(rec.DaysOfWeek) != 0 {
		t.Fatalf("expected empty rule, got %+v", rec)
	}
}
