package schedule

import (
	"testing"
	"time"

	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

func TestSettingsFromSalon_Defaults(t *testing.T) {
	st := SettingsFromSalon(&models.Salon{})

	if st.OffsetHours != -3 {
		t.Fatalf("OffsetHours = %d, want -3", st.OffsetHours)
	}
	if st.OpenTime != "09:00" || st.CloseTime != "18:00" {
		t.Fatalf("hours = %s-%s, want 09:00-18:00", st.OpenTime, st.CloseTime)
	}
	if st.MinAdvanceMinutes != 120 {
		t.Fatalf("MinAdvanceMinutes = %d, want 120", st.MinAdvanceMinutes)
	}
	if len(st.ClosedWeekdays) != 0 {
		t.Fatalf("expected no closed weekdays, got %v", st.ClosedWeekdays)
	}
}

func TestSettingsFromSalon_Configured(t *testing.T) {
	st := SettingsFromSalon(&models.Salon{
		UTCOffset:         "+2",
		OpenTime:          "08:00",
		CloseTime:         "20:00",
		ClosedWeekdays:    "0, 6",
		MinAdvanceMinutes: 30,
	})

	if st.OffsetHours != 2 {
		t.Fatalf("OffsetHours = %d, want 2", st.OffsetHours)
	}
	if !st.ClosedWeekdays[time.Sunday] || !st.ClosedWeekdays[time.Saturday] {
		t.Fatalf("expected sunday and saturday closed, got %v", st.ClosedWeekdays)
	}
	if st.ClosedWeekdays[time.Monday] {
		t.Fatal("monday should not be closed")
	}
}

func TestParseClosedWeekdays_IgnoresGarbage(t *testing.T) {
	got := parseClosedWeekdays("0,x,9,-1, 3 ,")
	if len(got) != 2 || !got[time.Sunday] || !got[time.Wednesday] {
		t.Fatalf("parseClosedWeekdays = %v, want {0,3}", got)
	}
}

func TestWithinBusinessHours(t *testing.T) {
	st := &Settings{
		OpenTime:       "09:00",
		CloseTime:      "18:00",
		ClosedWeekdays: map[time.Weekday]bool{time.Sunday: true},
	}

	// 2026-04-15 é quarta-feira
	day := func(h, m int) time.Time {
		return time.Date(2026, 4, 15, h, m, 0, 0, time.UTC)
	}

	if !st.WithinBusinessHours(day(9, 0), day(10, 0)) {
		t.Fatal("09:00-10:00 should be within business hours")
	}
	if !st.WithinBusinessHours(day(17, 0), day(18, 0)) {
		t.Fatal("interval ending exactly at close should be accepted")
	}
	if st.WithinBusinessHours(day(8, 0), day(9, 0)) {
		t.Fatal("interval before open should be rejected")
	}
	if st.WithinBusinessHours(day(17, 30), day(18, 30)) {
		t.Fatal("interval past close should be rejected")
	}

	sunday := time.Date(2026, 4, 19, 10, 0, 0, 0, time.UTC)
	if st.WithinBusinessHours(sunday, sunday.Add(time.Hour)) {
		t.Fatal("closed weekday should be rejected")
	}
}
