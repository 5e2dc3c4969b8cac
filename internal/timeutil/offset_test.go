package timeutil

import (
	"testing"
	"time"
)

func TestParseOffsetHours(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"-3", -3},
		{"+5", 5},
		{"0", 0},
		{"14", 14},
		{" -3 ", -3},
		{"", DefaultOffsetHours},
		{"abc", DefaultOffsetHours},
		{"America/Sao_Paulo", DefaultOffsetHours},
	}

	for _, c := range cases {
		if got := ParseOffsetHours(c.in); got != c.want {
			t.Errorf("ParseOffsetHours(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestToUTC(t *testing.T) {
	// 10:00 local com deslocamento -3 é 13:00 UTC
	local := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	got := ToUTC(local, -3)
	want := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ToUTC = %s, want %s", got, want)
	}
}

func TestToUTC_CrossesMidnight(t *testing.T) {
	// 23:00 local em +5 cai no dia anterior em UTC
	local := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	got := ToUTC(local, 5)
	want := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ToUTC = %s, want %s", got, want)
	}

	local = time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	got = ToUTC(local, 5)
	want = time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ToUTC = %s, want %s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	local := time.Date(2026, 7, 1, 15, 30, 0, 0, time.UTC)

	for offset := -12; offset <= 14; offset++ {
		utc := ToUTC(local, offset)
		back := ToLocal(utc, offset)
		if !back.Equal(local) {
			t.Errorf("offset %d: round trip = %s, want %s", offset, back, local)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}
	if tod.Hour() != 9 || tod.Minute() != 30 {
		t.Fatalf("ParseTimeOfDay = %02d:%02d, want 09:30", tod.Hour(), tod.Minute())
	}

	if _, err := ParseTimeOfDay("25:00"); err == nil {
		t.Fatal("expected error for 25:00")
	}
	if _, err := ParseTimeOfDay("9h30"); err == nil {
		t.Fatal("expected error for 9h30")
	}
}

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	tod, _ := ParseTimeOfDay("14:45")

	got := CombineDateTime(date, tod)
	want := time.Date(2026, 5, 20, 14, 45, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("CombineDateTime = %s, want %s", got, want)
	}
}
