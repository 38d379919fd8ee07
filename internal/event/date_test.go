package event

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2025-01-15")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if d != (Date{Year: 2025, Month: time.January, Day: 15}) {
		t.Fatalf("unexpected date: %+v", d)
	}
	if d.String() != "2025-01-15" {
		t.Fatalf("unexpected string form %q", d.String())
	}

	if _, err := ParseDate("15/01/2025"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestDateCompare(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b Date
		want int
	}{
		{name: "equal", a: NewDate(2025, 3, 1), b: NewDate(2025, 3, 1), want: 0},
		{name: "year", a: NewDate(2024, 12, 31), b: NewDate(2025, 1, 1), want: -1},
		{name: "month", a: NewDate(2025, 4, 1), b: NewDate(2025, 3, 31), want: 1},
		{name: "day", a: NewDate(2025, 3, 2), b: NewDate(2025, 3, 1), want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Compare(tc.b); got != tc.want {
				t.Fatalf("Compare(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}

	if !NewDate(2025, 3, 2).After(NewDate(2025, 3, 1)) {
		t.Fatalf("expected After to be true")
	}
	if NewDate(2025, 3, 1).After(NewDate(2025, 3, 1)) {
		t.Fatalf("expected After to be strict")
	}
	if !NewDate(2025, 2, 28).Before(NewDate(2025, 3, 1)) {
		t.Fatalf("expected Before to be true")
	}
}

func TestNewDateNormalizes(t *testing.T) {
	t.Parallel()

	if got := NewDate(2025, 2, 29); got != NewDate(2025, 3, 1) {
		t.Fatalf("expected 2025-02-29 to normalize to 2025-03-01, got %v", got)
	}
}

func TestDateOfUsesLocation(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	instant := time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC)

	if got := DateOf(instant.In(tokyo)); got != NewDate(2025, 1, 16) {
		t.Fatalf("expected Tokyo date 2025-01-16, got %v", got)
	}
	if got := DateOf(instant); got != NewDate(2025, 1, 15) {
		t.Fatalf("expected UTC date 2025-01-15, got %v", got)
	}
}

func TestMidnight(t *testing.T) {
	t.Parallel()

	d := NewDate(2025, 6, 15)
	if got := d.Midnight(nil); !got.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected midnight %v", got)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	tod, err := ParseTimeOfDay("09:05")
	if err != nil {
		t.Fatalf("ParseTimeOfDay returned error: %v", err)
	}
	if tod.Hour != 9 || tod.Minute != 5 {
		t.Fatalf("unexpected time of day %+v", tod)
	}
	if tod.String() != "09:05" {
		t.Fatalf("unexpected string form %q", tod.String())
	}
	if tod.Minutes() != 545 {
		t.Fatalf("expected 545 minutes, got %d", tod.Minutes())
	}

	if _, err := ParseTimeOfDay("25:00"); err == nil {
		t.Fatalf("expected error for out of range hour")
	}
}

func TestDateValid(t *testing.T) {
	cases := []struct {
		date Date
		want bool
	}{
		{Date{Year: 2025, Month: time.January, Day: 15}, true},
		{Date{Year: 2024, Month: time.February, Day: 29}, true},
		{Date{Year: 9999, Month: time.December, Day: 31}, true},
		{Date{Year: 2025, Month: time.February, Day: 29}, false},
		{Date{Year: 2025, Month: time.April, Day: 31}, false},
		{Date{Year: 2025, Month: 0, Day: 1}, false},
		{Date{Year: 10000, Month: time.January, Day: 1}, false},
		{Date{}, false},
	}
	for _, tc := range cases {
		if got := tc.date.Valid(); got != tc.want {
			t.Fatalf("%#v.Valid() = %v, want %v", tc.date, got, tc.want)
		}
	}
}
