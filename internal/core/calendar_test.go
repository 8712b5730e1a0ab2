package core

import (
	"testing"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		d    Date
		n    int
		want Date
	}{
		{
			name: "simple forward",
			d:    NewDate(2024, 1, 15),
			n:    1,
			want: NewDate(2024, 2, 15),
		},
		{
			name: "year rollover",
			d:    NewDate(2024, 11, 10),
			n:    3,
			want: NewDate(2025, 2, 10),
		},
		{
			name: "clamp to short month",
			d:    NewDate(2024, 1, 31),
			n:    1,
			want: NewDate(2024, 2, 29), // 2024 is a leap year
		},
		{
			name: "clamp in non-leap year",
			d:    NewDate(2023, 1, 31),
			n:    1,
			want: NewDate(2023, 2, 28),
		},
		{
			name: "century non-leap year",
			d:    NewDate(1900, 1, 29),
			n:    1,
			want: NewDate(1900, 2, 28),
		},
		{
			name: "400-year leap year",
			d:    NewDate(2000, 1, 29),
			n:    1,
			want: NewDate(2000, 2, 29),
		},
		{
			name: "negative across year boundary",
			d:    NewDate(2024, 2, 15),
			n:    -3,
			want: NewDate(2023, 11, 15),
		},
		{
			name: "negative with clamp",
			d:    NewDate(2024, 3, 31),
			n:    -1,
			want: NewDate(2024, 2, 29),
		},
		{
			name: "zero months",
			d:    NewDate(2024, 6, 30),
			n:    0,
			want: NewDate(2024, 6, 30),
		},
		{
			name: "many months forward",
			d:    NewDate(2024, 5, 31),
			n:    25,
			want: NewDate(2026, 6, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(tt.d, tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("AddMonths(%s, %d) = %s, want %s", tt.d.Format(), tt.n, got.Format(), tt.want.Format())
			}
		})
	}
}

// Adding and subtracting the same month count round-trips whenever no
// clamping occurred on the way out.
func TestAddMonthsRoundTrip(t *testing.T) {
	for _, d := range []Date{
		NewDate(2024, 1, 15),
		NewDate(2024, 6, 1),
		NewDate(2023, 12, 28),
	} {
		for n := -36; n <= 36; n++ {
			forward := AddMonths(d, n)
			if forward.Day() != d.Day() {
				continue // clamped, round trip not expected to hold
			}
			back := AddMonths(forward, -n)
			if !back.Equal(d) {
				t.Errorf("AddMonths(AddMonths(%s, %d), %d) = %s, want %s",
					d.Format(), n, -n, back.Format(), d.Format())
			}
		}
	}
}

func TestMonthKey(t *testing.T) {
	// Stable across every day of a month, distinct across boundaries.
	for day := 1; day <= 29; day++ {
		if got := MonthKey(NewDate(2024, 2, day)); got != "2024-02" {
			t.Fatalf("MonthKey(2024-02-%02d) = %q, want 2024-02", day, got)
		}
	}
	if MonthKey(NewDate(2024, 2, 29)) == MonthKey(NewDate(2024, 3, 1)) {
		t.Error("month keys should differ across a month boundary")
	}
	if got := MonthKey(NewDate(987, 12, 1)); got != "0987-12" {
		t.Errorf("MonthKey(0987-12-01) = %q, want zero-padded year", got)
	}
}

func TestValidMonthKey(t *testing.T) {
	valid := []string{"2024-01", "2024-12", "0001-06"}
	invalid := []string{"2024-13", "2024-0", "2024-1", "202401", "2024-01-15", "", "abcd-ef"}

	for _, s := range valid {
		if !ValidMonthKey(s) {
			t.Errorf("ValidMonthKey(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if ValidMonthKey(s) {
			t.Errorf("ValidMonthKey(%q) = true, want false", s)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	first, last, err := MonthBounds("2024-02")
	if err != nil {
		t.Fatalf("MonthBounds: %v", err)
	}
	if !first.Equal(NewDate(2024, 2, 1)) || !last.Equal(NewDate(2024, 2, 29)) {
		t.Errorf("MonthBounds(2024-02) = %s..%s", first.Format(), last.Format())
	}

	if _, _, err := MonthBounds("not-a-month"); err == nil {
		t.Error("expected error for malformed month key")
	}
}
