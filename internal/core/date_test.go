package core

import (
	"encoding/json"
	"testing"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2026-08-28", "2026-08-28", true},
		{"2026-08-28T15:04:05Z", "2026-08-28", true},
		{" 2026-01-02 ", "2026-01-02", true},
		{"28/08/2026", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok && (err != nil || d.String() != tc.want) {
			t.Fatalf("ParseDate(%q) = %v, %v; want %s", tc.in, d, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseDate(%q) expected error", tc.in)
		}
	}
}

func TestDateWithinInclusive(t *testing.T) {
	from, to := NewDate(2026, 1, 1), NewDate(2026, 1, 31)
	cases := []struct {
		d    Date
		want bool
	}{
		{NewDate(2026, 1, 1), true},   // start boundary
		{NewDate(2026, 1, 31), true},  // end boundary
		{NewDate(2026, 1, 15), true},  // middle
		{NewDate(2025, 12, 31), false},
		{NewDate(2026, 2, 1), false},
	}
	for _, tc := range cases {
		if got := tc.d.Within(from, to); got != tc.want {
			t.Fatalf("%s.Within(%s, %s) = %v, want %v", tc.d, from, to, got, tc.want)
		}
	}
}

func TestDateMonthKey(t *testing.T) {
	d := NewDate(2026, 8, 28)
	if got := d.MonthKey(); got != "2026-08" {
		t.Fatalf("MonthKey = %q, want 2026-08", got)
	}
	if got := d.MonthLabel(); got != "Aug" {
		t.Fatalf("MonthLabel = %q, want Aug", got)
	}
}

func TestDateAddMonths(t *testing.T) {
	d := NewDate(2026, 1, 31)
	if got := d.AddMonths(-1).MonthKey(); got != "2025-12" {
		t.Fatalf("AddMonths(-1) month = %q, want 2025-12", got)
	}
	if got := d.AddMonths(2).MonthKey(); got != "2026-03" {
		t.Fatalf("AddMonths(2) month = %q, want 2026-03", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2026, 8, 28)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `"2026-08-28"` {
		t.Fatalf("marshal = %s", raw)
	}
	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip changed the date: %s != %s", back, d)
	}
}
