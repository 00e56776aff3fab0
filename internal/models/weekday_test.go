package models

import (
	"testing"
	"time"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    Weekday
		wantErr bool
	}{
		{in: "monday", want: Monday},
		{in: "Monday", want: Monday},
		{in: "  FRIDAY ", want: Friday},
		{in: "sunday", want: Sunday},
		{in: "moonday", wantErr: true},
		{in: "", wantErr: true},
		{in: "mon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekday(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseWeekday(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWeekdayMatches(t *testing.T) {
	// 2024-01-01 is a Monday.
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !Monday.Matches(monday) {
		t.Error("Monday should match 2024-01-01")
	}
	if Tuesday.Matches(monday) {
		t.Error("Tuesday should not match 2024-01-01")
	}
	if Sunday.Matches(monday.AddDate(0, 0, 6)) != true {
		t.Error("Sunday should match 2024-01-07")
	}
}
