package estimator

import (
	"strings"
	"testing"
)

func TestSummary(t *testing.T) {
	req := Request{
		DriverGender:     "male",
		DriverAge:        27,
		SearchConducted:  false,
		StopDuration:     "16-30 Min",
		DrugsRelatedStop: true,
		CountryName:      "canada",
		VehicleNumber:    "TN09XY0001",
		StopDate:         "2024-05-01",
		StopTime:         "14:30:00",
	}
	res := Result{Violation: "speeding", Outcome: "ticket", Matched: 4}

	got := Summary(req, res)
	want := "A 27-year-old male driver in canada was stopped at 02:30 PM on 2024-05-01. " +
		"No search was conducted, and the stop was drug-related.\n" +
		"Predicted Violation: speeding\n" +
		"Predicted Stop Outcome: ticket\n" +
		"Stop Duration: 16-30 Min\n" +
		"Vehicle Number: TN09XY0001"
	if got != want {
		t.Errorf("Summary() =\n%s\nwant\n%s", got, want)
	}
}

func TestSummarySearchAndMissingFields(t *testing.T) {
	req := Request{DriverGender: "female", DriverAge: 40, SearchConducted: true, StopDuration: "0-15 Min"}
	got := Summary(req, Result{Violation: "speeding", Outcome: "warning"})

	for _, part := range []string{
		"in unknown was stopped at an unknown time on unknown.",
		"A search was conducted, and the stop was not drug-related.",
		"Vehicle Number: unknown",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("Summary() missing %q in:\n%s", part, got)
		}
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"00:05:00", "12:05 AM"},
		{"23:59", "11:59 PM"},
		{"noonish", "noonish"},
		{"", "an unknown time"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := clock(tt.in); got != tt.want {
				t.Errorf("clock(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
