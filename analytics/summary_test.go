package analytics

import (
	"math"
	"testing"

	"securecheck-api/datasource/dstest"
	"securecheck-api/models"

	"github.com/google/go-cmp/cmp"
)

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(&models.Snapshot{})

	if got.TotalStops != 0 || got.ArrestRate != 0 || got.MeanDriverAge != 0 {
		t.Errorf("Summarize(empty) = %+v, want zero metrics", got)
	}
	if math.IsNaN(got.ArrestRate) || math.IsNaN(got.DriverAgeStdDev) {
		t.Error("Summarize(empty) produced NaN")
	}
	if got.Genders == nil || got.StopDurations == nil {
		t.Error("Genders and StopDurations should be empty slices, not nil")
	}
}

func TestSummarize(t *testing.T) {
	snap := &models.Snapshot{Records: []models.StopRecord{
		dstest.Stop("male", 20, false, "0-15 Min", false, "speeding", "warning"),
		dstest.Stop("male", 30, true, "16-30 Min", true, "drugs", "arrest"),
		dstest.Stop("female", 40, true, "0-15 Min", false, "seatbelt", "ticket"),
		dstest.Stop("female", 50, false, "30+ Min", false, "speeding", "arrest"),
	}}

	got := Summarize(snap)

	if got.TotalStops != 4 {
		t.Errorf("TotalStops = %d, want 4", got.TotalStops)
	}
	if got.Arrests != 2 || got.ArrestRate != 50 {
		t.Errorf("Arrests = %d (%.2f%%), want 2 (50%%)", got.Arrests, got.ArrestRate)
	}
	if got.Searches != 2 || got.SearchRate != 50 {
		t.Errorf("Searches = %d (%.2f%%), want 2 (50%%)", got.Searches, got.SearchRate)
	}
	if got.DrugRelatedStops != 1 || got.DrugRate != 25 {
		t.Errorf("DrugRelatedStops = %d (%.2f%%), want 1 (25%%)", got.DrugRelatedStops, got.DrugRate)
	}
	if got.MeanDriverAge != 35 {
		t.Errorf("MeanDriverAge = %v, want 35", got.MeanDriverAge)
	}
	// sample standard deviation of 20,30,40,50
	if math.Abs(got.DriverAgeStdDev-12.91) > 0.01 {
		t.Errorf("DriverAgeStdDev = %v, want ~12.91", got.DriverAgeStdDev)
	}

	wantGenders := []GenderCount{
		{Gender: "female", Count: 2, Share: 50},
		{Gender: "male", Count: 2, Share: 50},
	}
	if diff := cmp.Diff(wantGenders, got.Genders); diff != "" {
		t.Errorf("Genders mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"0-15 Min", "16-30 Min", "30+ Min"}, got.StopDurations); diff != "" {
		t.Errorf("StopDurations mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeGenderOrderAndMissingAge(t *testing.T) {
	snap := &models.Snapshot{Records: []models.StopRecord{
		{DriverGender: "male"},
		{DriverGender: "male"},
		{DriverGender: ""},
		{DriverGender: "female", DriverAge: dstest.Age(33)},
	}}

	got := Summarize(snap)
	if got.Genders[0].Gender != "male" || got.Genders[0].Count != 2 {
		t.Errorf("Genders[0] = %+v, want male x2", got.Genders[0])
	}
	if got.Genders[1].Gender != "female" || got.Genders[2].Gender != "unknown" {
		t.Errorf("tied genders not ordered by name: %+v", got.Genders)
	}
	if got.MeanDriverAge != 33 || got.DriverAgeStdDev != 0 {
		t.Errorf("age stats = %v/%v, want 33/0 for a single known age", got.MeanDriverAge, got.DriverAgeStdDev)
	}
}

func TestRate(t *testing.T) {
	if got := rate(1, 3); got != 33.33 {
		t.Errorf("rate(1, 3) = %v, want 33.33", got)
	}
	if got := rate(2, 3); got != 66.67 {
		t.Errorf("rate(2, 3) = %v, want 66.67", got)
	}
	if got := rate(5, 0); got != 0 {
		t.Errorf("rate(5, 0) = %v, want 0", got)
	}
}
