// Package estimator guesses the violation and outcome of an unrecorded stop
// by majority vote over historical stops with identical attributes.
package estimator

import (
	"sort"
	"strings"

	"securecheck-api/models"
)

const (
	FallbackViolation = "speeding"
	FallbackOutcome   = "warning"

	MinDriverAge = 16
	MaxDriverAge = 100
)

var Genders = []string{"male", "female"}

// Request describes a stop that has not been recorded. Only the first five
// fields take part in matching; the rest are carried into the summary.
type Request struct {
	DriverGender     string `json:"driver_gender"`
	DriverAge        int    `json:"driver_age"`
	SearchConducted  bool   `json:"search_conducted"`
	StopDuration     string `json:"stop_duration"`
	DrugsRelatedStop bool   `json:"drugs_related_stop"`

	CountryName   string `json:"country_name"`
	DriverRace    string `json:"driver_race"`
	SearchType    string `json:"search_type"`
	VehicleNumber string `json:"vehicle_number"`
	StopDate      string `json:"stop_date"`
	StopTime      string `json:"stop_time"`
}

type Result struct {
	Violation string `json:"predicted_violation"`
	Outcome   string `json:"predicted_outcome"`
	// Matched is the number of historical stops that voted. Zero means the
	// fallback pair was returned.
	Matched int `json:"matched"`
}

func (r Result) Fallback() bool { return r.Matched == 0 }

// Validate checks the matching fields against their declared domains.
func (r Request) Validate() error {
	if !validGender(r.DriverGender) {
		return &InvalidRequestError{Field: "driver_gender", Reason: "must be one of " + strings.Join(Genders, ", ")}
	}
	if r.DriverAge < MinDriverAge || r.DriverAge > MaxDriverAge {
		return &InvalidRequestError{Field: "driver_age", Reason: "must be between 16 and 100"}
	}
	if strings.TrimSpace(r.StopDuration) == "" {
		return &InvalidRequestError{Field: "stop_duration", Reason: "is required"}
	}
	return nil
}

func validGender(g string) bool {
	for _, known := range Genders {
		if g == known {
			return true
		}
	}
	return false
}

func (r Request) matches(rec *models.StopRecord) bool {
	return rec.DriverGender == r.DriverGender &&
		rec.DriverAge != nil && *rec.DriverAge == r.DriverAge &&
		rec.SearchConducted == r.SearchConducted &&
		rec.StopDuration == r.StopDuration &&
		rec.DrugsRelatedStop == r.DrugsRelatedStop
}

// Estimate returns the most frequent violation and outcome among records
// that match req exactly. An empty match set is not an error.
func Estimate(req Request, records []models.StopRecord) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	violations := newTally()
	outcomes := newTally()
	matched := 0
	for i := range records {
		rec := &records[i]
		if !req.matches(rec) {
			continue
		}
		matched++
		violations.add(rec.Violation)
		outcomes.add(rec.StopOutcome)
	}

	res := Result{Violation: FallbackViolation, Outcome: FallbackOutcome, Matched: matched}
	if matched == 0 {
		return res, nil
	}
	if v, ok := violations.mode(); ok {
		res.Violation = v
	}
	if o, ok := outcomes.mode(); ok {
		res.Outcome = o
	}
	return res, nil
}

type tally map[string]int

func newTally() tally { return make(tally) }

// add ignores empty values, the way a missing column value would be.
func (t tally) add(v string) {
	if v == "" {
		return
	}
	t[v]++
}

// mode breaks ties by taking the lexicographically smallest value.
func (t tally) mode() (string, bool) {
	if len(t) == 0 {
		return "", false
	}
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if t[k] > t[best] {
			best = k
		}
	}
	return best, true
}
