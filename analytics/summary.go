package analytics

import (
	"sort"

	"securecheck-api/models"

	"gonum.org/v1/gonum/stat"
)

type GenderCount struct {
	Gender string  `json:"gender"`
	Count  int     `json:"count"`
	Share  float64 `json:"share"`
}

// Summary holds the headline metrics shown at the top of the dashboard.
// Rates are percentages rounded to two decimals.
type Summary struct {
	TotalStops       int           `json:"total_stops"`
	Arrests          int           `json:"arrests"`
	ArrestRate       float64       `json:"arrest_rate"`
	Searches         int           `json:"searches"`
	SearchRate       float64       `json:"search_rate"`
	DrugRelatedStops int           `json:"drug_related_stops"`
	DrugRate         float64       `json:"drug_rate"`
	MeanDriverAge    float64       `json:"mean_driver_age"`
	DriverAgeStdDev  float64       `json:"driver_age_stddev"`
	Genders          []GenderCount `json:"genders"`
	StopDurations    []string      `json:"stop_durations"`
}

func Summarize(snap *models.Snapshot) Summary {
	s := Summary{
		TotalStops:    len(snap.Records),
		Genders:       []GenderCount{},
		StopDurations: snap.StopDurations(),
	}
	if s.StopDurations == nil {
		s.StopDurations = []string{}
	}
	if s.TotalStops == 0 {
		return s
	}

	genders := make(map[string]int)
	ages := make([]float64, 0, len(snap.Records))
	for _, r := range snap.Records {
		if r.IsArrested {
			s.Arrests++
		}
		if r.SearchConducted {
			s.Searches++
		}
		if r.DrugsRelatedStop {
			s.DrugRelatedStops++
		}
		if r.DriverAge != nil {
			ages = append(ages, float64(*r.DriverAge))
		}
		g := r.DriverGender
		if g == "" {
			g = "unknown"
		}
		genders[g]++
	}

	s.ArrestRate = rate(s.Arrests, s.TotalStops)
	s.SearchRate = rate(s.Searches, s.TotalStops)
	s.DrugRate = rate(s.DrugRelatedStops, s.TotalStops)

	switch len(ages) {
	case 0:
	case 1:
		s.MeanDriverAge = ages[0]
	default:
		mean, std := stat.MeanStdDev(ages, nil)
		s.MeanDriverAge = round2(mean)
		s.DriverAgeStdDev = round2(std)
	}

	for g, n := range genders {
		s.Genders = append(s.Genders, GenderCount{Gender: g, Count: n, Share: rate(n, s.TotalStops)})
	}
	sort.Slice(s.Genders, func(i, j int) bool {
		if s.Genders[i].Count != s.Genders[j].Count {
			return s.Genders[i].Count > s.Genders[j].Count
		}
		return s.Genders[i].Gender < s.Genders[j].Gender
	})
	return s
}

func rate(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(n) * 100 / float64(total))
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}
