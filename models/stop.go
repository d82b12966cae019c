package models

import "time"

// StopRecord is one row of the ledger table.
type StopRecord struct {
	StopDate         string  `gorm:"column:stop_date" json:"stop_date"`
	StopTime         string  `gorm:"column:stop_time" json:"stop_time"`
	CountryName      string  `gorm:"column:country_name" json:"country_name"`
	DriverGender     string  `gorm:"column:driver_gender" json:"driver_gender"`
	DriverAge        *int    `gorm:"column:driver_age" json:"driver_age"`
	DriverRace       string  `gorm:"column:driver_race" json:"driver_race"`
	SearchConducted  bool    `gorm:"column:search_conducted" json:"search_conducted"`
	SearchType       *string `gorm:"column:search_type" json:"search_type"`
	DrugsRelatedStop bool    `gorm:"column:drugs_related_stop" json:"drugs_related_stop"`
	StopDuration     string  `gorm:"column:stop_duration" json:"stop_duration"`
	VehicleNumber    string  `gorm:"column:vehicle_number" json:"vehicle_number"`
	Violation        string  `gorm:"column:violation" json:"violation"`
	StopOutcome      string  `gorm:"column:stop_outcome" json:"stop_outcome"`
	IsArrested       bool    `gorm:"column:is_arrested" json:"is_arrested"`
}

func (StopRecord) TableName() string { return "ledger" }

// Snapshot is the set of ledger rows read for a single request. Callers must
// treat Records as read-only.
type Snapshot struct {
	Records  []StopRecord
	LoadedAt time.Time
}

// StopDurations returns the distinct non-empty stop_duration values in order
// of first appearance.
func (s *Snapshot) StopDurations() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range s.Records {
		if r.StopDuration == "" {
			continue
		}
		if _, ok := seen[r.StopDuration]; ok {
			continue
		}
		seen[r.StopDuration] = struct{}{}
		out = append(out, r.StopDuration)
	}
	return out
}

func (s *Snapshot) Empty() bool { return len(s.Records) == 0 }
