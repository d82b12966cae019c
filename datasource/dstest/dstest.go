// Package dstest builds in-memory SQLite stores seeded with ledger rows.
package dstest

import (
	"testing"
	"time"

	"securecheck-api/datasource"
	"securecheck-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewStore returns a store over a private in-memory database holding records.
func NewStore(t testing.TB, records []models.StopRecord) *datasource.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.StopRecord{}); err != nil {
		t.Fatalf("migrate ledger: %v", err)
	}
	if len(records) > 0 {
		if err := db.Create(&records).Error; err != nil {
			t.Fatalf("seed ledger: %v", err)
		}
	}
	return datasource.New(db, "sqlite", 5*time.Second)
}

func Age(n int) *int { return &n }

func Str(s string) *string { return &s }

// Stop builds a record with the fields the estimator matches on.
func Stop(gender string, age int, search bool, duration string, drugs bool, violation, outcome string) models.StopRecord {
	return models.StopRecord{
		StopDate:         "2024-01-15",
		StopTime:         "14:30:00",
		CountryName:      "canada",
		DriverGender:     gender,
		DriverAge:        Age(age),
		DriverRace:       "White",
		SearchConducted:  search,
		DrugsRelatedStop: drugs,
		StopDuration:     duration,
		VehicleNumber:    "TN01AB1234",
		Violation:        violation,
		StopOutcome:      outcome,
		IsArrested:       outcome == "arrest",
	}
}
