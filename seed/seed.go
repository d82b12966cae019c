// Package seed fills the ledger table with synthetic traffic stops for local
// development. The service itself never writes to the ledger.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"securecheck-api/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const DefaultBatchSize = 500

var (
	Countries   = []string{"canada", "usa", "india"}
	Genders     = []string{"male", "female"}
	Races       = []string{"White", "Black", "Hispanic", "Asian", "Other"}
	Durations   = []string{"0-15 Min", "16-30 Min", "30+ Min"}
	Violations  = []string{"speeding", "seatbelt", "signal", "dui", "other"}
	Outcomes    = []string{"warning", "ticket", "arrest"}
	SearchTypes = []string{"Vehicle Search", "Frisk"}
)

var (
	windowStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
)

// Generator builds plausible stop records from a faker.
type Generator struct {
	faker *gofakeit.Faker
}

func NewGenerator(faker *gofakeit.Faker) *Generator {
	return &Generator{faker: faker}
}

func (g *Generator) Stop() models.StopRecord {
	at := g.faker.DateRange(windowStart, windowEnd)
	age := g.faker.IntRange(16, 80)
	search := g.faker.Float64Range(0, 1) < 0.3
	drugs := g.faker.Float64Range(0, 1) < 0.1

	outcome := g.faker.RandomString(Outcomes)
	if drugs && g.faker.Bool() {
		outcome = "arrest"
	}

	rec := models.StopRecord{
		StopDate:         at.Format("2006-01-02"),
		StopTime:         at.Format("15:04:05"),
		CountryName:      g.faker.RandomString(Countries),
		DriverGender:     g.faker.RandomString(Genders),
		DriverAge:        &age,
		DriverRace:       g.faker.RandomString(Races),
		SearchConducted:  search,
		DrugsRelatedStop: drugs,
		StopDuration:     g.faker.RandomString(Durations),
		VehicleNumber:    g.plate(),
		Violation:        g.faker.RandomString(Violations),
		StopOutcome:      outcome,
		IsArrested:       outcome == "arrest",
	}
	if search {
		st := g.faker.RandomString(SearchTypes)
		rec.SearchType = &st
	}
	return rec
}

// plate looks like an Indian registration number, e.g. TN01AB1234.
func (g *Generator) plate() string {
	return strings.ToUpper(g.faker.Lexify("??")) + g.faker.Numerify("##") +
		strings.ToUpper(g.faker.Lexify("??")) + g.faker.Numerify("####")
}

func (g *Generator) Stops(n int) []models.StopRecord {
	out := make([]models.StopRecord, 0, n)
	for range n {
		out = append(out, g.Stop())
	}
	return out
}

// Seed creates the ledger table when missing and inserts count generated
// records in batches.
func Seed(ctx context.Context, db *gorm.DB, g *Generator, count, batch int) error {
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	if err := db.WithContext(ctx).AutoMigrate(&models.StopRecord{}); err != nil {
		return fmt.Errorf("migrate ledger: %w", err)
	}

	for done := 0; done < count; {
		n := min(batch, count-done)
		records := g.Stops(n)
		if err := db.WithContext(ctx).CreateInBatches(&records, n).Error; err != nil {
			return fmt.Errorf("insert batch at %d: %w", done, err)
		}
		done += n
		log.Debug().Int("inserted", done).Int("total", count).Msg("seeding ledger")
	}
	return nil
}
