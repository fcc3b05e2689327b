package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"colvote.com/internal/domain"
	"colvote.com/internal/infra"
	"colvote.com/internal/model"
)

// newTestDB opens an in-memory database with the production schema. A single
// connection keeps SQLite serialized so concurrent writers see the real
// unique-constraint error instead of a busy error.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := infra.Migrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

func registerVoter(t *testing.T, users domain.UserService, colegiado, dpi string) *model.User {
	t.Helper()
	user, err := users.Register(context.Background(), domain.RegisterInput{
		Colegiado: colegiado,
		Name:      "Voter " + colegiado,
		Email:     colegiado + "@example.com",
		DPI:       dpi,
		BirthDate: "2000-01-01",
		Password:  "Abcd123!",
	})
	if err != nil {
		t.Fatalf("failed to register voter %s: %v", colegiado, err)
	}
	return user
}

func createCampaign(t *testing.T, campaigns domain.CampaignService, title string, candidateNames ...string) *model.Campaign {
	t.Helper()
	inputs := make([]domain.CandidateInput, 0, len(candidateNames))
	for _, name := range candidateNames {
		inputs = append(inputs, domain.CandidateInput{Name: name})
	}
	campaign, err := campaigns.CreateCampaign(context.Background(), title, "", inputs)
	if err != nil {
		t.Fatalf("failed to create campaign %q: %v", title, err)
	}
	return campaign
}
