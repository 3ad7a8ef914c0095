package services

import (
	"testing"
	"time"

	"challenge-hub-system/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test, mirroring the
// production gorm.Config (TranslateError drives the duplicate-join path).
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// A second pool connection would see an empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Challenge{}, &models.ChallengeParticipant{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// validCreateInput returns a complete input with the given schedule.
func validCreateInput(start, deadline time.Time) CreateChallengeInput {
	return CreateChallengeInput{
		Title:          "Design a payroll dashboard",
		StartTime:      start,
		Deadline:       deadline,
		Prize:          "$1000",
		ContactEmail:   "talent@umurava.africa",
		Brief:          "Build a dashboard for payroll operations",
		Description:    []string{"A fintech client needs a payroll dashboard"},
		Requirements:   []string{"Figma prototype", "responsive layout"},
		Deliverables:   []string{"High fidelity mockups"},
		SeniorityLevel: []string{"junior", "intermediate"},
		Skills:         []string{"UI/UX Design"},
	}
}
