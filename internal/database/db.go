package database

import (
	"log"

	"github.com/scoutline/scoutline-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection and runs migrations.
func Connect(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	// Migration: This creates the tables in Postgres automatically
	log.Println("Running Migrations...")
	db.AutoMigrate(
		&models.CompanyAccount{},
		&models.CompanyGroup{},
		&models.CompanyUser{},
		&models.Candidate{},
		&models.JobPosting{},
		&models.Room{},
		&models.RoomParticipant{},
		&models.Message{},
		&models.GroupPermission{},
		&models.BlockedCompany{},
	)
	return db
}
