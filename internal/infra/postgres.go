package infra

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fitplan/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {
	dsn := os.Getenv("POSTGRES_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err := db.AutoMigrate(
		&db_models.User{},
		&db_models.Exercise{},
		&db_models.WorkoutPlan{},
		&db_models.TrainingSession{},
	); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	return db
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	}
}
