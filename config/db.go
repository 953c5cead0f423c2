package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schoolhealth/domain"
)

var gormDB *gorm.DB

func GetDatabaseURL() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"))
	return dsn
}

func BootDB() (*gorm.DB, error) {
	url := GetDatabaseURL()

	probe, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := probe.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	probe.Close()

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return nil, err
	}

	if gormDB == nil {
		gormDB = db
	}

	return gormDB, nil
}

func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.StudentParentRelation{},
		&domain.HealthProfile{},
		&domain.MedicalEvent{},
		&domain.MedicalEventMedication{},
		&domain.MedicineRequest{},
		&domain.Campaign{},
		&domain.CampaignConsent{},
		&domain.CampaignResult{},
		&domain.ConsultationSchedule{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
