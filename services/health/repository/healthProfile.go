package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolhealth/domain"
)

type healthProfileRepository struct {
	db *gorm.DB
}

func NewHealthProfileRepository(database *gorm.DB) domain.HealthProfileRepo {
	return &healthProfileRepository{
		db: database,
	}
}

func (hr *healthProfileRepository) UpsertHealthProfile(ctx context.Context, profile *domain.HealthProfile) (*domain.HealthProfile, error) {
	err := hr.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"allergies", "chronic_diseases",
				"vision_left", "vision_right", "hearing_left", "hearing_right",
				"height_cm", "weight_kg",
				"vaccinations", "treatment_history",
				"updated_by_id", "updated_at",
			}),
		}).
		Create(profile).Error
	if err != nil {
		return nil, domain.ServerErr("could not upsert health profile", err)
	}

	return hr.GetHealthProfileByStudent(ctx, profile.StudentID)
}

func (hr *healthProfileRepository) GetHealthProfileByStudent(ctx context.Context, studentID int) (*domain.HealthProfile, error) {
	var profile domain.HealthProfile
	err := hr.db.WithContext(ctx).
		Preload("Student").
		Where("student_id = ?", studentID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("health profile for student %d not found", studentID)
		}
		return nil, domain.ServerErr("could not fetch health profile", err)
	}
	return &profile, nil
}
