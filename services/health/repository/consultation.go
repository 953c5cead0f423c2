package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"schoolhealth/domain"
)

type consultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(database *gorm.DB) domain.ConsultationRepo {
	return &consultationRepository{
		db: database,
	}
}

func (cr *consultationRepository) CreateConsultation(ctx context.Context, c *domain.ConsultationSchedule) error {
	if err := cr.db.WithContext(ctx).Create(c).Error; err != nil {
		return domain.ServerErr("could not insert consultation", err)
	}
	return nil
}

func (cr *consultationRepository) FindConsultationByID(ctx context.Context, id string) (*domain.ConsultationSchedule, error) {
	var c domain.ConsultationSchedule
	err := cr.db.WithContext(ctx).
		Preload("Student").
		Preload("MedicalStaff").
		Preload("AttendingParent").
		Where("consultation_id = ?", id).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("consultation %s not found", id)
		}
		return nil, domain.ServerErr("could not fetch consultation", err)
	}
	return &c, nil
}

func (cr *consultationRepository) ListConsultations(ctx context.Context) (*[]domain.ConsultationSchedule, error) {
	var consultations []domain.ConsultationSchedule
	err := cr.db.WithContext(ctx).
		Preload("Student").
		Preload("MedicalStaff").
		Preload("AttendingParent").
		Order("scheduled_date ASC").
		Find(&consultations).Error
	if err != nil {
		return nil, domain.ServerErr("could not list consultations", err)
	}
	return &consultations, nil
}

func (cr *consultationRepository) ListConsultationsByParent(ctx context.Context, parentID int) (*[]domain.ConsultationSchedule, error) {
	var consultations []domain.ConsultationSchedule
	err := cr.db.WithContext(ctx).
		Preload("Student").
		Preload("MedicalStaff").
		Where("attending_parent_id = ?", parentID).
		Order("scheduled_date ASC").
		Find(&consultations).Error
	if err != nil {
		return nil, domain.ServerErr("could not list consultations", err)
	}
	return &consultations, nil
}

func (cr *consultationRepository) ListConsultationsByStudent(ctx context.Context, studentID int) (*[]domain.ConsultationSchedule, error) {
	var consultations []domain.ConsultationSchedule
	err := cr.db.WithContext(ctx).
		Preload("MedicalStaff").
		Where("student_id = ?", studentID).
		Order("scheduled_date ASC").
		Find(&consultations).Error
	if err != nil {
		return nil, domain.ServerErr("could not list consultations", err)
	}
	return &consultations, nil
}

func (cr *consultationRepository) SaveConsultation(ctx context.Context, c *domain.ConsultationSchedule) error {
	if err := cr.db.WithContext(ctx).Save(c).Error; err != nil {
		return domain.ServerErr("could not update consultation", err)
	}
	return nil
}

// HasOverlap compares the half-open interval [start, end) against every
// Scheduled slot of the staff member. A slot ending exactly at start, or
// starting exactly at end, does not count.
func (cr *consultationRepository) HasOverlap(ctx context.Context, staffID int, start, end time.Time) (bool, error) {
	var count int64
	err := cr.db.WithContext(ctx).
		Model(&domain.ConsultationSchedule{}).
		Where("medical_staff_id = ? AND status = ?", staffID, domain.ConsultationScheduled).
		Where("scheduled_date < ? AND scheduled_date + make_interval(mins => duration_minutes) > ?", end, start).
		Count(&count).Error
	if err != nil {
		return false, domain.ServerErr("could not check consultation overlap", err)
	}
	return count > 0, nil
}
