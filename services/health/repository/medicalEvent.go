package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"schoolhealth/domain"
)

type medicalEventRepository struct {
	db *gorm.DB
}

func NewMedicalEventRepository(database *gorm.DB) domain.MedicalEventRepo {
	return &medicalEventRepository{
		db: database,
	}
}

func (mr *medicalEventRepository) CreateEvent(ctx context.Context, event *domain.MedicalEvent) error {
	if err := mr.db.WithContext(ctx).Create(event).Error; err != nil {
		return domain.ServerErr("could not insert medical event", err)
	}
	return nil
}

func (mr *medicalEventRepository) FindEventByID(ctx context.Context, id int) (*domain.MedicalEvent, error) {
	var event domain.MedicalEvent
	err := mr.db.WithContext(ctx).
		Preload("Student").
		Preload("CreatedBy").
		Preload("Medications").
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("medical event with ID %d not found", id)
		}
		return nil, domain.ServerErr("could not fetch medical event", err)
	}
	return &event, nil
}

func (mr *medicalEventRepository) ListEvents(ctx context.Context, studentID int) (*[]domain.MedicalEvent, error) {
	var events []domain.MedicalEvent

	query := mr.db.WithContext(ctx).
		Preload("Student").
		Preload("Medications").
		Order("occurred_at DESC")
	if studentID != 0 {
		query = query.Where("student_id = ?", studentID)
	}

	if err := query.Find(&events).Error; err != nil {
		return nil, domain.ServerErr("could not list medical events", err)
	}
	return &events, nil
}

func (mr *medicalEventRepository) SaveEvent(ctx context.Context, event *domain.MedicalEvent) error {
	if err := mr.db.WithContext(ctx).Omit("Medications").Save(event).Error; err != nil {
		return domain.ServerErr("could not update medical event", err)
	}
	return nil
}

func (mr *medicalEventRepository) AppendMedication(ctx context.Context, med *domain.MedicalEventMedication) error {
	if err := mr.db.WithContext(ctx).Create(med).Error; err != nil {
		return domain.ServerErr("could not insert medication record", err)
	}
	return nil
}
