package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"schoolhealth/domain"
)

type medicineRequestRepository struct {
	db *gorm.DB
}

func NewMedicineRequestRepository(database *gorm.DB) domain.MedicineRequestRepo {
	return &medicineRequestRepository{
		db: database,
	}
}

func (mr *medicineRequestRepository) CreateMedicineRequest(ctx context.Context, req *domain.MedicineRequest) error {
	if err := mr.db.WithContext(ctx).Create(req).Error; err != nil {
		return domain.ServerErr("could not insert medicine request", err)
	}
	return nil
}

func (mr *medicineRequestRepository) FindMedicineRequestByID(ctx context.Context, id int) (*domain.MedicineRequest, error) {
	var req domain.MedicineRequest
	err := mr.db.WithContext(ctx).
		Preload("Student").
		Preload("CreatedBy").
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("medicine request with ID %d not found", id)
		}
		return nil, domain.ServerErr("could not fetch medicine request", err)
	}
	return &req, nil
}

func (mr *medicineRequestRepository) ListMedicineRequests(ctx context.Context, studentID int) (*[]domain.MedicineRequest, error) {
	var reqs []domain.MedicineRequest

	query := mr.db.WithContext(ctx).
		Preload("Student").
		Order("created_at DESC")
	if studentID != 0 {
		query = query.Where("student_id = ?", studentID)
	}

	if err := query.Find(&reqs).Error; err != nil {
		return nil, domain.ServerErr("could not list medicine requests", err)
	}
	return &reqs, nil
}

func (mr *medicineRequestRepository) ListMedicineRequestsByParent(ctx context.Context, parentID int) (*[]domain.MedicineRequest, error) {
	var reqs []domain.MedicineRequest
	err := mr.db.WithContext(ctx).
		Preload("Student").
		Where("created_by_id = ?", parentID).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, domain.ServerErr("could not list medicine requests", err)
	}
	return &reqs, nil
}

func (mr *medicineRequestRepository) SaveMedicineRequest(ctx context.Context, req *domain.MedicineRequest) error {
	if err := mr.db.WithContext(ctx).Save(req).Error; err != nil {
		return domain.ServerErr("could not update medicine request", err)
	}
	return nil
}
