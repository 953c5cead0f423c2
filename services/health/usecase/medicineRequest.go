package usecase

import (
	"context"
	"encoding/json"
	"time"

	"schoolhealth/domain"
)

type medicineRequestUseCase struct {
	repo         domain.MedicineRequestRepo
	relationRepo domain.RelationRepo
	TimeOut      time.Duration
}

func NewMedicineRequestUseCase(repo domain.MedicineRequestRepo, relationRepo domain.RelationRepo, to time.Duration) domain.MedicineRequestUseCase {
	return &medicineRequestUseCase{
		repo:         repo,
		relationRepo: relationRepo,
		TimeOut:      to,
	}
}

func (mu *medicineRequestUseCase) Create(ctx context.Context, parentID int, payload *domain.MedicineRequestPayload) (*domain.MedicineRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	linked, err := mu.relationRepo.IsLinked(ctx, parentID, payload.StudentID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, domain.AuthzDenied("parent %d is not linked to student %d", parentID, payload.StudentID)
	}

	start, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		return nil, domain.Validation("start date must be in YYYY-MM-DD format")
	}
	end, err := time.Parse("2006-01-02", payload.EndDate)
	if err != nil {
		return nil, domain.Validation("end date must be in YYYY-MM-DD format")
	}

	if err := domain.ValidateMedicineRequestDates(time.Now(), start, end); err != nil {
		return nil, err
	}

	if len(payload.Medicines) == 0 {
		return nil, domain.Validation("at least one medicine is required")
	}

	medicines, err := json.Marshal(payload.Medicines)
	if err != nil {
		return nil, domain.ServerErr("could not encode medicines", err)
	}

	req := domain.MedicineRequest{
		StudentID:   payload.StudentID,
		CreatedByID: parentID,
		StartDate:   start,
		EndDate:     end,
		Medicines:   medicines,
		Status:      domain.MedicineRequestPending,
	}

	if err := mu.repo.CreateMedicineRequest(ctx, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (mu *medicineRequestUseCase) ListByParent(ctx context.Context, parentID int) (*[]domain.MedicineRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	return mu.repo.ListMedicineRequestsByParent(ctx, parentID)
}

func (mu *medicineRequestUseCase) ListAll(ctx context.Context, studentID int) (*[]domain.MedicineRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	return mu.repo.ListMedicineRequests(ctx, studentID)
}

// Review moves a request through its workflow; everything but the status
// fields stays frozen after creation.
func (mu *medicineRequestUseCase) Review(ctx context.Context, requestID, staffID int, review *domain.MedicineRequestReview) (*domain.MedicineRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	req, err := mu.repo.FindMedicineRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransitionMedicineRequest(req.Status, review.Status) {
		return nil, domain.InvalidState("medicine request cannot move from %s to %s", req.Status, review.Status)
	}

	now := time.Now()
	req.Status = review.Status
	req.ReviewNotes = review.Notes
	req.ReviewedByID = &staffID
	req.ReviewedAt = &now

	if err := mu.repo.SaveMedicineRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}
