package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"schoolhealth/domain"
)

type consultationUseCase struct {
	repo         domain.ConsultationRepo
	campaignRepo domain.CampaignRepo
	relationRepo domain.RelationRepo
	TimeOut      time.Duration
}

func NewConsultationUseCase(repo domain.ConsultationRepo, campaignRepo domain.CampaignRepo, relationRepo domain.RelationRepo, to time.Duration) domain.ConsultationUseCase {
	return &consultationUseCase{
		repo:         repo,
		campaignRepo: campaignRepo,
		relationRepo: relationRepo,
		TimeOut:      to,
	}
}

// Schedule runs the scheduling pipeline in order and stops at the first
// failing rule: the date must be strictly in the future, the duration within
// bounds, the staff member free over the half-open slot, and the attending
// parent linked to the student.
func (cu *consultationUseCase) Schedule(ctx context.Context, staffID int, req *domain.ConsultationRequest) (*domain.ConsultationSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	result, err := cu.campaignRepo.FindResultByID(ctx, req.CampaignResultID)
	if err != nil {
		return nil, err
	}
	if result.StudentID != req.StudentID {
		return nil, domain.Validation("campaign result %s does not belong to student %d", req.CampaignResultID, req.StudentID)
	}

	scheduled, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		return nil, domain.Validation("scheduled date must be RFC3339")
	}

	if err := domain.ValidateConsultationTime(time.Now(), scheduled, req.DurationMinutes); err != nil {
		return nil, err
	}

	end := domain.ConsultationEnd(scheduled, req.DurationMinutes)
	overlapping, err := cu.repo.HasOverlap(ctx, staffID, scheduled, end)
	if err != nil {
		return nil, err
	}
	if overlapping {
		return nil, domain.Validation("medical staff already has a consultation scheduled in this time window")
	}

	linked, err := cu.relationRepo.IsLinked(ctx, req.AttendingParentID, req.StudentID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, domain.Validation("attending parent %d has no active approved relation to student %d", req.AttendingParentID, req.StudentID)
	}

	consultation := domain.ConsultationSchedule{
		ConsultationID:    uuid.NewString(),
		CampaignResultID:  req.CampaignResultID,
		StudentID:         req.StudentID,
		MedicalStaffID:    staffID,
		AttendingParentID: req.AttendingParentID,
		ScheduledDate:     scheduled,
		DurationMinutes:   req.DurationMinutes,
		Status:            domain.ConsultationScheduled,
		Notes:             req.Notes,
	}

	if err := cu.repo.CreateConsultation(ctx, &consultation); err != nil {
		return nil, err
	}
	return cu.repo.FindConsultationByID(ctx, consultation.ConsultationID)
}

func (cu *consultationUseCase) List(ctx context.Context) (*[]domain.ConsultationSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.repo.ListConsultations(ctx)
}

func (cu *consultationUseCase) ListForParent(ctx context.Context, parentID int) (*[]domain.ConsultationSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.repo.ListConsultationsByParent(ctx, parentID)
}

func (cu *consultationUseCase) ListForStudent(ctx context.Context, studentID int) (*[]domain.ConsultationSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.repo.ListConsultationsByStudent(ctx, studentID)
}

func (cu *consultationUseCase) UpdateStatus(ctx context.Context, id string, req *domain.ConsultationStatusUpdate) (*domain.ConsultationSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	consultation, err := cu.repo.FindConsultationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransitionConsultation(consultation.Status, req.Status) {
		return nil, domain.InvalidState("consultation cannot move from %s to %s", consultation.Status, req.Status)
	}

	consultation.Status = req.Status
	if req.Notes != "" {
		consultation.Notes = req.Notes
	}

	if err := cu.repo.SaveConsultation(ctx, consultation); err != nil {
		return nil, err
	}
	return consultation, nil
}
