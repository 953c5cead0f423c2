package usecase

import (
	"context"
	"time"

	"schoolhealth/domain"
)

type relationUseCase struct {
	repo     domain.RelationRepo
	userRepo domain.UserRepo
	TimeOut  time.Duration
}

func NewRelationUseCase(repo domain.RelationRepo, userRepo domain.UserRepo, to time.Duration) domain.RelationUseCase {
	return &relationUseCase{
		repo:     repo,
		userRepo: userRepo,
		TimeOut:  to,
	}
}

// RequestLink creates a pending link request, or revives an inactive prior
// record for the same pair. An active record of any status is a conflict.
func (ru *relationUseCase) RequestLink(ctx context.Context, parentID int, req *domain.LinkRequest) (*domain.StudentParentRelation, error) {
	ctx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	defer cancel()

	student, err := ru.userRepo.FindUserByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if student.Role != domain.RoleStudent || !student.IsActive {
		return nil, domain.NotFound("student with ID %d not found", req.StudentID)
	}

	existing, err := ru.repo.FindRelation(ctx, req.StudentID, parentID)
	if err != nil && domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}

	if existing != nil {
		if existing.IsActive {
			return nil, domain.Conflict("a relation request for this student already exists")
		}

		existing.Relationship = req.Relationship
		existing.IsEmergencyContact = req.IsEmergencyContact
		existing.Notes = req.Notes
		existing.Status = domain.RelationPending
		existing.AdminNotes = ""
		existing.ProcessedByID = nil
		existing.ProcessedAt = nil
		existing.IsActive = true

		if err := ru.repo.SaveRelation(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	rel := domain.StudentParentRelation{
		StudentID:          req.StudentID,
		ParentID:           parentID,
		Relationship:       req.Relationship,
		IsEmergencyContact: req.IsEmergencyContact,
		Notes:              req.Notes,
		Status:             domain.RelationPending,
		IsActive:           true,
	}

	if err := ru.repo.CreateRelation(ctx, &rel); err != nil {
		return nil, err
	}
	return &rel, nil
}

// CreateApprovedRelation is the admin shortcut that skips the pending state.
func (ru *relationUseCase) CreateApprovedRelation(ctx context.Context, adminID, parentID int, req *domain.LinkRequest) (*domain.StudentParentRelation, error) {
	ctx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	defer cancel()

	student, err := ru.userRepo.FindUserByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if student.Role != domain.RoleStudent {
		return nil, domain.NotFound("student with ID %d not found", req.StudentID)
	}

	parent, err := ru.userRepo.FindUserByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.Role != domain.RoleParent {
		return nil, domain.NotFound("parent with ID %d not found", parentID)
	}

	now := time.Now()

	existing, err := ru.repo.FindRelation(ctx, req.StudentID, parentID)
	if err != nil && domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}

	if existing != nil {
		if existing.IsActive {
			return nil, domain.Conflict("a relation for this student and parent already exists")
		}

		existing.Relationship = req.Relationship
		existing.IsEmergencyContact = req.IsEmergencyContact
		existing.Notes = req.Notes
		existing.Status = domain.RelationApproved
		existing.ProcessedByID = &adminID
		existing.ProcessedAt = &now
		existing.IsActive = true

		if err := ru.repo.SaveRelation(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	rel := domain.StudentParentRelation{
		StudentID:          req.StudentID,
		ParentID:           parentID,
		Relationship:       req.Relationship,
		IsEmergencyContact: req.IsEmergencyContact,
		Notes:              req.Notes,
		Status:             domain.RelationApproved,
		ProcessedByID:      &adminID,
		ProcessedAt:        &now,
		IsActive:           true,
	}

	if err := ru.repo.CreateRelation(ctx, &rel); err != nil {
		return nil, err
	}
	return &rel, nil
}

// RespondToLink moves a pending request into approved or rejected. Anything
// already processed stays processed.
func (ru *relationUseCase) RespondToLink(ctx context.Context, requestID, processedBy int, req *domain.LinkDecision) (*domain.StudentParentRelation, error) {
	ctx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	defer cancel()

	rel, err := ru.repo.FindRelationByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if rel.Status != domain.RelationPending {
		return nil, domain.InvalidState("link request %d was already %s", requestID, rel.Status)
	}

	now := time.Now()
	rel.Status = req.Decision
	rel.AdminNotes = req.Notes
	rel.ProcessedByID = &processedBy
	rel.ProcessedAt = &now

	if err := ru.repo.SaveRelation(ctx, rel); err != nil {
		return nil, err
	}
	return rel, nil
}

func (ru *relationUseCase) ListPending(ctx context.Context) (*[]domain.StudentParentRelation, error) {
	ctx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	defer cancel()

	return ru.repo.ListPendingRelations(ctx)
}

func (ru *relationUseCase) ListByParent(ctx context.Context, parentID int) (*[]domain.StudentParentRelation, error) {
	ctx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	defer cancel()

	return ru.repo.ListRelationsByParent(ctx, parentID)
}

func (ru *relationUseCase) LinkedStudents(ctx context.Context, parentID int) (*[]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	defer cancel()

	return ru.repo.ListLinkedStudents(ctx, parentID)
}

// RequireLink is the authorization gate for every parent-facing access to a
// student's data.
func (ru *relationUseCase) RequireLink(ctx context.Context, parentID, studentID int) error {
	linked, err := ru.repo.IsLinked(ctx, parentID, studentID)
	if err != nil {
		return err
	}
	if !linked {
		return domain.AuthzDenied("parent %d is not linked to student %d", parentID, studentID)
	}
	return nil
}
