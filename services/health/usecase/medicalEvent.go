package usecase

import (
	"context"
	"fmt"
	"time"

	"schoolhealth/domain"
)

type medicalEventUseCase struct {
	repo         domain.MedicalEventRepo
	relationRepo domain.RelationRepo
	userRepo     domain.UserRepo
	notifier     domain.Notifier
	TimeOut      time.Duration
}

func NewMedicalEventUseCase(repo domain.MedicalEventRepo, relationRepo domain.RelationRepo, userRepo domain.UserRepo, notifier domain.Notifier, to time.Duration) domain.MedicalEventUseCase {
	return &medicalEventUseCase{
		repo:         repo,
		relationRepo: relationRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		TimeOut:      to,
	}
}

func (mu *medicalEventUseCase) CreateEvent(ctx context.Context, staffID int, event *domain.MedicalEvent) (*domain.MedicalEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	student, err := mu.userRepo.FindUserByID(ctx, event.StudentID)
	if err != nil {
		return nil, err
	}
	if student.Role != domain.RoleStudent || !student.IsActive {
		return nil, domain.NotFound("student with ID %d not found", event.StudentID)
	}

	event.CreatedByID = staffID
	event.Status = domain.EventStatusOpen
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	if err := mu.repo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return mu.repo.FindEventByID(ctx, event.EventID)
}

func (mu *medicalEventUseCase) GetEvent(ctx context.Context, id int) (*domain.MedicalEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	return mu.repo.FindEventByID(ctx, id)
}

func (mu *medicalEventUseCase) ListEvents(ctx context.Context, studentID int) (*[]domain.MedicalEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	return mu.repo.ListEvents(ctx, studentID)
}

func (mu *medicalEventUseCase) ListEventsForParent(ctx context.Context, parentID, studentID int) (*[]domain.MedicalEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	linked, err := mu.relationRepo.IsLinked(ctx, parentID, studentID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, domain.AuthzDenied("parent %d is not linked to student %d", parentID, studentID)
	}

	return mu.repo.ListEvents(ctx, studentID)
}

// UpdateStatus applies one lifecycle transition. Resolving stamps
// resolved_at; a terminal event refuses further transitions.
func (mu *medicalEventUseCase) UpdateStatus(ctx context.Context, id, staffID int, req *domain.EventStatusUpdate) (*domain.MedicalEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	event, err := mu.repo.FindEventByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransitionEvent(event.Status, req.Status) {
		return nil, domain.InvalidState("medical event cannot move from %s to %s", event.Status, req.Status)
	}

	event.Status = req.Status
	if req.ResolutionNotes != "" {
		event.ResolutionNotes = req.ResolutionNotes
	}
	if req.Status == domain.EventStatusResolved {
		now := time.Now()
		event.ResolvedAt = &now
	}

	if err := mu.repo.SaveEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (mu *medicalEventUseCase) AddMedication(ctx context.Context, eventID, staffID int, entry *domain.MedicationEntry) (*domain.MedicalEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	event, err := mu.repo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	med := domain.MedicalEventMedication{
		EventID:          event.EventID,
		MedicineName:     entry.MedicineName,
		Dosage:           entry.Dosage,
		Notes:            entry.Notes,
		AdministeredByID: staffID,
	}

	if err := mu.repo.AppendMedication(ctx, &med); err != nil {
		return nil, err
	}
	return mu.repo.FindEventByID(ctx, eventID)
}

// NotifyParent delivers the incident notice to the student's linked parent
// (emergency contact first) and overwrites the parent-notified sub-document
// with the outcome. Repeated calls replace the prior value.
func (mu *medicalEventUseCase) NotifyParent(ctx context.Context, eventID, staffID int) (*domain.MedicalEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	event, err := mu.repo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	rels, err := mu.relationRepo.ListLinkedParents(ctx, event.StudentID)
	if err != nil {
		return nil, err
	}
	if len(*rels) == 0 {
		return nil, domain.NotFound("student %d has no linked parent to notify", event.StudentID)
	}

	parent := (*rels)[0].Parent
	notice := domain.ParentNotice{
		Parent:  parent,
		Student: event.Student,
		Subject: fmt.Sprintf("Medical event notice for %s", event.Student.FullName),
		Body: fmt.Sprintf(
			"Dear %s,\n\nYour child %s was attended by the school medical staff on %s (%s, severity %s). Current status: %s.\n\nPlease contact the school medical office for details.",
			parent.FullName, event.Student.FullName,
			event.OccurredAt.Format("02/01/2006 15:04"),
			event.EventType, event.Severity, event.Status),
	}

	now := time.Now()
	method, sendErr := mu.notifier.Send(ctx, &notice)
	if sendErr != nil {
		event.ParentNotifiedStatus = domain.NotifyStatusFailed
		event.ParentNotifiedMethod = ""
	} else {
		event.ParentNotifiedStatus = domain.NotifyStatusSent
		event.ParentNotifiedMethod = method
	}
	event.ParentNotifiedAt = &now

	if err := mu.repo.SaveEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}
