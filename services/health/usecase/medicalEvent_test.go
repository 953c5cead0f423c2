package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"schoolhealth/domain"
)

type fakeMedicalEventRepo struct {
	events      map[int]*domain.MedicalEvent
	medications []*domain.MedicalEventMedication
	nextID      int
}

func newFakeMedicalEventRepo() *fakeMedicalEventRepo {
	return &fakeMedicalEventRepo{
		events: make(map[int]*domain.MedicalEvent),
		nextID: 1,
	}
}

func (f *fakeMedicalEventRepo) CreateEvent(_ context.Context, event *domain.MedicalEvent) error {
	event.EventID = f.nextID
	f.nextID++
	f.events[event.EventID] = event
	return nil
}

func (f *fakeMedicalEventRepo) FindEventByID(_ context.Context, id int) (*domain.MedicalEvent, error) {
	event, okay := f.events[id]
	if !okay {
		return nil, domain.NotFound("medical event %d not found", id)
	}
	return event, nil
}

func (f *fakeMedicalEventRepo) ListEvents(_ context.Context, studentID int) (*[]domain.MedicalEvent, error) {
	return &[]domain.MedicalEvent{}, nil
}

func (f *fakeMedicalEventRepo) SaveEvent(_ context.Context, event *domain.MedicalEvent) error {
	f.events[event.EventID] = event
	return nil
}

func (f *fakeMedicalEventRepo) AppendMedication(_ context.Context, med *domain.MedicalEventMedication) error {
	f.medications = append(f.medications, med)
	return nil
}

type fakeNotifier struct {
	method string
	err    error
	sent   []*domain.ParentNotice
}

func (f *fakeNotifier) Send(_ context.Context, notice *domain.ParentNotice) (string, error) {
	f.sent = append(f.sent, notice)
	return f.method, f.err
}

func eventFixture(notifier domain.Notifier) (*fakeMedicalEventRepo, *fakeRelationRepo, domain.MedicalEventUseCase) {
	repo := newFakeMedicalEventRepo()
	relRepo := newFakeRelationRepo()
	userRepo := newFakeUserRepo()
	userRepo.users[1] = &domain.User{UserID: 1, Role: domain.RoleStudent, FullName: "A Student", IsActive: true}
	return repo, relRepo, NewMedicalEventUseCase(repo, relRepo, userRepo, notifier, time.Second)
}

func TestCreateEventStartsOpen(t *testing.T) {
	_, _, uc := eventFixture(&fakeNotifier{})

	event, err := uc.CreateEvent(context.Background(), 5, &domain.MedicalEvent{
		StudentID: 1,
		EventType: "injury",
		Severity:  domain.SeverityLow,
		Status:    domain.EventStatusResolved, // must be ignored
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if event.Status != domain.EventStatusOpen {
		t.Errorf("status = %q, want Open regardless of input", event.Status)
	}
	if event.CreatedByID != 5 {
		t.Errorf("created_by = %d, want 5", event.CreatedByID)
	}
	if event.OccurredAt.IsZero() {
		t.Error("occurred_at must default to now")
	}
}

func TestUpdateEventStatus(t *testing.T) {
	repo, _, uc := eventFixture(&fakeNotifier{})
	repo.events[1] = &domain.MedicalEvent{EventID: 1, StudentID: 1, Status: domain.EventStatusOpen}
	repo.nextID = 2

	event, err := uc.UpdateStatus(context.Background(), 1, 5, &domain.EventStatusUpdate{
		Status: domain.EventStatusResolved,
		ResolutionNotes: "sent home with guardian",
	})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if event.ResolvedAt == nil {
		t.Error("resolving must stamp resolved_at")
	}

	_, err = uc.UpdateStatus(context.Background(), 1, 5, &domain.EventStatusUpdate{
		Status: domain.EventStatusInProgress,
	})
	if domain.KindOf(err) != domain.KindInvalidState {
		t.Errorf("resolved event transition: kind = %v, want KindInvalidState", domain.KindOf(err))
	}
}

func TestNotifyParentRecordsOutcome(t *testing.T) {
	phone := "0912345678"
	parent := &domain.User{UserID: 2, Role: domain.RoleParent, FullName: "A Parent", Telephone: &phone}

	setup := func(n domain.Notifier) (domain.MedicalEventUseCase, *fakeMedicalEventRepo) {
		repo, relRepo, uc := eventFixture(n)
		repo.events[1] = &domain.MedicalEvent{
			EventID:   1,
			StudentID: 1,
			Student:   &domain.User{UserID: 1, FullName: "A Student"},
			EventType: "fever",
			Severity:  domain.SeverityMedium,
			Status:    domain.EventStatusOpen,
			OccurredAt: time.Now(),
		}
		repo.nextID = 2
		relRepo.relations[1] = &domain.StudentParentRelation{
			RelationID: 1, StudentID: 1, ParentID: 2,
			Status: domain.RelationApproved, IsActive: true,
			Parent: parent,
		}
		return uc, repo
	}

	t.Run("delivered", func(t *testing.T) {
		notifier := &fakeNotifier{method: domain.NotifyMethodWhatsApp}
		uc, _ := setup(notifier)

		event, err := uc.NotifyParent(context.Background(), 1, 5)
		if err != nil {
			t.Fatalf("NotifyParent: %v", err)
		}

		if event.ParentNotifiedStatus != domain.NotifyStatusSent {
			t.Errorf("notified status = %q, want sent", event.ParentNotifiedStatus)
		}
		if event.ParentNotifiedMethod != domain.NotifyMethodWhatsApp {
			t.Errorf("notified method = %q, want whatsapp", event.ParentNotifiedMethod)
		}
		if event.ParentNotifiedAt == nil {
			t.Error("notified_at must be stamped")
		}
		if len(notifier.sent) != 1 {
			t.Fatalf("expected one notice, got %d", len(notifier.sent))
		}
	})

	t.Run("failed delivery still recorded", func(t *testing.T) {
		notifier := &fakeNotifier{err: errors.New("channel down")}
		uc, _ := setup(notifier)

		event, err := uc.NotifyParent(context.Background(), 1, 5)
		if err != nil {
			t.Fatalf("NotifyParent: %v", err)
		}

		if event.ParentNotifiedStatus != domain.NotifyStatusFailed {
			t.Errorf("notified status = %q, want failed", event.ParentNotifiedStatus)
		}
		if event.ParentNotifiedMethod != "" {
			t.Errorf("notified method = %q, want empty on failure", event.ParentNotifiedMethod)
		}
	})
}

func TestNotifyParentNoLinkedParent(t *testing.T) {
	repo, _, uc := eventFixture(&fakeNotifier{})
	repo.events[1] = &domain.MedicalEvent{EventID: 1, StudentID: 1, Status: domain.EventStatusOpen}
	repo.nextID = 2

	_, err := uc.NotifyParent(context.Background(), 1, 5)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("error kind = %v, want KindNotFound", domain.KindOf(err))
	}
}

func TestAddMedicationAppends(t *testing.T) {
	repo, _, uc := eventFixture(&fakeNotifier{})
	repo.events[1] = &domain.MedicalEvent{EventID: 1, StudentID: 1, Status: domain.EventStatusOpen}
	repo.nextID = 2

	_, err := uc.AddMedication(context.Background(), 1, 5, &domain.MedicationEntry{
		MedicineName: "Ibuprofen",
		Dosage:       "200mg",
	})
	if err != nil {
		t.Fatalf("AddMedication: %v", err)
	}

	if len(repo.medications) != 1 {
		t.Fatalf("expected one appended medication, got %d", len(repo.medications))
	}
	if repo.medications[0].AdministeredByID != 5 {
		t.Errorf("administered_by = %d, want 5", repo.medications[0].AdministeredByID)
	}
}
