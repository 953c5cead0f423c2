package usecase

import (
	"context"
	"testing"
	"time"

	"schoolhealth/domain"
)

func medicineFixture() (*fakeMedicineRequestRepo, *fakeRelationRepo, domain.MedicineRequestUseCase) {
	repo := newFakeMedicineRequestRepo()
	relRepo := newFakeRelationRepo()
	relRepo.linked[[2]int{2, 1}] = true
	return repo, relRepo, NewMedicineRequestUseCase(repo, relRepo, time.Second)
}

func validMedicinePayload() *domain.MedicineRequestPayload {
	return &domain.MedicineRequestPayload{
		StudentID: 1,
		StartDate: time.Now().Add(24 * time.Hour).Format("2006-01-02"),
		EndDate:   time.Now().Add(5 * 24 * time.Hour).Format("2006-01-02"),
		Medicines: []domain.MedicineItem{
			{Name: "Paracetamol", Dosage: "250mg", Frequency: "after lunch"},
		},
	}
}

func TestCreateMedicineRequest(t *testing.T) {
	repo, _, uc := medicineFixture()

	req, err := uc.Create(context.Background(), 2, validMedicinePayload())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if req.Status != domain.MedicineRequestPending {
		t.Errorf("status = %q, want Pending", req.Status)
	}
	if req.CreatedByID != 2 {
		t.Errorf("created_by = %d, want 2", req.CreatedByID)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created request, got %d", len(repo.created))
	}
}

func TestCreateMedicineRequestUnlinkedParent(t *testing.T) {
	_, _, uc := medicineFixture()

	payload := validMedicinePayload()
	payload.StudentID = 42

	_, err := uc.Create(context.Background(), 2, payload)
	if domain.KindOf(err) != domain.KindAuthzDenied {
		t.Errorf("error kind = %v, want KindAuthzDenied", domain.KindOf(err))
	}
}

func TestCreateMedicineRequestBadWindow(t *testing.T) {
	_, relRepo, uc := medicineFixture()
	relRepo.linked[[2]int{2, 1}] = true

	tests := []struct {
		name       string
		start, end string
	}{
		{"end before start", "2026-09-10", "2026-09-05"},
		{"end equals start", "2026-09-10", "2026-09-10"},
		{"window fully past", "2020-01-01", "2020-01-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validMedicinePayload()
			payload.StartDate = tt.start
			payload.EndDate = tt.end

			_, err := uc.Create(context.Background(), 2, payload)
			if domain.KindOf(err) != domain.KindValidation {
				t.Errorf("error kind = %v, want KindValidation", domain.KindOf(err))
			}
		})
	}
}

func TestCreateMedicineRequestNoMedicines(t *testing.T) {
	_, _, uc := medicineFixture()

	payload := validMedicinePayload()
	payload.Medicines = nil

	_, err := uc.Create(context.Background(), 2, payload)
	if domain.KindOf(err) != domain.KindValidation {
		t.Errorf("error kind = %v, want KindValidation", domain.KindOf(err))
	}
}

func TestReviewMedicineRequest(t *testing.T) {
	repo, _, uc := medicineFixture()
	repo.requests[1] = &domain.MedicineRequest{RequestID: 1, Status: domain.MedicineRequestPending}

	req, err := uc.Review(context.Background(), 1, 5, &domain.MedicineRequestReview{
		Status: domain.MedicineRequestApproved,
		Notes:  "dosage confirmed",
	})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}

	if req.Status != domain.MedicineRequestApproved {
		t.Errorf("status = %q, want Approved", req.Status)
	}
	if req.ReviewedByID == nil || *req.ReviewedByID != 5 {
		t.Error("reviewed_by must record the staff member")
	}
	if req.ReviewedAt == nil {
		t.Error("reviewed_at must be stamped")
	}

	// Approved can only complete.
	_, err = uc.Review(context.Background(), 1, 5, &domain.MedicineRequestReview{
		Status: domain.MedicineRequestRejected,
	})
	if domain.KindOf(err) != domain.KindInvalidState {
		t.Errorf("approved -> rejected: kind = %v, want KindInvalidState", domain.KindOf(err))
	}

	if _, err := uc.Review(context.Background(), 1, 5, &domain.MedicineRequestReview{
		Status: domain.MedicineRequestCompleted,
	}); err != nil {
		t.Errorf("approved -> completed: unexpected error %v", err)
	}
}
