package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

const (
	MedicineRequestPending   = "Pending"
	MedicineRequestApproved  = "Approved"
	MedicineRequestRejected  = "Rejected"
	MedicineRequestCompleted = "Completed"
)

// MedicineRequest is created by a linked parent and is immutable afterwards
// except for the review workflow fields.
type MedicineRequest struct {
	RequestID    int            `gorm:"primaryKey;autoIncrement" json:"request_id"`
	StudentID    int            `gorm:"not null;index" json:"student_id"`
	Student      *User          `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
	CreatedByID  int            `gorm:"not null" json:"created_by"`
	CreatedBy    *User          `gorm:"foreignKey:CreatedByID;references:UserID" json:"created_by_user,omitempty"`
	StartDate    time.Time      `gorm:"not null" json:"start_date"`
	EndDate      time.Time      `gorm:"not null" json:"end_date"`
	Medicines    datatypes.JSON `gorm:"not null" json:"medicines"`
	Status       string         `gorm:"type:varchar(10);not null;default:Pending" json:"status"`
	ReviewedByID *int           `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time     `json:"reviewed_at,omitempty"`
	ReviewNotes  string         `gorm:"type:text" json:"review_notes"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// MedicineItem is the shape of one entry inside MedicineRequest.Medicines.
type MedicineItem struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Instructions string `json:"instructions,omitempty"`
}

type MedicineRequestPayload struct {
	StudentID int            `json:"student_id" valid:"required~Student ID is required"`
	StartDate string         `json:"start_date" valid:"required~Start date is required"`
	EndDate   string         `json:"end_date" valid:"required~End date is required"`
	Medicines []MedicineItem `json:"medicines"`
}

type MedicineRequestReview struct {
	Status string `json:"status" valid:"required~Status is required"`
	Notes  string `json:"notes"`
}

// ValidateMedicineRequestDates rejects reversed or already-expired windows.
// The end must come strictly after the start and must not lie in the past,
// regardless of the start.
func ValidateMedicineRequestDates(now, start, end time.Time) error {
	if !end.After(start) {
		return Validation("end date must be after start date")
	}
	if end.Before(now) {
		return Validation("end date must not be in the past")
	}
	return nil
}

// CanTransitionMedicineRequest: Pending -> Approved | Rejected,
// Approved -> Completed.
func CanTransitionMedicineRequest(from, to string) bool {
	switch from {
	case MedicineRequestPending:
		return to == MedicineRequestApproved || to == MedicineRequestRejected
	case MedicineRequestApproved:
		return to == MedicineRequestCompleted
	}
	return false
}

type MedicineRequestRepo interface {
	CreateMedicineRequest(ctx context.Context, req *MedicineRequest) error
	FindMedicineRequestByID(ctx context.Context, id int) (*MedicineRequest, error)
	ListMedicineRequests(ctx context.Context, studentID int) (*[]MedicineRequest, error)
	ListMedicineRequestsByParent(ctx context.Context, parentID int) (*[]MedicineRequest, error)
	SaveMedicineRequest(ctx context.Context, req *MedicineRequest) error
}

type MedicineRequestUseCase interface {
	Create(ctx context.Context, parentID int, payload *MedicineRequestPayload) (*MedicineRequest, error)
	ListByParent(ctx context.Context, parentID int) (*[]MedicineRequest, error)
	ListAll(ctx context.Context, studentID int) (*[]MedicineRequest, error)
	Review(ctx context.Context, requestID, staffID int, review *MedicineRequestReview) (*MedicineRequest, error)
}
