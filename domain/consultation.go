package domain

import (
	"context"
	"time"
)

const (
	ConsultationScheduled = "Scheduled"
	ConsultationCompleted = "Completed"
	ConsultationCancelled = "Cancelled"
)

const (
	ConsultationMinMinutes = 15
	ConsultationMaxMinutes = 120
)

// ConsultationSchedule is a follow-up meeting between medical staff, a
// student and the attending parent, usually triggered by a campaign result
// flagged requires_consultation.
type ConsultationSchedule struct {
	ConsultationID    string          `gorm:"type:uuid;primaryKey" json:"consultation_id"`
	CampaignResultID  string          `gorm:"type:uuid;not null;index" json:"campaign_result_id"`
	CampaignResult    *CampaignResult `gorm:"foreignKey:CampaignResultID;references:ResultID" json:"campaign_result,omitempty"`
	StudentID         int             `gorm:"not null;index" json:"student_id"`
	Student           *User           `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
	MedicalStaffID    int             `gorm:"not null;index" json:"medical_staff_id"`
	MedicalStaff      *User           `gorm:"foreignKey:MedicalStaffID;references:UserID" json:"medical_staff,omitempty"`
	AttendingParentID int             `gorm:"not null;index" json:"attending_parent_id"`
	AttendingParent   *User           `gorm:"foreignKey:AttendingParentID;references:UserID" json:"attending_parent,omitempty"`
	ScheduledDate     time.Time       `gorm:"not null" json:"scheduled_date"`
	DurationMinutes   int             `gorm:"not null" json:"duration_minutes"`
	Status            string          `gorm:"type:varchar(10);not null;default:Scheduled" json:"status"`
	Notes             string          `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type ConsultationRequest struct {
	CampaignResultID  string `json:"campaign_result_id" valid:"required~Campaign result ID is required"`
	StudentID         int    `json:"student_id" valid:"required~Student ID is required"`
	AttendingParentID int    `json:"attending_parent_id" valid:"required~Attending parent ID is required"`
	ScheduledDate     string `json:"scheduled_date" valid:"required~Scheduled date is required"`
	DurationMinutes   int    `json:"duration_minutes" valid:"required~Duration is required"`
	Notes             string `json:"notes"`
}

type ConsultationStatusUpdate struct {
	Status string `json:"status" valid:"required~Status is required,in(Completed|Cancelled)~Status must be Completed or Cancelled"`
	Notes  string `json:"notes"`
}

// ConsultationEnd is the exclusive end of the booked slot.
func ConsultationEnd(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

// IntervalsOverlap compares two half-open intervals [aStart, aEnd) and
// [bStart, bEnd). Touching boundaries do not overlap.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ValidateConsultationTime runs the pure part of the scheduling pipeline:
// strict-future date first, then duration bounds. First failure wins.
func ValidateConsultationTime(now, scheduled time.Time, durationMinutes int) error {
	if !scheduled.After(now) {
		return Validation("scheduled date must be in the future")
	}
	if durationMinutes < ConsultationMinMinutes || durationMinutes > ConsultationMaxMinutes {
		return Validation("duration must be between %d and %d minutes", ConsultationMinMinutes, ConsultationMaxMinutes)
	}
	return nil
}

// CanTransitionConsultation: Scheduled -> Completed | Cancelled.
func CanTransitionConsultation(from, to string) bool {
	return from == ConsultationScheduled &&
		(to == ConsultationCompleted || to == ConsultationCancelled)
}

type ConsultationRepo interface {
	CreateConsultation(ctx context.Context, c *ConsultationSchedule) error
	FindConsultationByID(ctx context.Context, id string) (*ConsultationSchedule, error)
	ListConsultations(ctx context.Context) (*[]ConsultationSchedule, error)
	ListConsultationsByParent(ctx context.Context, parentID int) (*[]ConsultationSchedule, error)
	ListConsultationsByStudent(ctx context.Context, studentID int) (*[]ConsultationSchedule, error)
	SaveConsultation(ctx context.Context, c *ConsultationSchedule) error
	// HasOverlap reports whether any Scheduled consultation for the staff
	// member intersects the half-open interval [start, end).
	HasOverlap(ctx context.Context, staffID int, start, end time.Time) (bool, error)
}

type ConsultationUseCase interface {
	Schedule(ctx context.Context, staffID int, req *ConsultationRequest) (*ConsultationSchedule, error)
	List(ctx context.Context) (*[]ConsultationSchedule, error)
	ListForParent(ctx context.Context, parentID int) (*[]ConsultationSchedule, error)
	ListForStudent(ctx context.Context, studentID int) (*[]ConsultationSchedule, error)
	UpdateStatus(ctx context.Context, id string, req *ConsultationStatusUpdate) (*ConsultationSchedule, error)
}
