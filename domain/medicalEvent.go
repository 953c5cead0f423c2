package domain

import (
	"context"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	EventStatusOpen       = "Open"
	EventStatusInProgress = "In Progress"
	EventStatusResolved   = "Resolved"
	EventStatusReferred   = "Referred"
)

const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

const (
	NotifyMethodWhatsApp = "whatsapp"
	NotifyMethodEmail    = "email"

	NotifyStatusSent   = "sent"
	NotifyStatusFailed = "failed"
)

// MedicalEvent records one incident for a student. Medications are
// append-only child rows; the parent-notified fields form a single
// overwritable sub-document, not a log.
type MedicalEvent struct {
	EventID              int                      `gorm:"primaryKey;autoIncrement" json:"event_id"`
	StudentID            int                      `gorm:"not null;index" json:"student_id"`
	Student              *User                    `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
	CreatedByID          int                      `gorm:"not null" json:"created_by"`
	CreatedBy            *User                    `gorm:"foreignKey:CreatedByID;references:UserID" json:"created_by_user,omitempty"`
	EventType            string                   `gorm:"type:varchar(50);not null" json:"event_type" valid:"required~Event type is required"`
	Severity             string                   `gorm:"type:varchar(10);not null" json:"severity" valid:"required~Severity is required,in(Low|Medium|High|Critical)~Invalid severity"`
	Description          string                   `gorm:"type:text" json:"description"`
	Symptoms             pq.StringArray           `gorm:"type:text[]" json:"symptoms"`
	Location             string                   `gorm:"type:varchar(100)" json:"location"`
	OccurredAt           time.Time                `json:"occurred_at"`
	Status               string                   `gorm:"type:varchar(15);not null;default:Open" json:"status"`
	ResolvedAt           *time.Time               `json:"resolved_at,omitempty"`
	ResolutionNotes      string                   `gorm:"type:text" json:"resolution_notes"`
	FollowUpRequired     bool                     `json:"follow_up_required"`
	ParentNotifiedStatus string                   `gorm:"type:varchar(10)" json:"parent_notified_status"`
	ParentNotifiedAt     *time.Time               `json:"parent_notified_at,omitempty"`
	ParentNotifiedMethod string                   `gorm:"type:varchar(10)" json:"parent_notified_method"`
	Medications          []MedicalEventMedication `gorm:"foreignKey:EventID;references:EventID" json:"medications_administered"`
	CreatedAt            time.Time                `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time                `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt           `gorm:"index" json:"deleted_at,omitempty"`
}

type MedicalEventMedication struct {
	MedicationID     int       `gorm:"primaryKey;autoIncrement" json:"medication_id"`
	EventID          int       `gorm:"not null;index" json:"event_id"`
	MedicineName     string    `gorm:"type:varchar(100);not null" json:"medicine_name" valid:"required~Medicine name is required"`
	Dosage           string    `gorm:"type:varchar(50)" json:"dosage"`
	Notes            string    `gorm:"type:text" json:"notes"`
	AdministeredByID int       `gorm:"not null" json:"administered_by"`
	AdministeredAt   time.Time `gorm:"autoCreateTime" json:"administered_at"`
}

// CanTransitionEvent guards the incident lifecycle:
// Open -> In Progress | Resolved | Referred, In Progress -> Resolved | Referred.
// Resolved and Referred are terminal.
func CanTransitionEvent(from, to string) bool {
	switch from {
	case EventStatusOpen:
		return to == EventStatusInProgress || to == EventStatusResolved || to == EventStatusReferred
	case EventStatusInProgress:
		return to == EventStatusResolved || to == EventStatusReferred
	}
	return false
}

type EventStatusUpdate struct {
	Status          string `json:"status" valid:"required~Status is required"`
	ResolutionNotes string `json:"resolution_notes"`
}

type MedicationEntry struct {
	MedicineName string `json:"medicine_name" valid:"required~Medicine name is required"`
	Dosage       string `json:"dosage"`
	Notes        string `json:"notes"`
}

type MedicalEventRepo interface {
	CreateEvent(ctx context.Context, event *MedicalEvent) error
	FindEventByID(ctx context.Context, id int) (*MedicalEvent, error)
	ListEvents(ctx context.Context, studentID int) (*[]MedicalEvent, error)
	SaveEvent(ctx context.Context, event *MedicalEvent) error
	AppendMedication(ctx context.Context, med *MedicalEventMedication) error
}

type MedicalEventUseCase interface {
	CreateEvent(ctx context.Context, staffID int, event *MedicalEvent) (*MedicalEvent, error)
	GetEvent(ctx context.Context, id int) (*MedicalEvent, error)
	ListEvents(ctx context.Context, studentID int) (*[]MedicalEvent, error)
	ListEventsForParent(ctx context.Context, parentID, studentID int) (*[]MedicalEvent, error)
	UpdateStatus(ctx context.Context, id, staffID int, req *EventStatusUpdate) (*MedicalEvent, error)
	AddMedication(ctx context.Context, eventID, staffID int, entry *MedicationEntry) (*MedicalEvent, error)
	NotifyParent(ctx context.Context, eventID, staffID int) (*MedicalEvent, error)
}
