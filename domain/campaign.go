package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CampaignVaccination = "Vaccination"
	CampaignCheckup     = "Checkup"
)

const (
	ConsentPending  = "Pending"
	ConsentApproved = "Approved"
	ConsentDeclined = "Declined"
)

type Campaign struct {
	CampaignID     string         `gorm:"type:uuid;primaryKey" json:"campaign_id"`
	Title          string         `gorm:"type:varchar(150);not null" json:"title" valid:"required~Title is required"`
	Type           string         `gorm:"type:varchar(15);not null" json:"type" valid:"required~Type is required,in(Vaccination|Checkup)~Type must be Vaccination or Checkup"`
	Description    string         `gorm:"type:text" json:"description"`
	ScheduledDate  time.Time      `gorm:"not null" json:"scheduled_date"`
	VaccineDetails datatypes.JSON `json:"vaccine_details,omitempty"`
	CreatedByID    int            `gorm:"not null" json:"created_by"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// ValidateCampaign enforces the type-dependent field: vaccination campaigns
// must describe the vaccine, checkups must not.
func ValidateCampaign(c *Campaign) error {
	switch c.Type {
	case CampaignVaccination:
		if len(c.VaccineDetails) == 0 {
			return Validation("vaccine details are required for a vaccination campaign")
		}
	case CampaignCheckup:
	default:
		return Validation("campaign type must be Vaccination or Checkup")
	}
	return nil
}

// CampaignConsent is a parent's answer for one student in one campaign,
// unique per (campaign, student).
type CampaignConsent struct {
	ConsentID    string    `gorm:"type:uuid;primaryKey" json:"consent_id"`
	CampaignID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_campaign_student" json:"campaign_id"`
	Campaign     *Campaign `gorm:"foreignKey:CampaignID;references:CampaignID" json:"campaign,omitempty"`
	StudentID    int       `gorm:"not null;uniqueIndex:idx_campaign_student" json:"student_id"`
	Student      *User     `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
	AnsweredByID int       `gorm:"not null" json:"answered_by"`
	Status       string    `gorm:"type:varchar(10);not null;default:Pending" json:"status"`
	Notes        string    `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type ConsentUpdate struct {
	StudentID int    `json:"student_id" valid:"required~Student ID is required"`
	Status    string `json:"status" valid:"required~Status is required,in(Approved|Declined)~Status must be Approved or Declined"`
	Notes     string `json:"notes"`
}

// ConsentOverview pairs a campaign with the parent's current consent for one
// of their students, if any.
type ConsentOverview struct {
	Campaign Campaign          `json:"campaign"`
	Consents []CampaignConsent `json:"consents"`
}

type CampaignResult struct {
	ResultID             string         `gorm:"type:uuid;primaryKey" json:"result_id"`
	CampaignID           string         `gorm:"type:uuid;not null;index" json:"campaign_id"`
	Campaign             *Campaign      `gorm:"foreignKey:CampaignID;references:CampaignID" json:"campaign,omitempty"`
	StudentID            int            `gorm:"not null;index" json:"student_id"`
	Student              *User          `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
	CreatedByID          int            `gorm:"not null" json:"created_by"`
	CheckupDetails       datatypes.JSON `json:"checkup_details,omitempty"`
	VaccinationDetails   datatypes.JSON `json:"vaccination_details,omitempty"`
	RequiresConsultation bool           `json:"requires_consultation"`
	Notes                string         `gorm:"type:text" json:"notes"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

type CampaignUpdateRequest struct {
	Title          *string        `json:"title"`
	Description    *string        `json:"description"`
	ScheduledDate  *string        `json:"scheduled_date"`
	VaccineDetails datatypes.JSON `json:"vaccine_details"`
}

type CampaignRepo interface {
	CreateCampaign(ctx context.Context, c *Campaign) error
	FindCampaignByID(ctx context.Context, id string) (*Campaign, error)
	ListCampaigns(ctx context.Context) (*[]Campaign, error)
	SaveCampaign(ctx context.Context, c *Campaign) error

	UpsertConsent(ctx context.Context, consent *CampaignConsent) (*CampaignConsent, error)
	ListConsentsByCampaign(ctx context.Context, campaignID string) (*[]CampaignConsent, error)
	ListConsentsByParent(ctx context.Context, parentID int) (*[]CampaignConsent, error)

	CreateResult(ctx context.Context, result *CampaignResult) error
	FindResultByID(ctx context.Context, id string) (*CampaignResult, error)
	ListResultsByCampaign(ctx context.Context, campaignID string) (*[]CampaignResult, error)
}

type CampaignUseCase interface {
	CreateCampaign(ctx context.Context, adminID int, c *Campaign) (*Campaign, error)
	GetCampaign(ctx context.Context, id string) (*Campaign, error)
	ListCampaigns(ctx context.Context) (*[]Campaign, error)
	UpdateCampaign(ctx context.Context, id string, req *CampaignUpdateRequest) (*Campaign, error)

	UpdateConsent(ctx context.Context, parentID int, campaignID string, req *ConsentUpdate) (*CampaignConsent, error)
	ListConsentsByCampaign(ctx context.Context, campaignID string) (*[]CampaignConsent, error)
	ConsentOverviewForParent(ctx context.Context, parentID int) (*[]ConsentOverview, error)

	RecordResult(ctx context.Context, staffID int, campaignID string, result *CampaignResult) (*CampaignResult, error)
	ListResultsByCampaign(ctx context.Context, campaignID string) (*[]CampaignResult, error)
}
