package domain

import (
	"context"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// HealthProfile is one-to-one with a student. Both the nurse and a linked
// parent may upsert it.
type HealthProfile struct {
	ProfileID        int            `gorm:"primaryKey;autoIncrement" json:"profile_id"`
	StudentID        int            `gorm:"not null;uniqueIndex" json:"student_id"`
	Student          *User          `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
	Allergies        pq.StringArray `gorm:"type:text[]" json:"allergies"`
	ChronicDiseases  pq.StringArray `gorm:"type:text[]" json:"chronic_diseases"`
	VisionLeft       float64        `json:"vision_left"`
	VisionRight      float64        `json:"vision_right"`
	HearingLeft      string         `gorm:"type:varchar(20)" json:"hearing_left"`
	HearingRight     string         `gorm:"type:varchar(20)" json:"hearing_right"`
	HeightCM         float64        `json:"height_cm"`
	WeightKG         float64        `json:"weight_kg"`
	Vaccinations     datatypes.JSON `json:"vaccinations"`
	TreatmentHistory datatypes.JSON `json:"treatment_history"`
	UpdatedByID      *int           `json:"updated_by,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// VaccinationRecord is the shape of one entry inside HealthProfile.Vaccinations.
type VaccinationRecord struct {
	VaccineName string `json:"vaccine_name"`
	Date        string `json:"date"`
	Note        string `json:"note,omitempty"`
}

type HealthProfilePayload struct {
	Allergies        []string       `json:"allergies"`
	ChronicDiseases  []string       `json:"chronic_diseases"`
	VisionLeft       float64        `json:"vision_left"`
	VisionRight      float64        `json:"vision_right"`
	HearingLeft      string         `json:"hearing_left"`
	HearingRight     string         `json:"hearing_right"`
	HeightCM         float64        `json:"height_cm"`
	WeightKG         float64        `json:"weight_kg"`
	Vaccinations     datatypes.JSON `json:"vaccinations"`
	TreatmentHistory datatypes.JSON `json:"treatment_history"`
}

type HealthProfileRepo interface {
	UpsertHealthProfile(ctx context.Context, profile *HealthProfile) (*HealthProfile, error)
	GetHealthProfileByStudent(ctx context.Context, studentID int) (*HealthProfile, error)
}

type HealthProfileUseCase interface {
	Upsert(ctx context.Context, actor *Claims, studentID int, payload *HealthProfilePayload) (*HealthProfile, error)
	Get(ctx context.Context, actor *Claims, studentID int) (*HealthProfile, error)
}
