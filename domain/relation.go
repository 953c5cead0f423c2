package domain

import (
	"context"
	"time"
)

const (
	RelationPending  = "pending"
	RelationApproved = "approved"
	RelationRejected = "rejected"
)

// StudentParentRelation links one parent to one student. The (student, parent)
// pair is unique; a rejected or deactivated record is reused on re-request
// instead of inserting a second row.
type StudentParentRelation struct {
	RelationID         int        `gorm:"primaryKey;autoIncrement" json:"relation_id"`
	StudentID          int        `gorm:"not null;uniqueIndex:idx_student_parent" json:"student_id"`
	ParentID           int        `gorm:"not null;uniqueIndex:idx_student_parent" json:"parent_id"`
	Student            *User      `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
	Parent             *User      `gorm:"foreignKey:ParentID;references:UserID" json:"parent,omitempty"`
	Relationship       string     `gorm:"type:varchar(30);not null" json:"relationship" valid:"required~Relationship is required"`
	IsEmergencyContact bool       `json:"is_emergency_contact"`
	Status             string     `gorm:"type:varchar(10);not null;default:pending" json:"status"`
	Notes              string     `gorm:"type:text" json:"notes"`
	AdminNotes         string     `gorm:"type:text" json:"admin_notes"`
	ProcessedByID      *int       `json:"processed_by,omitempty"`
	ProcessedAt        *time.Time `json:"processed_at,omitempty"`
	IsActive           bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type LinkRequest struct {
	StudentID          int    `json:"student_id" valid:"required~Student ID is required"`
	Relationship       string `json:"relationship" valid:"required~Relationship is required"`
	IsEmergencyContact bool   `json:"is_emergency_contact"`
	Notes              string `json:"notes"`
}

type LinkDecision struct {
	Decision string `json:"decision" valid:"required~Decision is required,in(approved|rejected)~Decision must be approved or rejected"`
	Notes    string `json:"notes"`
}

type RelationRepo interface {
	// FindRelation returns the row for the pair regardless of status or
	// is_active, so the caller can reactivate instead of duplicating.
	FindRelation(ctx context.Context, studentID, parentID int) (*StudentParentRelation, error)
	FindRelationByID(ctx context.Context, id int) (*StudentParentRelation, error)
	CreateRelation(ctx context.Context, rel *StudentParentRelation) error
	SaveRelation(ctx context.Context, rel *StudentParentRelation) error
	ListPendingRelations(ctx context.Context) (*[]StudentParentRelation, error)
	ListRelationsByParent(ctx context.Context, parentID int) (*[]StudentParentRelation, error)
	ListLinkedStudents(ctx context.Context, parentID int) (*[]User, error)
	// ListLinkedParents returns the approved active relations of a student,
	// emergency contacts first, with Parent preloaded.
	ListLinkedParents(ctx context.Context, studentID int) (*[]StudentParentRelation, error)
	// IsLinked is the single authorization predicate shared by every
	// parent-facing read/write: status approved and is_active true.
	IsLinked(ctx context.Context, parentID, studentID int) (bool, error)
}

type RelationUseCase interface {
	RequestLink(ctx context.Context, parentID int, req *LinkRequest) (*StudentParentRelation, error)
	CreateApprovedRelation(ctx context.Context, adminID, parentID int, req *LinkRequest) (*StudentParentRelation, error)
	RespondToLink(ctx context.Context, requestID, processedBy int, req *LinkDecision) (*StudentParentRelation, error)
	ListPending(ctx context.Context) (*[]StudentParentRelation, error)
	ListByParent(ctx context.Context, parentID int) (*[]StudentParentRelation, error)
	LinkedStudents(ctx context.Context, parentID int) (*[]User, error)
	RequireLink(ctx context.Context, parentID, studentID int) error
}
