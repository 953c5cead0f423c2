package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"schoolhealth/domain"
)

type relationRepository struct {
	db *gorm.DB
}

func NewRelationRepository(database *gorm.DB) domain.RelationRepo {
	return &relationRepository{
		db: database,
	}
}

func (rr *relationRepository) FindRelation(ctx context.Context, studentID, parentID int) (*domain.StudentParentRelation, error) {
	var rel domain.StudentParentRelation
	err := rr.db.WithContext(ctx).
		Where("student_id = ? AND parent_id = ?", studentID, parentID).
		First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("no relation between student %d and parent %d", studentID, parentID)
		}
		return nil, domain.ServerErr("could not fetch relation", err)
	}
	return &rel, nil
}

func (rr *relationRepository) FindRelationByID(ctx context.Context, id int) (*domain.StudentParentRelation, error) {
	var rel domain.StudentParentRelation
	err := rr.db.WithContext(ctx).
		Preload("Student").
		Preload("Parent").
		Where("relation_id = ?", id).
		First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("link request with ID %d not found", id)
		}
		return nil, domain.ServerErr("could not fetch link request", err)
	}
	return &rel, nil
}

func (rr *relationRepository) CreateRelation(ctx context.Context, rel *domain.StudentParentRelation) error {
	if err := rr.db.WithContext(ctx).Create(rel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflict("a relation for this student and parent already exists")
		}
		return domain.ServerErr("could not insert relation", err)
	}
	return nil
}

func (rr *relationRepository) SaveRelation(ctx context.Context, rel *domain.StudentParentRelation) error {
	if err := rr.db.WithContext(ctx).Save(rel).Error; err != nil {
		return domain.ServerErr("could not update relation", err)
	}
	return nil
}

func (rr *relationRepository) ListPendingRelations(ctx context.Context) (*[]domain.StudentParentRelation, error) {
	var rels []domain.StudentParentRelation
	err := rr.db.WithContext(ctx).
		Preload("Student").
		Preload("Parent").
		Where("status = ? AND is_active = ?", domain.RelationPending, true).
		Order("created_at DESC").
		Find(&rels).Error
	if err != nil {
		return nil, domain.ServerErr("could not list pending link requests", err)
	}
	return &rels, nil
}

func (rr *relationRepository) ListRelationsByParent(ctx context.Context, parentID int) (*[]domain.StudentParentRelation, error) {
	var rels []domain.StudentParentRelation
	err := rr.db.WithContext(ctx).
		Preload("Student").
		Where("parent_id = ? AND is_active = ?", parentID, true).
		Order("created_at DESC").
		Find(&rels).Error
	if err != nil {
		return nil, domain.ServerErr("could not list relations", err)
	}
	return &rels, nil
}

func (rr *relationRepository) ListLinkedStudents(ctx context.Context, parentID int) (*[]domain.User, error) {
	var students []domain.User
	err := rr.db.WithContext(ctx).
		Joins("JOIN student_parent_relations r ON r.student_id = users.user_id").
		Where("r.parent_id = ? AND r.status = ? AND r.is_active = ?", parentID, domain.RelationApproved, true).
		Where("users.is_active = ?", true).
		Find(&students).Error
	if err != nil {
		return nil, domain.ServerErr("could not list linked students", err)
	}
	return &students, nil
}

func (rr *relationRepository) ListLinkedParents(ctx context.Context, studentID int) (*[]domain.StudentParentRelation, error) {
	var rels []domain.StudentParentRelation
	err := rr.db.WithContext(ctx).
		Preload("Parent").
		Where("student_id = ? AND status = ? AND is_active = ?",
			studentID, domain.RelationApproved, true).
		Order("is_emergency_contact DESC, created_at ASC").
		Find(&rels).Error
	if err != nil {
		return nil, domain.ServerErr("could not list linked parents", err)
	}
	return &rels, nil
}

func (rr *relationRepository) IsLinked(ctx context.Context, parentID, studentID int) (bool, error) {
	var count int64
	err := rr.db.WithContext(ctx).
		Model(&domain.StudentParentRelation{}).
		Where("parent_id = ? AND student_id = ? AND status = ? AND is_active = ?",
			parentID, studentID, domain.RelationApproved, true).
		Count(&count).Error
	if err != nil {
		return false, domain.ServerErr("could not check relation", err)
	}
	return count > 0, nil
}
