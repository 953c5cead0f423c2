package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolhealth/domain"
)

type campaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(database *gorm.DB) domain.CampaignRepo {
	return &campaignRepository{
		db: database,
	}
}

func (cr *campaignRepository) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	if err := cr.db.WithContext(ctx).Create(c).Error; err != nil {
		return domain.ServerErr("could not insert campaign", err)
	}
	return nil
}

func (cr *campaignRepository) FindCampaignByID(ctx context.Context, id string) (*domain.Campaign, error) {
	var c domain.Campaign
	err := cr.db.WithContext(ctx).Where("campaign_id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("campaign %s not found", id)
		}
		return nil, domain.ServerErr("could not fetch campaign", err)
	}
	return &c, nil
}

func (cr *campaignRepository) ListCampaigns(ctx context.Context) (*[]domain.Campaign, error) {
	var campaigns []domain.Campaign
	err := cr.db.WithContext(ctx).Order("scheduled_date DESC").Find(&campaigns).Error
	if err != nil {
		return nil, domain.ServerErr("could not list campaigns", err)
	}
	return &campaigns, nil
}

func (cr *campaignRepository) SaveCampaign(ctx context.Context, c *domain.Campaign) error {
	if err := cr.db.WithContext(ctx).Save(c).Error; err != nil {
		return domain.ServerErr("could not update campaign", err)
	}
	return nil
}

func (cr *campaignRepository) UpsertConsent(ctx context.Context, consent *domain.CampaignConsent) (*domain.CampaignConsent, error) {
	err := cr.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "campaign_id"}, {Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "notes", "answered_by_id", "updated_at",
			}),
		}).
		Create(consent).Error
	if err != nil {
		return nil, domain.ServerErr("could not upsert consent", err)
	}

	var saved domain.CampaignConsent
	err = cr.db.WithContext(ctx).
		Preload("Student").
		Where("campaign_id = ? AND student_id = ?", consent.CampaignID, consent.StudentID).
		First(&saved).Error
	if err != nil {
		return nil, domain.ServerErr("could not fetch consent", err)
	}
	return &saved, nil
}

func (cr *campaignRepository) ListConsentsByCampaign(ctx context.Context, campaignID string) (*[]domain.CampaignConsent, error) {
	var consents []domain.CampaignConsent
	err := cr.db.WithContext(ctx).
		Preload("Student").
		Where("campaign_id = ?", campaignID).
		Order("updated_at DESC").
		Find(&consents).Error
	if err != nil {
		return nil, domain.ServerErr("could not list consents", err)
	}
	return &consents, nil
}

func (cr *campaignRepository) ListConsentsByParent(ctx context.Context, parentID int) (*[]domain.CampaignConsent, error) {
	var consents []domain.CampaignConsent
	err := cr.db.WithContext(ctx).
		Preload("Student").
		Preload("Campaign").
		Where("answered_by_id = ?", parentID).
		Order("updated_at DESC").
		Find(&consents).Error
	if err != nil {
		return nil, domain.ServerErr("could not list consents", err)
	}
	return &consents, nil
}

func (cr *campaignRepository) CreateResult(ctx context.Context, result *domain.CampaignResult) error {
	if err := cr.db.WithContext(ctx).Create(result).Error; err != nil {
		return domain.ServerErr("could not insert campaign result", err)
	}
	return nil
}

func (cr *campaignRepository) FindResultByID(ctx context.Context, id string) (*domain.CampaignResult, error) {
	var result domain.CampaignResult
	err := cr.db.WithContext(ctx).
		Preload("Student").
		Preload("Campaign").
		Where("result_id = ?", id).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("campaign result %s not found", id)
		}
		return nil, domain.ServerErr("could not fetch campaign result", err)
	}
	return &result, nil
}

func (cr *campaignRepository) ListResultsByCampaign(ctx context.Context, campaignID string) (*[]domain.CampaignResult, error) {
	var results []domain.CampaignResult
	err := cr.db.WithContext(ctx).
		Preload("Student").
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, domain.ServerErr("could not list campaign results", err)
	}
	return &results, nil
}
