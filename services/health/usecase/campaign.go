package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"schoolhealth/domain"
)

type campaignUseCase struct {
	repo         domain.CampaignRepo
	relationRepo domain.RelationRepo
	userRepo     domain.UserRepo
	TimeOut      time.Duration
}

func NewCampaignUseCase(repo domain.CampaignRepo, relationRepo domain.RelationRepo, userRepo domain.UserRepo, to time.Duration) domain.CampaignUseCase {
	return &campaignUseCase{
		repo:         repo,
		relationRepo: relationRepo,
		userRepo:     userRepo,
		TimeOut:      to,
	}
}

func (cu *campaignUseCase) CreateCampaign(ctx context.Context, adminID int, c *domain.Campaign) (*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	if err := domain.ValidateCampaign(c); err != nil {
		return nil, err
	}

	c.CampaignID = uuid.NewString()
	c.CreatedByID = adminID

	if err := cu.repo.CreateCampaign(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (cu *campaignUseCase) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.repo.FindCampaignByID(ctx, id)
}

func (cu *campaignUseCase) ListCampaigns(ctx context.Context) (*[]domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.repo.ListCampaigns(ctx)
}

func (cu *campaignUseCase) UpdateCampaign(ctx context.Context, id string, req *domain.CampaignUpdateRequest) (*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	c, err := cu.repo.FindCampaignByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.ScheduledDate != nil {
		date, err := time.Parse(time.RFC3339, *req.ScheduledDate)
		if err != nil {
			return nil, domain.Validation("scheduled date must be RFC3339")
		}
		c.ScheduledDate = date
	}
	if len(req.VaccineDetails) > 0 {
		c.VaccineDetails = req.VaccineDetails
	}

	if err := domain.ValidateCampaign(c); err != nil {
		return nil, err
	}

	if err := cu.repo.SaveCampaign(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateConsent upserts the parent's answer for one (campaign, student)
// pair, behind the relation predicate.
func (cu *campaignUseCase) UpdateConsent(ctx context.Context, parentID int, campaignID string, req *domain.ConsentUpdate) (*domain.CampaignConsent, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	if _, err := cu.repo.FindCampaignByID(ctx, campaignID); err != nil {
		return nil, err
	}

	linked, err := cu.relationRepo.IsLinked(ctx, parentID, req.StudentID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, domain.AuthzDenied("parent %d is not linked to student %d", parentID, req.StudentID)
	}

	consent := domain.CampaignConsent{
		ConsentID:    uuid.NewString(),
		CampaignID:   campaignID,
		StudentID:    req.StudentID,
		AnsweredByID: parentID,
		Status:       req.Status,
		Notes:        req.Notes,
	}

	return cu.repo.UpsertConsent(ctx, &consent)
}

func (cu *campaignUseCase) ListConsentsByCampaign(ctx context.Context, campaignID string) (*[]domain.CampaignConsent, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	if _, err := cu.repo.FindCampaignByID(ctx, campaignID); err != nil {
		return nil, err
	}
	return cu.repo.ListConsentsByCampaign(ctx, campaignID)
}

// ConsentOverviewForParent lists every campaign together with the consents
// this parent has already recorded for it.
func (cu *campaignUseCase) ConsentOverviewForParent(ctx context.Context, parentID int) (*[]domain.ConsentOverview, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	campaigns, err := cu.repo.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	consents, err := cu.repo.ListConsentsByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}

	byCampaign := make(map[string][]domain.CampaignConsent)
	for _, consent := range *consents {
		byCampaign[consent.CampaignID] = append(byCampaign[consent.CampaignID], consent)
	}

	overview := make([]domain.ConsentOverview, 0, len(*campaigns))
	for _, c := range *campaigns {
		overview = append(overview, domain.ConsentOverview{
			Campaign: c,
			Consents: byCampaign[c.CampaignID],
		})
	}
	return &overview, nil
}

func (cu *campaignUseCase) RecordResult(ctx context.Context, staffID int, campaignID string, result *domain.CampaignResult) (*domain.CampaignResult, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	campaign, err := cu.repo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	student, err := cu.userRepo.FindUserByID(ctx, result.StudentID)
	if err != nil {
		return nil, err
	}
	if student.Role != domain.RoleStudent {
		return nil, domain.NotFound("student with ID %d not found", result.StudentID)
	}

	switch campaign.Type {
	case domain.CampaignVaccination:
		if len(result.VaccinationDetails) == 0 {
			return nil, domain.Validation("vaccination details are required for a vaccination campaign result")
		}
	case domain.CampaignCheckup:
		if len(result.CheckupDetails) == 0 {
			return nil, domain.Validation("checkup details are required for a checkup campaign result")
		}
	}

	result.ResultID = uuid.NewString()
	result.CampaignID = campaignID
	result.CreatedByID = staffID

	if err := cu.repo.CreateResult(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (cu *campaignUseCase) ListResultsByCampaign(ctx context.Context, campaignID string) (*[]domain.CampaignResult, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	if _, err := cu.repo.FindCampaignByID(ctx, campaignID); err != nil {
		return nil, err
	}
	return cu.repo.ListResultsByCampaign(ctx, campaignID)
}
