package usecase

import (
	"context"
	"time"

	"schoolhealth/domain"
)

type healthProfileUseCase struct {
	repo         domain.HealthProfileRepo
	relationRepo domain.RelationRepo
	userRepo     domain.UserRepo
	TimeOut      time.Duration
}

func NewHealthProfileUseCase(repo domain.HealthProfileRepo, relationRepo domain.RelationRepo, userRepo domain.UserRepo, to time.Duration) domain.HealthProfileUseCase {
	return &healthProfileUseCase{
		repo:         repo,
		relationRepo: relationRepo,
		userRepo:     userRepo,
		TimeOut:      to,
	}
}

// Upsert writes a student's health profile. Medical staff may write any
// student's profile, a parent only a linked student's.
func (hu *healthProfileUseCase) Upsert(ctx context.Context, actor *domain.Claims, studentID int, payload *domain.HealthProfilePayload) (*domain.HealthProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, hu.TimeOut)
	defer cancel()

	if err := hu.authorize(ctx, actor, studentID, false); err != nil {
		return nil, err
	}

	student, err := hu.userRepo.FindUserByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Role != domain.RoleStudent {
		return nil, domain.NotFound("student with ID %d not found", studentID)
	}

	actorID := actor.UserID
	profile := domain.HealthProfile{
		StudentID:        studentID,
		Allergies:        payload.Allergies,
		ChronicDiseases:  payload.ChronicDiseases,
		VisionLeft:       payload.VisionLeft,
		VisionRight:      payload.VisionRight,
		HearingLeft:      payload.HearingLeft,
		HearingRight:     payload.HearingRight,
		HeightCM:         payload.HeightCM,
		WeightKG:         payload.WeightKG,
		Vaccinations:     payload.Vaccinations,
		TreatmentHistory: payload.TreatmentHistory,
		UpdatedByID:      &actorID,
	}

	return hu.repo.UpsertHealthProfile(ctx, &profile)
}

func (hu *healthProfileUseCase) Get(ctx context.Context, actor *domain.Claims, studentID int) (*domain.HealthProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, hu.TimeOut)
	defer cancel()

	if err := hu.authorize(ctx, actor, studentID, true); err != nil {
		return nil, err
	}

	return hu.repo.GetHealthProfileByStudent(ctx, studentID)
}

func (hu *healthProfileUseCase) authorize(ctx context.Context, actor *domain.Claims, studentID int, read bool) error {
	switch actor.Role {
	case domain.RoleMedicalStaff, domain.RoleAdmin:
		return nil
	case domain.RoleParent:
		linked, err := hu.relationRepo.IsLinked(ctx, actor.UserID, studentID)
		if err != nil {
			return err
		}
		if !linked {
			return domain.AuthzDenied("parent %d is not linked to student %d", actor.UserID, studentID)
		}
		return nil
	case domain.RoleStudent:
		if read && actor.UserID == studentID {
			return nil
		}
	}
	return domain.AuthzDenied("role %s may not access this health profile", actor.Role)
}
