package usecase

import (
	"context"
	"testing"
	"time"

	"schoolhealth/domain"
)

func profileFixture() (*fakeHealthProfileRepo, *fakeRelationRepo, *fakeUserRepo, domain.HealthProfileUseCase) {
	repo := newFakeHealthProfileRepo()
	relRepo := newFakeRelationRepo()
	userRepo := newFakeUserRepo()
	userRepo.users[1] = &domain.User{UserID: 1, Role: domain.RoleStudent, FullName: "A Student", IsActive: true}
	repo.profiles[1] = &domain.HealthProfile{ProfileID: 1, StudentID: 1}
	return repo, relRepo, userRepo, NewHealthProfileUseCase(repo, relRepo, userRepo, time.Second)
}

func claims(userID int, role string) *domain.Claims {
	return &domain.Claims{UserID: userID, Role: role}
}

func TestHealthProfileAccess(t *testing.T) {
	_, relRepo, _, uc := profileFixture()
	relRepo.linked[[2]int{2, 1}] = true

	tests := []struct {
		name     string
		actor    *domain.Claims
		wantKind domain.ErrorKind
		wantOK   bool
	}{
		{"medical staff reads any student", claims(5, domain.RoleMedicalStaff), "", true},
		{"admin reads any student", claims(6, domain.RoleAdmin), "", true},
		{"linked parent reads", claims(2, domain.RoleParent), "", true},
		{"unlinked parent denied", claims(3, domain.RoleParent), domain.KindAuthzDenied, false},
		{"student reads own", claims(1, domain.RoleStudent), "", true},
		{"student denied another profile", claims(7, domain.RoleStudent), domain.KindAuthzDenied, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Get(context.Background(), tt.actor, 1)
			if tt.wantOK {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if domain.KindOf(err) != tt.wantKind {
				t.Errorf("error kind = %v, want %v", domain.KindOf(err), tt.wantKind)
			}
		})
	}
}

func TestHealthProfileStudentCannotWrite(t *testing.T) {
	_, _, _, uc := profileFixture()

	_, err := uc.Upsert(context.Background(), claims(1, domain.RoleStudent), 1, &domain.HealthProfilePayload{})
	if domain.KindOf(err) != domain.KindAuthzDenied {
		t.Errorf("student write: kind = %v, want KindAuthzDenied", domain.KindOf(err))
	}
}

func TestHealthProfileUpsertStampsAuthor(t *testing.T) {
	repo, _, _, uc := profileFixture()

	profile, err := uc.Upsert(context.Background(), claims(5, domain.RoleMedicalStaff), 1, &domain.HealthProfilePayload{
		Allergies: []string{"peanuts"},
		HeightCM:  142,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if profile.UpdatedByID == nil || *profile.UpdatedByID != 5 {
		t.Error("updated_by must record the writing staff member")
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("expected one upsert, got %d", len(repo.upserted))
	}
}

func TestHealthProfileUpsertUnknownStudent(t *testing.T) {
	_, _, _, uc := profileFixture()

	_, err := uc.Upsert(context.Background(), claims(5, domain.RoleMedicalStaff), 99, &domain.HealthProfilePayload{})
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("error kind = %v, want KindNotFound", domain.KindOf(err))
	}
}
