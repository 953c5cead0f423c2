package usecase

import (
	"context"
	"testing"
	"time"

	"schoolhealth/domain"
)

func TestCreateStudentGeneratesUsername(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, time.Second)

	created, err := uc.CreateStudent(context.Background(), &domain.CreateStudentRequest{
		FullName:    "Nguyen Phuc Tan",
		DateOfBirth: "2001-05-25",
		Gender:      "male",
		ClassName:   "5A",
	})
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	if created.User.Username != "tannp250501" {
		t.Errorf("username = %q, want %q", created.User.Username, "tannp250501")
	}
	if created.User.Role != domain.RoleStudent {
		t.Errorf("role = %q, want %q", created.User.Role, domain.RoleStudent)
	}
	if created.Password == "" {
		t.Error("expected a generated password")
	}
	if created.User.Password == created.Password {
		t.Error("stored password must be hashed, not plaintext")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created user, got %d", len(repo.created))
	}
}

func TestCreateStudentUsernameCollision(t *testing.T) {
	repo := newFakeUserRepo()
	repo.taken["tannp250501"] = true
	repo.taken["tannp250501_1"] = true
	uc := NewUserUseCase(repo, time.Second)

	created, err := uc.CreateStudent(context.Background(), &domain.CreateStudentRequest{
		FullName:    "Nguyen Phuc Tan",
		DateOfBirth: "2001-05-25",
	})
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	if created.User.Username != "tannp250501_2" {
		t.Errorf("username = %q, want smallest free suffix %q", created.User.Username, "tannp250501_2")
	}
}

func TestCreateStudentRejectsBadDate(t *testing.T) {
	uc := NewUserUseCase(newFakeUserRepo(), time.Second)

	_, err := uc.CreateStudent(context.Background(), &domain.CreateStudentRequest{
		FullName:    "Nguyen Phuc Tan",
		DateOfBirth: "25/05/2001",
	})
	if domain.KindOf(err) != domain.KindValidation {
		t.Errorf("error kind = %v, want KindValidation", domain.KindOf(err))
	}
}

func TestCreateStaffRequiresValidStaffRole(t *testing.T) {
	uc := NewUserUseCase(newFakeUserRepo(), time.Second)

	badRole := "Janitor"
	_, err := uc.CreateStaff(context.Background(), &domain.CreateStaffRequest{
		Username:  "staff1",
		Password:  "secret",
		FullName:  "Staff One",
		Role:      domain.RoleMedicalStaff,
		StaffRole: &badRole,
	})
	if domain.KindOf(err) != domain.KindValidation {
		t.Errorf("error kind = %v, want KindValidation", domain.KindOf(err))
	}

	_, err = uc.CreateStaff(context.Background(), &domain.CreateStaffRequest{
		Username: "staff2",
		Password: "secret",
		FullName: "Staff Two",
		Role:     domain.RoleMedicalStaff,
	})
	if domain.KindOf(err) != domain.KindValidation {
		t.Errorf("error kind = %v, want KindValidation when staff role missing", domain.KindOf(err))
	}
}

func TestUpdateUserRoleScopedFields(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users[7] = &domain.User{UserID: 7, Role: domain.RoleParent, FullName: "A Parent", IsActive: true}
	uc := NewUserUseCase(repo, time.Second)

	className := "3B"
	_, err := uc.UpdateUser(context.Background(), 7, &domain.UpdateUserRequest{ClassName: &className})
	if domain.KindOf(err) != domain.KindValidation {
		t.Errorf("class name on a parent: kind = %v, want KindValidation", domain.KindOf(err))
	}

	staffRole := domain.StaffRoleNurse
	_, err = uc.UpdateUser(context.Background(), 7, &domain.UpdateUserRequest{StaffRole: &staffRole})
	if domain.KindOf(err) != domain.KindValidation {
		t.Errorf("staff role on a parent: kind = %v, want KindValidation", domain.KindOf(err))
	}
}
